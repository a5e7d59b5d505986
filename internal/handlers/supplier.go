package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/httpx"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/validation"
	"github.com/tsukino/go-hanbai/view"
)

type SupplierHandler struct {
	db *gorm.DB
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{db: db}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var suppliers []models.Supplier
	if err := h.db.Order("updated_at DESC").Find(&suppliers).Error; err != nil {
		log.Error().Err(err).Msg("list suppliers failed")
	}
	suppliers = filterByQuery(suppliers, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: suppliers, Total: int64(len(suppliers))})
		return
	}
	render(w, r, "suppliers/index.html", map[string]any{
		"Suppliers": suppliers,
		"Query":     query,
	})
}

func (h *SupplierHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "suppliers/new.html", map[string]any{
		"Supplier": models.Supplier{},
	})
}

func (h *SupplierHandler) bindForm(r *http.Request, s *models.Supplier) {
	s.Code = strings.TrimSpace(r.FormValue("code"))
	s.Name = strings.TrimSpace(r.FormValue("name"))
	s.NameKana = strings.TrimSpace(r.FormValue("name_kana"))
	s.PostalCode = strings.TrimSpace(r.FormValue("postal_code"))
	s.Address = strings.TrimSpace(r.FormValue("address"))
	s.Phone = strings.TrimSpace(r.FormValue("phone"))
	s.Email = strings.TrimSpace(r.FormValue("email"))
	s.ContactPerson = strings.TrimSpace(r.FormValue("contact_person"))
	s.Notes = r.FormValue("notes")
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var supplier models.Supplier
	h.bindForm(r, &supplier)
	supplier.CreatedBy = actorRef(r)
	supplier.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("code", supplier.Code, v)
	validation.Required("name", supplier.Name, v)
	if !v.Empty() {
		render(w, r, "suppliers/new.html", map[string]any{
			"Supplier": supplier,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Create(&supplier).Error; err != nil {
		log.Error().Err(err).Str("code", supplier.Code).Msg("create supplier failed")
		render(w, r, "suppliers/new.html", map[string]any{
			"Supplier": supplier,
			"Error":    "save_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

func (h *SupplierHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var supplier models.Supplier
	if err := h.db.First(&supplier, "id = ?", id).Error; err != nil {
		supplier = models.Supplier{}
	}

	render(w, r, "suppliers/edit.html", map[string]any{
		"Supplier": supplier,
		"ID":       id,
	})
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var supplier models.Supplier
	if err := h.db.First(&supplier, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &supplier)
	supplier.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("code", supplier.Code, v)
	validation.Required("name", supplier.Name, v)
	if !v.Empty() {
		render(w, r, "suppliers/edit.html", map[string]any{
			"Supplier": supplier,
			"ID":       id,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Save(&supplier).Error; err != nil {
		log.Error().Err(err).Str("supplier_id", id).Msg("update supplier failed")
		render(w, r, "suppliers/edit.html", map[string]any{
			"Supplier": supplier,
			"ID":       id,
			"Error":    "update_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.db.Delete(&models.Supplier{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("supplier_id", id).Msg("delete supplier failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}
