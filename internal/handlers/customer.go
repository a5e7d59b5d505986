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

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var customers []models.Customer
	if err := h.db.Order("updated_at DESC").Find(&customers).Error; err != nil {
		log.Error().Err(err).Msg("list customers failed")
	}
	customers = filterByQuery(customers, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: customers, Total: int64(len(customers))})
		return
	}
	render(w, r, "customers/index.html", map[string]any{
		"Customers": customers,
		"Query":     query,
	})
}

func (h *CustomerHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "customers/new.html", map[string]any{
		"Customer": models.Customer{},
	})
}

func (h *CustomerHandler) bindForm(r *http.Request, c *models.Customer) {
	c.Code = strings.TrimSpace(r.FormValue("code"))
	c.Name = strings.TrimSpace(r.FormValue("name"))
	c.NameKana = strings.TrimSpace(r.FormValue("name_kana"))
	c.PostalCode = strings.TrimSpace(r.FormValue("postal_code"))
	c.Address = strings.TrimSpace(r.FormValue("address"))
	c.Phone = strings.TrimSpace(r.FormValue("phone"))
	c.Email = strings.TrimSpace(r.FormValue("email"))
	c.ContactPerson = strings.TrimSpace(r.FormValue("contact_person"))
	c.Notes = r.FormValue("notes")
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	h.bindForm(r, &customer)
	customer.CreatedBy = actorRef(r)
	customer.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("code", customer.Code, v)
	validation.Required("name", customer.Name, v)
	if !v.Empty() {
		render(w, r, "customers/new.html", map[string]any{
			"Customer": customer,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Create(&customer).Error; err != nil {
		log.Error().Err(err).Str("code", customer.Code).Msg("create customer failed")
		render(w, r, "customers/new.html", map[string]any{
			"Customer": customer,
			"Error":    "save_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// Edit renders the form for the requested row; an unknown id still gets a
// form, prefilled with defaults, so a stale link degrades gracefully.
func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		customer = models.Customer{}
	}

	render(w, r, "customers/edit.html", map[string]any{
		"Customer": customer,
		"ID":       id,
	})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &customer)
	customer.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("code", customer.Code, v)
	validation.Required("name", customer.Name, v)
	if !v.Empty() {
		render(w, r, "customers/edit.html", map[string]any{
			"Customer": customer,
			"ID":       id,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Save(&customer).Error; err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("update customer failed")
		render(w, r, "customers/edit.html", map[string]any{
			"Customer": customer,
			"ID":       id,
			"Error":    "update_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.db.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("delete customer failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}
