package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/httpx"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/internal/services"
	"github.com/tsukino/go-hanbai/validation"
	"github.com/tsukino/go-hanbai/view"
)

type DeliveryNoteHandler struct {
	db  *gorm.DB
	svc *services.DocumentService
}

func NewDeliveryNoteHandler(db *gorm.DB, svc *services.DocumentService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{db: db, svc: svc}
}

func (h *DeliveryNoteHandler) formOptions() map[string]any {
	var customers []models.Customer
	if err := h.db.Order("name").Find(&customers).Error; err != nil {
		log.Error().Err(err).Msg("load customer options failed")
	}
	var projects []models.Project
	if err := h.db.Order("name").Find(&projects).Error; err != nil {
		log.Error().Err(err).Msg("load project options failed")
	}
	var orders []models.SalesOrder
	if err := h.db.Order("order_number DESC").Find(&orders).Error; err != nil {
		log.Error().Err(err).Msg("load sales order options failed")
	}
	return map[string]any{
		"Customers": customers,
		"Projects":  projects,
		"Orders":    orders,
	}
}

func (h *DeliveryNoteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var notes []models.DeliveryNote
	if err := h.db.Preload("Customer").Order("updated_at DESC").Find(&notes).Error; err != nil {
		log.Error().Err(err).Msg("list delivery notes failed")
	}
	notes = filterByQuery(notes, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: notes, Total: int64(len(notes))})
		return
	}
	render(w, r, "delivery_notes/index.html", map[string]any{
		"Notes": notes,
		"Query": query,
	})
}

func (h *DeliveryNoteHandler) New(w http.ResponseWriter, r *http.Request) {
	data := h.formOptions()
	data["Note"] = models.DeliveryNote{DeliveryDate: time.Now()}
	render(w, r, "delivery_notes/new.html", data)
}

func (h *DeliveryNoteHandler) bindForm(r *http.Request, d *models.DeliveryNote) {
	d.CustomerID = r.FormValue("customer_id")
	d.ProjectID = optionalID(r.FormValue("project_id"))
	d.SalesOrderID = optionalID(r.FormValue("sales_order_id"))
	d.DeliveryDate = parseDate(r.FormValue("delivery_date"))
	d.Notes = r.FormValue("notes")
}

func (h *DeliveryNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var note models.DeliveryNote
	h.bindForm(r, &note)
	note.CreatedBy = actorRef(r)
	note.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("customer_id", note.CustomerID, v)
	if !v.Empty() {
		data := h.formOptions()
		data["Note"] = note
		data["Errors"] = v
		render(w, r, "delivery_notes/new.html", data)
		return
	}

	number, err := h.svc.NextDeliveryNumber(time.Now())
	if err == nil {
		note.DeliveryNumber = number
		err = h.db.Create(&note).Error
	}
	if err != nil {
		log.Error().Err(err).Msg("create delivery note failed")
		data := h.formOptions()
		data["Note"] = note
		data["Error"] = "save_failed"
		render(w, r, "delivery_notes/new.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/delivery-notes/"+note.ID+"/edit", http.StatusSeeOther)
}

func (h *DeliveryNoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var note models.DeliveryNote
	err := h.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		First(&note, "id = ?", id).Error
	if err != nil {
		note = models.DeliveryNote{DeliveryDate: time.Now()}
	}

	data := h.formOptions()
	data["Note"] = note
	data["ID"] = id
	render(w, r, "delivery_notes/edit.html", data)
}

func (h *DeliveryNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var note models.DeliveryNote
	if err := h.db.First(&note, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &note)
	note.UpdatedBy = actorRef(r)

	v := make(validation.Violations)
	validation.Required("customer_id", note.CustomerID, v)
	if !v.Empty() {
		data := h.formOptions()
		data["Note"] = note
		data["ID"] = id
		data["Errors"] = v
		render(w, r, "delivery_notes/edit.html", data)
		return
	}

	if err := h.db.Save(&note).Error; err != nil {
		log.Error().Err(err).Str("note_id", id).Msg("update delivery note failed")
		data := h.formOptions()
		data["Note"] = note
		data["ID"] = id
		data["Error"] = "update_failed"
		render(w, r, "delivery_notes/edit.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/delivery-notes", http.StatusSeeOther)
}

// Delete removes the note and its lines in one transaction.
func (h *DeliveryNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.DeliveryNoteItem{}, "delivery_note_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DeliveryNote{}, "id = ?", id).Error
	})
	if err != nil {
		log.Error().Err(err).Str("note_id", id).Msg("delete delivery note failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/delivery-notes", http.StatusSeeOther)
}

// AddItem appends a line to the delivery note and refreshes the totals.
func (h *DeliveryNoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var note models.DeliveryNote
	if err := h.db.First(&note, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	item := models.DeliveryNoteItem{
		DeliveryNoteID: id,
		ItemName:       strings.TrimSpace(r.FormValue("item_name")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		Quantity:       parseFloat(r.FormValue("quantity")),
		UnitPrice:      parseFloat(r.FormValue("unit_price")),
		Amount:         parseFloat(r.FormValue("amount")),
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Amount == 0 {
		item.Amount = item.ComputedAmount()
	}

	if item.ItemName == "" {
		view.SetFlash(w, view.FlashError, "required")
		http.Redirect(w, r, "/delivery-notes/"+id+"/edit", http.StatusSeeOther)
		return
	}

	line, err := services.NextLineNumber(h.db, &models.DeliveryNoteItem{}, "delivery_note_id", id)
	if err == nil {
		item.LineNumber = line
		err = h.db.Create(&item).Error
	}
	if err == nil {
		err = h.svc.RecalculateDeliveryNote(id)
	}
	if err != nil {
		log.Error().Err(err).Str("note_id", id).Msg("add delivery note item failed")
		view.SetFlash(w, view.FlashError, "save_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/delivery-notes/"+id+"/edit", http.StatusSeeOther)
}

// RemoveItem deletes one line and refreshes the totals.
func (h *DeliveryNoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	err := h.db.Delete(&models.DeliveryNoteItem{}, "id = ? AND delivery_note_id = ?", itemID, id).Error
	if err == nil {
		err = h.svc.RecalculateDeliveryNote(id)
	}
	if err != nil {
		log.Error().Err(err).Str("note_id", id).Msg("remove delivery note item failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/delivery-notes/"+id+"/edit", http.StatusSeeOther)
}
