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

type InvoiceHandler struct {
	db  *gorm.DB
	svc *services.DocumentService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{db: db, svc: svc}
}

func (h *InvoiceHandler) formOptions() map[string]any {
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
		"Statuses":  models.InvoiceStatuses,
		"Methods":   models.DeliveryMethods,
	}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var invoices []models.Invoice
	if err := h.db.Preload("Customer").Order("updated_at DESC").Find(&invoices).Error; err != nil {
		log.Error().Err(err).Msg("list invoices failed")
	}
	invoices = filterByQuery(invoices, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: invoices, Total: int64(len(invoices))})
		return
	}
	render(w, r, "invoices/index.html", map[string]any{
		"Invoices": invoices,
		"Query":    query,
	})
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	data := h.formOptions()
	data["Invoice"] = models.Invoice{Status: models.InvoiceStatusDraft, IssueDate: time.Now()}
	render(w, r, "invoices/new.html", data)
}

func (h *InvoiceHandler) bindForm(r *http.Request, inv *models.Invoice) {
	inv.CustomerID = r.FormValue("customer_id")
	inv.ProjectID = optionalID(r.FormValue("project_id"))
	inv.SalesOrderID = optionalID(r.FormValue("sales_order_id"))
	inv.IssueDate = parseDate(r.FormValue("issue_date"))
	inv.DueDate = parseOptionalDate(r.FormValue("due_date"))
	inv.PaymentDate = parseOptionalDate(r.FormValue("payment_date"))
	inv.Status = models.InvoiceStatus(r.FormValue("status"))
	inv.Notes = r.FormValue("notes")
}

func (h *InvoiceHandler) validate(inv *models.Invoice) validation.Violations {
	v := make(validation.Violations)
	validation.Required("customer_id", inv.CustomerID, v)
	validation.OneOf("status", string(inv.Status), models.InvoiceStatuses, v)
	return v
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var invoice models.Invoice
	h.bindForm(r, &invoice)
	invoice.CreatedBy = actorRef(r)
	invoice.UpdatedBy = actorRef(r)

	if v := h.validate(&invoice); !v.Empty() {
		data := h.formOptions()
		data["Invoice"] = invoice
		data["Errors"] = v
		render(w, r, "invoices/new.html", data)
		return
	}

	number, err := h.svc.NextInvoiceNumber(time.Now())
	if err == nil {
		invoice.InvoiceNumber = number
		err = h.db.Create(&invoice).Error
	}
	if err != nil {
		log.Error().Err(err).Msg("create invoice failed")
		data := h.formOptions()
		data["Invoice"] = invoice
		data["Error"] = "save_failed"
		render(w, r, "invoices/new.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/invoices/"+invoice.ID+"/edit", http.StatusSeeOther)
}

func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var invoice models.Invoice
	err := h.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Preload("Logs", func(db *gorm.DB) *gorm.DB { return db.Order("delivered_at DESC") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		invoice = models.Invoice{Status: models.InvoiceStatusDraft, IssueDate: time.Now()}
	}

	data := h.formOptions()
	data["Invoice"] = invoice
	data["ID"] = id
	render(w, r, "invoices/edit.html", data)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var invoice models.Invoice
	if err := h.db.First(&invoice, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &invoice)
	invoice.UpdatedBy = actorRef(r)

	if v := h.validate(&invoice); !v.Empty() {
		data := h.formOptions()
		data["Invoice"] = invoice
		data["ID"] = id
		data["Errors"] = v
		render(w, r, "invoices/edit.html", data)
		return
	}

	if err := h.db.Save(&invoice).Error; err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("update invoice failed")
		data := h.formOptions()
		data["Invoice"] = invoice
		data["ID"] = id
		data["Error"] = "update_failed"
		render(w, r, "invoices/edit.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// Delete removes the invoice, its lines and its delivery logs together.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InvoiceDeliveryLog{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, "id = ?", id).Error
	})
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("delete invoice failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// AddItem appends a line to the invoice and refreshes the totals.
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var invoice models.Invoice
	if err := h.db.First(&invoice, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	item := models.InvoiceItem{
		InvoiceID:   id,
		ItemName:    strings.TrimSpace(r.FormValue("item_name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Quantity:    parseFloat(r.FormValue("quantity")),
		UnitPrice:   parseFloat(r.FormValue("unit_price")),
		Amount:      parseFloat(r.FormValue("amount")),
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Amount == 0 {
		item.Amount = item.ComputedAmount()
	}

	if item.ItemName == "" {
		view.SetFlash(w, view.FlashError, "required")
		http.Redirect(w, r, "/invoices/"+id+"/edit", http.StatusSeeOther)
		return
	}

	line, err := services.NextLineNumber(h.db, &models.InvoiceItem{}, "invoice_id", id)
	if err == nil {
		item.LineNumber = line
		err = h.db.Create(&item).Error
	}
	if err == nil {
		err = h.svc.RecalculateInvoice(id)
	}
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("add invoice item failed")
		view.SetFlash(w, view.FlashError, "save_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/invoices/"+id+"/edit", http.StatusSeeOther)
}

// RemoveItem deletes one line and refreshes the totals.
func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	err := h.db.Delete(&models.InvoiceItem{}, "id = ? AND invoice_id = ?", itemID, id).Error
	if err == nil {
		err = h.svc.RecalculateInvoice(id)
	}
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("remove invoice item failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/invoices/"+id+"/edit", http.StatusSeeOther)
}

// AddLog records that the invoice was sent. Log entries are append-only.
func (h *InvoiceHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var invoice models.Invoice
	if err := h.db.First(&invoice, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	entry := models.InvoiceDeliveryLog{
		InvoiceID:      id,
		DeliveryMethod: models.DeliveryMethod(r.FormValue("delivery_method")),
		RecipientEmail: strings.TrimSpace(r.FormValue("recipient_email")),
		DeliveredAt:    parseDate(r.FormValue("delivered_at")),
		DeliveredBy:    actorRef(r),
		Notes:          r.FormValue("notes"),
	}

	v := make(validation.Violations)
	validation.OneOf("delivery_method", string(entry.DeliveryMethod), models.DeliveryMethods, v)
	if !v.Empty() {
		view.SetFlash(w, view.FlashError, "required")
		http.Redirect(w, r, "/invoices/"+id+"/edit", http.StatusSeeOther)
		return
	}

	if err := h.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("record delivery failed")
		view.SetFlash(w, view.FlashError, "save_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "delivery_recorded")
	}
	http.Redirect(w, r, "/invoices/"+id+"/edit", http.StatusSeeOther)
}
