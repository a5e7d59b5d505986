package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/httpx"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/validation"
	"github.com/tsukino/go-hanbai/view"
)

// DeliveryLogHandler serves the cross-invoice send history (送付ログ).
// Entries are append-only: there is no edit screen, only create and delete.
type DeliveryLogHandler struct {
	db *gorm.DB
}

func NewDeliveryLogHandler(db *gorm.DB) *DeliveryLogHandler {
	return &DeliveryLogHandler{db: db}
}

func (h *DeliveryLogHandler) invoiceOptions() []models.Invoice {
	var invoices []models.Invoice
	if err := h.db.Preload("Customer").Order("invoice_number DESC").Find(&invoices).Error; err != nil {
		log.Error().Err(err).Msg("load invoice options failed")
	}
	return invoices
}

func (h *DeliveryLogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var logs []models.InvoiceDeliveryLog
	if err := h.db.Preload("Invoice").Preload("Invoice.Customer").
		Order("delivered_at DESC").Find(&logs).Error; err != nil {
		log.Error().Err(err).Msg("list delivery logs failed")
	}
	logs = filterByQuery(logs, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: logs, Total: int64(len(logs))})
		return
	}
	render(w, r, "delivery_logs/index.html", map[string]any{
		"Logs":  logs,
		"Query": query,
	})
}

func (h *DeliveryLogHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "delivery_logs/new.html", map[string]any{
		"Log":      models.InvoiceDeliveryLog{DeliveredAt: time.Now()},
		"Invoices": h.invoiceOptions(),
		"Methods":  models.DeliveryMethods,
	})
}

func (h *DeliveryLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	entry := models.InvoiceDeliveryLog{
		InvoiceID:      r.FormValue("invoice_id"),
		DeliveryMethod: models.DeliveryMethod(r.FormValue("delivery_method")),
		RecipientEmail: strings.TrimSpace(r.FormValue("recipient_email")),
		DeliveredAt:    parseDate(r.FormValue("delivered_at")),
		DeliveredBy:    actorRef(r),
		Notes:          r.FormValue("notes"),
	}

	v := make(validation.Violations)
	validation.Required("invoice_id", entry.InvoiceID, v)
	validation.OneOf("delivery_method", string(entry.DeliveryMethod), models.DeliveryMethods, v)
	if !v.Empty() {
		render(w, r, "delivery_logs/new.html", map[string]any{
			"Log":      entry,
			"Invoices": h.invoiceOptions(),
			"Methods":  models.DeliveryMethods,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("invoice_id", entry.InvoiceID).Msg("create delivery log failed")
		render(w, r, "delivery_logs/new.html", map[string]any{
			"Log":      entry,
			"Invoices": h.invoiceOptions(),
			"Methods":  models.DeliveryMethods,
			"Error":    "save_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "delivery_recorded")
	http.Redirect(w, r, "/delivery-logs", http.StatusSeeOther)
}

func (h *DeliveryLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.db.Delete(&models.InvoiceDeliveryLog{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("log_id", id).Msg("delete delivery log failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/delivery-logs", http.StatusSeeOther)
}
