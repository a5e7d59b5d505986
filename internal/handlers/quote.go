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

type QuoteHandler struct {
	db  *gorm.DB
	svc *services.DocumentService
}

func NewQuoteHandler(db *gorm.DB, svc *services.DocumentService) *QuoteHandler {
	return &QuoteHandler{db: db, svc: svc}
}

func (h *QuoteHandler) formOptions() map[string]any {
	var customers []models.Customer
	if err := h.db.Order("name").Find(&customers).Error; err != nil {
		log.Error().Err(err).Msg("load customer options failed")
	}
	var projects []models.Project
	if err := h.db.Order("name").Find(&projects).Error; err != nil {
		log.Error().Err(err).Msg("load project options failed")
	}
	return map[string]any{
		"Customers": customers,
		"Projects":  projects,
		"Statuses":  models.QuoteStatuses,
	}
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var quotes []models.Quote
	if err := h.db.Preload("Customer").Order("updated_at DESC").Find(&quotes).Error; err != nil {
		log.Error().Err(err).Msg("list quotes failed")
	}
	quotes = filterByQuery(quotes, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: quotes, Total: int64(len(quotes))})
		return
	}
	render(w, r, "quotes/index.html", map[string]any{
		"Quotes": quotes,
		"Query":  query,
	})
}

func (h *QuoteHandler) New(w http.ResponseWriter, r *http.Request) {
	data := h.formOptions()
	data["Quote"] = models.Quote{Status: models.QuoteStatusDraft, IssueDate: time.Now()}
	render(w, r, "quotes/new.html", data)
}

func (h *QuoteHandler) bindForm(r *http.Request, q *models.Quote) {
	q.CustomerID = r.FormValue("customer_id")
	q.ProjectID = optionalID(r.FormValue("project_id"))
	q.IssueDate = parseDate(r.FormValue("issue_date"))
	q.ExpiryDate = parseOptionalDate(r.FormValue("expiry_date"))
	q.Status = models.QuoteStatus(r.FormValue("status"))
	q.Notes = r.FormValue("notes")
}

func (h *QuoteHandler) validate(q *models.Quote) validation.Violations {
	v := make(validation.Violations)
	validation.Required("customer_id", q.CustomerID, v)
	validation.OneOf("status", string(q.Status), models.QuoteStatuses, v)
	return v
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	h.bindForm(r, &quote)
	quote.CreatedBy = actorRef(r)
	quote.UpdatedBy = actorRef(r)

	if v := h.validate(&quote); !v.Empty() {
		data := h.formOptions()
		data["Quote"] = quote
		data["Errors"] = v
		render(w, r, "quotes/new.html", data)
		return
	}

	number, err := h.svc.NextQuoteNumber(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("quote numbering failed")
		data := h.formOptions()
		data["Quote"] = quote
		data["Error"] = "save_failed"
		render(w, r, "quotes/new.html", data)
		return
	}
	quote.QuoteNumber = number

	if err := h.db.Create(&quote).Error; err != nil {
		log.Error().Err(err).Str("quote_number", number).Msg("create quote failed")
		data := h.formOptions()
		data["Quote"] = quote
		data["Error"] = "save_failed"
		render(w, r, "quotes/new.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/quotes/"+quote.ID+"/edit", http.StatusSeeOther)
}

func (h *QuoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var quote models.Quote
	if err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_number")
	}).First(&quote, "id = ?", id).Error; err != nil {
		quote = models.Quote{Status: models.QuoteStatusDraft, IssueDate: time.Now()}
	}

	data := h.formOptions()
	data["Quote"] = quote
	data["ID"] = id
	render(w, r, "quotes/edit.html", data)
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &quote)
	quote.UpdatedBy = actorRef(r)

	if v := h.validate(&quote); !v.Empty() {
		data := h.formOptions()
		data["Quote"] = quote
		data["ID"] = id
		data["Errors"] = v
		render(w, r, "quotes/edit.html", data)
		return
	}

	if err := h.db.Save(&quote).Error; err != nil {
		log.Error().Err(err).Str("quote_id", id).Msg("update quote failed")
		data := h.formOptions()
		data["Quote"] = quote
		data["ID"] = id
		data["Error"] = "update_failed"
		render(w, r, "quotes/edit.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}

// Delete removes the quote and its lines in one transaction.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.QuoteItem{}, "quote_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quote{}, "id = ?", id).Error
	})
	if err != nil {
		log.Error().Err(err).Str("quote_id", id).Msg("delete quote failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}

// AddItem appends a line to the quote and refreshes the totals.
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	item := models.QuoteItem{
		QuoteID:     id,
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
		http.Redirect(w, r, "/quotes/"+id+"/edit", http.StatusSeeOther)
		return
	}

	line, err := services.NextLineNumber(h.db, &models.QuoteItem{}, "quote_id", id)
	if err == nil {
		item.LineNumber = line
		err = h.db.Create(&item).Error
	}
	if err == nil {
		err = h.svc.RecalculateQuote(id)
	}
	if err != nil {
		log.Error().Err(err).Str("quote_id", id).Msg("add quote item failed")
		view.SetFlash(w, view.FlashError, "save_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/quotes/"+id+"/edit", http.StatusSeeOther)
}

// RemoveItem deletes one line and refreshes the totals.
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	err := h.db.Delete(&models.QuoteItem{}, "id = ? AND quote_id = ?", itemID, id).Error
	if err == nil {
		err = h.svc.RecalculateQuote(id)
	}
	if err != nil {
		log.Error().Err(err).Str("quote_id", id).Msg("remove quote item failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/quotes/"+id+"/edit", http.StatusSeeOther)
}
