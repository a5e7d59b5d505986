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

type SalesOrderHandler struct {
	db  *gorm.DB
	svc *services.DocumentService
}

func NewSalesOrderHandler(db *gorm.DB, svc *services.DocumentService) *SalesOrderHandler {
	return &SalesOrderHandler{db: db, svc: svc}
}

func (h *SalesOrderHandler) formOptions() map[string]any {
	var customers []models.Customer
	if err := h.db.Order("name").Find(&customers).Error; err != nil {
		log.Error().Err(err).Msg("load customer options failed")
	}
	var projects []models.Project
	if err := h.db.Order("name").Find(&projects).Error; err != nil {
		log.Error().Err(err).Msg("load project options failed")
	}
	var quotes []models.Quote
	if err := h.db.Order("quote_number DESC").Find(&quotes).Error; err != nil {
		log.Error().Err(err).Msg("load quote options failed")
	}
	return map[string]any{
		"Customers": customers,
		"Projects":  projects,
		"Quotes":    quotes,
		"Statuses":  models.SalesOrderStatuses,
	}
}

func (h *SalesOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var orders []models.SalesOrder
	if err := h.db.Preload("Customer").Order("updated_at DESC").Find(&orders).Error; err != nil {
		log.Error().Err(err).Msg("list sales orders failed")
	}
	orders = filterByQuery(orders, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: orders, Total: int64(len(orders))})
		return
	}
	render(w, r, "sales_orders/index.html", map[string]any{
		"Orders": orders,
		"Query":  query,
	})
}

func (h *SalesOrderHandler) New(w http.ResponseWriter, r *http.Request) {
	data := h.formOptions()
	data["Order"] = models.SalesOrder{Status: models.SalesOrderStatusPending, OrderDate: time.Now()}
	render(w, r, "sales_orders/new.html", data)
}

func (h *SalesOrderHandler) bindForm(r *http.Request, o *models.SalesOrder) {
	o.CustomerID = r.FormValue("customer_id")
	o.ProjectID = optionalID(r.FormValue("project_id"))
	o.QuoteID = optionalID(r.FormValue("quote_id"))
	o.OrderDate = parseDate(r.FormValue("order_date"))
	o.DeliveryDate = parseOptionalDate(r.FormValue("delivery_date"))
	o.TotalAmount = parseFloat(r.FormValue("total_amount"))
	o.Status = models.SalesOrderStatus(r.FormValue("status"))
	o.Notes = r.FormValue("notes")
}

func (h *SalesOrderHandler) validate(o *models.SalesOrder) validation.Violations {
	v := make(validation.Violations)
	validation.Required("customer_id", o.CustomerID, v)
	validation.OneOf("status", string(o.Status), models.SalesOrderStatuses, v)
	return v
}

func (h *SalesOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order models.SalesOrder
	h.bindForm(r, &order)
	order.CreatedBy = actorRef(r)
	order.UpdatedBy = actorRef(r)

	if v := h.validate(&order); !v.Empty() {
		data := h.formOptions()
		data["Order"] = order
		data["Errors"] = v
		render(w, r, "sales_orders/new.html", data)
		return
	}

	number, err := h.svc.NextOrderNumber(time.Now())
	if err == nil {
		order.OrderNumber = number
		err = h.db.Create(&order).Error
	}
	if err != nil {
		log.Error().Err(err).Msg("create sales order failed")
		data := h.formOptions()
		data["Order"] = order
		data["Error"] = "save_failed"
		render(w, r, "sales_orders/new.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/sales-orders", http.StatusSeeOther)
}

func (h *SalesOrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var order models.SalesOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		order = models.SalesOrder{Status: models.SalesOrderStatusPending, OrderDate: time.Now()}
	}

	data := h.formOptions()
	data["Order"] = order
	data["ID"] = id
	render(w, r, "sales_orders/edit.html", data)
}

func (h *SalesOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var order models.SalesOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &order)
	order.UpdatedBy = actorRef(r)

	if v := h.validate(&order); !v.Empty() {
		data := h.formOptions()
		data["Order"] = order
		data["ID"] = id
		data["Errors"] = v
		render(w, r, "sales_orders/edit.html", data)
		return
	}

	if err := h.db.Save(&order).Error; err != nil {
		log.Error().Err(err).Str("order_id", id).Msg("update sales order failed")
		data := h.formOptions()
		data["Order"] = order
		data["ID"] = id
		data["Error"] = "update_failed"
		render(w, r, "sales_orders/edit.html", data)
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/sales-orders", http.StatusSeeOther)
}

func (h *SalesOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.db.Delete(&models.SalesOrder{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("order_id", id).Msg("delete sales order failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/sales-orders", http.StatusSeeOther)
}
