package policy

import (
	"time"

	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/internal/handlers"
	"github.com/tsukino/go-hanbai/internal/services"
)

// RouterConfig holds the configured handlers and the authorization gate.
// The route table in cmd/server wires these to URLs.
type RouterConfig struct {
	AuthGate *AuthGate

	AuthHandler  *handlers.AuthHandler
	AdminHandler *handlers.AdminHandler

	CustomerHandler     *handlers.CustomerHandler
	SupplierHandler     *handlers.SupplierHandler
	ProjectHandler      *handlers.ProjectHandler
	QuoteHandler        *handlers.QuoteHandler
	SalesOrderHandler   *handlers.SalesOrderHandler
	InvoiceHandler      *handlers.InvoiceHandler
	DeliveryNoteHandler *handlers.DeliveryNoteHandler
	DeliveryLogHandler  *handlers.DeliveryLogHandler

	DocumentService *services.DocumentService
}

// NewRouterConfig wires the gate, the services and every handler.
func NewRouterConfig(db *gorm.DB) *RouterConfig {
	authGate := NewAuthGate(db, 5*time.Minute)
	docs := services.NewDocumentService(db)

	return &RouterConfig{
		AuthGate: authGate,

		AuthHandler:  handlers.NewAuthHandler(db),
		AdminHandler: handlers.NewAdminHandler(db, authGate),

		CustomerHandler:     handlers.NewCustomerHandler(db),
		SupplierHandler:     handlers.NewSupplierHandler(db),
		ProjectHandler:      handlers.NewProjectHandler(db),
		QuoteHandler:        handlers.NewQuoteHandler(db, docs),
		SalesOrderHandler:   handlers.NewSalesOrderHandler(db, docs),
		InvoiceHandler:      handlers.NewInvoiceHandler(db, docs),
		DeliveryNoteHandler: handlers.NewDeliveryNoteHandler(db, docs),
		DeliveryLogHandler:  handlers.NewDeliveryLogHandler(db),

		DocumentService: docs,
	}
}
