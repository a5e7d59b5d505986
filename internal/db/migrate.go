package db

import (
	"github.com/tsukino/go-hanbai/internal/models"
	"gorm.io/gorm"
)

// AllModels lists every entity in migration order. Shared with tests so
// in-memory databases match the real schema.
func AllModels() []any {
	return []any{
		&models.Permission{},
		&models.Profile{},
		&models.User{},
		&models.Customer{},
		&models.Supplier{},
		&models.Project{},
		&models.Quote{},
		&models.QuoteItem{},
		&models.SalesOrder{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.DeliveryNote{},
		&models.DeliveryNoteItem{},
		&models.InvoiceDeliveryLog{},
	}
}

// Migrate applies GORM auto-migrations for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
