package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesOrderStatus is the lifecycle state of a sales order (受注).
type SalesOrderStatus string

const (
	SalesOrderStatusPending    SalesOrderStatus = "pending"
	SalesOrderStatusProcessing SalesOrderStatus = "processing"
	SalesOrderStatusCompleted  SalesOrderStatus = "completed"
	SalesOrderStatusCanceled   SalesOrderStatus = "canceled"
)

// SalesOrderStatuses lists the allowed values for form validation.
var SalesOrderStatuses = []string{
	string(SalesOrderStatusPending),
	string(SalesOrderStatusProcessing),
	string(SalesOrderStatusCompleted),
	string(SalesOrderStatusCanceled),
}

// SalesOrder records a confirmed customer order, optionally derived from a
// quote. The quote reference is weak; no consistency is enforced between
// the two documents.
type SalesOrder struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	OrderNumber string `gorm:"size:50;uniqueIndex" json:"order_number"`

	CustomerID string    `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProjectID  *string   `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	QuoteID    *string   `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	Quote      *Quote    `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`

	OrderDate    time.Time  `gorm:"not null" json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`

	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`

	Status SalesOrderStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string           `gorm:"type:text" json:"notes"`
}

func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (o SalesOrder) SearchFields() (name, code string) {
	if o.Customer != nil {
		name = o.Customer.Name
	}
	return name, o.OrderNumber
}

// IsOpen reports whether the order still accepts fulfillment work.
func (o *SalesOrder) IsOpen() bool {
	return o.Status == SalesOrderStatusPending || o.Status == SalesOrderStatusProcessing
}
