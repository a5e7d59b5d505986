package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus is the lifecycle state of an invoice (請求書).
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists the allowed values for form validation.
var InvoiceStatuses = []string{
	string(InvoiceStatusDraft),
	string(InvoiceStatusSent),
	string(InvoiceStatusPaid),
	string(InvoiceStatusOverdue),
}

// Invoice bills a customer, optionally referencing the sales order it
// settles. Order and project references are weak.
type Invoice struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	InvoiceNumber string `gorm:"size:50;uniqueIndex" json:"invoice_number"`

	CustomerID   string      `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProjectID    *string     `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Project      *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	SalesOrderID *string     `gorm:"type:uuid;index" json:"sales_order_id,omitempty"`
	SalesOrder   *SalesOrder `gorm:"foreignKey:SalesOrderID" json:"sales_order,omitempty"`

	IssueDate   time.Time  `gorm:"not null" json:"issue_date"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`

	Subtotal float64 `gorm:"not null;default:0" json:"subtotal"`
	Tax      float64 `gorm:"not null;default:0" json:"tax"`
	Total    float64 `gorm:"not null;default:0" json:"total"`

	Status InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes"`

	Items []InvoiceItem        `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Logs  []InvoiceDeliveryLog `gorm:"foreignKey:InvoiceID" json:"logs,omitempty"`
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (inv Invoice) SearchFields() (name, code string) {
	if inv.Customer != nil {
		name = inv.Customer.Name
	}
	return name, inv.InvoiceNumber
}

// IsPaid reports whether payment has been recorded.
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// InvoiceItem is a line on an invoice, ordered by LineNumber.
type InvoiceItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID  string `gorm:"type:uuid;index;not null" json:"invoice_id"`
	LineNumber int    `gorm:"not null;default:1" json:"line_number"`

	ItemName    string  `gorm:"size:255;not null" json:"item_name"`
	Description string  `gorm:"size:500" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	// Amount is stored as submitted; it is expected but not enforced to
	// equal Quantity × UnitPrice.
	Amount float64 `gorm:"not null;default:0" json:"amount"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ComputedAmount is the quantity × unit-price product for display checks.
func (i *InvoiceItem) ComputedAmount() float64 {
	return i.Quantity * i.UnitPrice
}
