package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteStatus is the lifecycle state of a quote (見積).
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteStatuses lists the allowed values for form validation.
var QuoteStatuses = []string{
	string(QuoteStatusDraft),
	string(QuoteStatusSent),
	string(QuoteStatusAccepted),
	string(QuoteStatusRejected),
}

// Quote is a priced offer to a customer, optionally tied to a project.
type Quote struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	QuoteNumber string `gorm:"size:50;uniqueIndex" json:"quote_number"`

	CustomerID string    `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProjectID  *string   `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`

	Subtotal float64 `gorm:"not null;default:0" json:"subtotal"`
	Tax      float64 `gorm:"not null;default:0" json:"tax"`
	Total    float64 `gorm:"not null;default:0" json:"total"`

	Status QuoteStatus `gorm:"size:20;default:'draft'" json:"status"`
	Notes  string      `gorm:"type:text" json:"notes"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (q Quote) SearchFields() (name, code string) {
	if q.Customer != nil {
		name = q.Customer.Name
	}
	return name, q.QuoteNumber
}

// IsDraft reports whether the quote is still editable freely.
func (q *Quote) IsDraft() bool {
	return q.Status == QuoteStatusDraft
}

// QuoteItem is a line on a quote, ordered by LineNumber.
type QuoteItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	QuoteID    string `gorm:"type:uuid;index;not null" json:"quote_id"`
	LineNumber int    `gorm:"not null;default:1" json:"line_number"`

	ItemName    string  `gorm:"size:255;not null" json:"item_name"`
	Description string  `gorm:"size:500" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	// Amount is stored as submitted; it is expected but not enforced to
	// equal Quantity × UnitPrice.
	Amount float64 `gorm:"not null;default:0" json:"amount"`
}

func (i *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ComputedAmount is the quantity × unit-price product for display checks.
func (i *QuoteItem) ComputedAmount() float64 {
	return i.Quantity * i.UnitPrice
}
