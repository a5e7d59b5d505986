package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryNote accompanies delivered goods (納品書).
type DeliveryNote struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	DeliveryNumber string `gorm:"size:50;uniqueIndex" json:"delivery_number"`

	CustomerID   string      `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProjectID    *string     `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Project      *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	SalesOrderID *string     `gorm:"type:uuid;index" json:"sales_order_id,omitempty"`
	SalesOrder   *SalesOrder `gorm:"foreignKey:SalesOrderID" json:"sales_order,omitempty"`

	DeliveryDate time.Time `gorm:"not null" json:"delivery_date"`

	Subtotal float64 `gorm:"not null;default:0" json:"subtotal"`
	Tax      float64 `gorm:"not null;default:0" json:"tax"`
	Total    float64 `gorm:"not null;default:0" json:"total"`

	Notes string `gorm:"type:text" json:"notes"`

	Items []DeliveryNoteItem `gorm:"foreignKey:DeliveryNoteID" json:"items,omitempty"`
}

func (d *DeliveryNote) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (d DeliveryNote) SearchFields() (name, code string) {
	if d.Customer != nil {
		name = d.Customer.Name
	}
	return name, d.DeliveryNumber
}

// DeliveryNoteItem is a line on a delivery note, ordered by LineNumber.
type DeliveryNoteItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DeliveryNoteID string `gorm:"type:uuid;index;not null" json:"delivery_note_id"`
	LineNumber     int    `gorm:"not null;default:1" json:"line_number"`

	ItemName    string  `gorm:"size:255;not null" json:"item_name"`
	Description string  `gorm:"size:500" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	// Amount is stored as submitted; it is expected but not enforced to
	// equal Quantity × UnitPrice.
	Amount float64 `gorm:"not null;default:0" json:"amount"`
}

func (i *DeliveryNoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ComputedAmount is the quantity × unit-price product for display checks.
func (i *DeliveryNoteItem) ComputedAmount() float64 {
	return i.Quantity * i.UnitPrice
}
