package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryMethod is how an invoice was sent to the customer.
type DeliveryMethod string

const (
	DeliveryMethodEmail DeliveryMethod = "email"
	DeliveryMethodPost  DeliveryMethod = "post"
	DeliveryMethodFax   DeliveryMethod = "fax"
	DeliveryMethodHand  DeliveryMethod = "hand"
)

// DeliveryMethods lists the allowed values for form validation.
var DeliveryMethods = []string{
	string(DeliveryMethodEmail),
	string(DeliveryMethodPost),
	string(DeliveryMethodFax),
	string(DeliveryMethodHand),
}

// InvoiceDeliveryLog records one act of sending an invoice (送付ログ).
// Entries are append-only: they are created when a send is recorded and
// never edited afterwards.
type InvoiceDeliveryLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID string   `gorm:"type:uuid;index;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`

	DeliveryMethod DeliveryMethod `gorm:"size:20;not null" json:"delivery_method"`
	RecipientEmail string         `gorm:"size:255" json:"recipient_email"`
	DeliveredAt    time.Time      `gorm:"not null" json:"delivered_at"`
	DeliveredBy    *string        `gorm:"type:uuid" json:"delivered_by,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes"`
}

func (l *InvoiceDeliveryLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
// For logs the filter runs against the recipient and the method.
func (l InvoiceDeliveryLog) SearchFields() (name, code string) {
	return l.RecipientEmail, string(l.DeliveryMethod)
}
