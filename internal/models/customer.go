package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a master-data record for a party we sell to (得意先).
type Customer struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	Code          string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name          string `gorm:"size:255;not null" json:"name"`
	NameKana      string `gorm:"size:255" json:"name_kana"`
	PostalCode    string `gorm:"size:10" json:"postal_code"`
	Address       string `gorm:"size:500" json:"address"`
	Phone         string `gorm:"size:50" json:"phone"`
	Email         string `gorm:"size:255" json:"email"`
	ContactPerson string `gorm:"size:255" json:"contact_person"`
	Notes         string `gorm:"type:text" json:"notes"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (c Customer) SearchFields() (name, code string) {
	return c.Name, c.Code
}
