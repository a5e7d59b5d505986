package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a project (案件).
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCanceled  ProjectStatus = "canceled"
)

// ProjectStatuses lists the allowed values for form validation.
var ProjectStatuses = []string{
	string(ProjectStatusActive),
	string(ProjectStatusCompleted),
	string(ProjectStatusCanceled),
}

// Project groups documents under a customer engagement.
type Project struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updated_by,omitempty"`

	// CustomerID is a weak reference: deleting the customer leaves the
	// project in place. No FK constraint is created (see db.Connect).
	CustomerID string    `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Code      string        `gorm:"size:50;index" json:"code"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Status    ProjectStatus `gorm:"size:20;default:'active'" json:"status"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	Notes     string        `gorm:"type:text" json:"notes"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SearchFields returns the values matched by the list view's text filter.
func (p Project) SearchFields() (name, code string) {
	return p.Name, p.Code
}

// IsActive reports whether the project is still running.
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}
