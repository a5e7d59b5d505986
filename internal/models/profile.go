package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeded system profile names.
const (
	ProfileAdmin = "管理者"
	ProfileSales = "営業担当"
)

// Profile groups permissions under a name; a user inherits the permissions
// of their assigned profile.
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	// IsSystem marks seeded profiles that must not be deleted from the UI.
	IsSystem bool `gorm:"default:false" json:"is_system"`

	Permissions []Permission `gorm:"many2many:profile_permissions;" json:"permissions,omitempty"`
	Users       []User       `gorm:"foreignKey:ProfileID" json:"users,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Permission is a single allowed action on a resource type,
// matched as "resource:action" with wildcard support.
type Permission struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ResourceType string `gorm:"size:50;not null;index:idx_perm_resource_action" json:"resource_type"`
	Action       string `gorm:"size:50;not null;index:idx_perm_resource_action" json:"action"`
	Description  string `gorm:"size:200" json:"description,omitempty"`
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Code returns the permission in "resource:action" format.
func (p Permission) Code() string {
	return p.ResourceType + ":" + p.Action
}
