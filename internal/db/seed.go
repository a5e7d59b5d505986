package db

import (
	"github.com/tsukino/go-hanbai/internal/models"
	"gorm.io/gorm"
)

// businessResources are the permission-gated resource types of the app.
var businessResources = []string{
	"customer",
	"supplier",
	"project",
	"quote",
	"sales_order",
	"invoice",
	"delivery_note",
	"delivery_log",
}

// Seed creates the core permissions and the two system profiles:
// 管理者 (administrator, *:*) and 営業担当 (sales staff, full access to
// every business resource but no admin surface). Idempotent.
func Seed(db *gorm.DB) error {
	if err := seedPermissions(db); err != nil {
		return err
	}
	return seedProfiles(db)
}

func seedPermissions(db *gorm.DB) error {
	type permDef struct {
		ResourceType string
		Action       string
		Description  string
	}
	defs := []permDef{
		{"*", "*", "Full system access"},
	}
	actions := []struct {
		name string
		desc string
	}{
		{"*", "All actions"},
		{"list", "List records"},
		{"view", "View record details"},
		{"create", "Create records"},
		{"update", "Edit records"},
		{"delete", "Delete records"},
	}
	for _, res := range businessResources {
		for _, a := range actions {
			defs = append(defs, permDef{res, a.name, a.desc})
		}
	}

	for _, d := range defs {
		perm := models.Permission{
			ResourceType: d.ResourceType,
			Action:       d.Action,
			Description:  d.Description,
		}
		if err := db.Where("resource_type = ? AND action = ?", d.ResourceType, d.Action).
			FirstOrCreate(&perm).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedProfiles(db *gorm.DB) error {
	var super models.Permission
	if err := db.Where("resource_type = ? AND action = ?", "*", "*").First(&super).Error; err != nil {
		return err
	}

	admin := models.Profile{Name: models.ProfileAdmin, Description: "システム管理者", IsSystem: true}
	if err := db.Where("name = ?", admin.Name).FirstOrCreate(&admin).Error; err != nil {
		return err
	}
	if err := db.Model(&admin).Association("Permissions").Replace([]models.Permission{super}); err != nil {
		return err
	}

	var wildcards []models.Permission
	if err := db.Where("action = ? AND resource_type IN ?", "*", businessResources).
		Find(&wildcards).Error; err != nil {
		return err
	}
	staff := models.Profile{Name: models.ProfileSales, Description: "販売管理業務の担当者", IsSystem: true}
	if err := db.Where("name = ?", staff.Name).FirstOrCreate(&staff).Error; err != nil {
		return err
	}
	return db.Model(&staff).Association("Permissions").Replace(wildcards)
}
