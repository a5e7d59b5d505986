package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/view"
)

// cacheInvalidator drops a user's cached profile after reassignment.
type cacheInvalidator interface {
	InvalidateUser(userID string)
}

// AdminHandler serves the user/profile administration screen.
type AdminHandler struct {
	db    *gorm.DB
	cache cacheInvalidator
}

func NewAdminHandler(db *gorm.DB, cache cacheInvalidator) *AdminHandler {
	return &AdminHandler{db: db, cache: cache}
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.db.Preload("Profile").Order("email").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("list users failed")
	}
	var profiles []models.Profile
	if err := h.db.Order("name").Find(&profiles).Error; err != nil {
		log.Error().Err(err).Msg("list profiles failed")
	}

	render(w, r, "admin/users.html", map[string]any{
		"Users":    users,
		"Profiles": profiles,
	})
}

// AssignProfile changes a user's profile. A blank profile_id clears the
// assignment, leaving the user with no permissions.
func (h *AdminHandler) AssignProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	profileID := optionalID(r.FormValue("profile_id"))
	if profileID != nil {
		var count int64
		if err := h.db.Model(&models.Profile{}).Where("id = ?", *profileID).
			Count(&count).Error; err != nil || count == 0 {
			view.SetFlash(w, view.FlashError, "update_failed")
			http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
			return
		}
	}

	if err := h.db.Model(&user).Update("profile_id", profileID).Error; err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("assign profile failed")
		view.SetFlash(w, view.FlashError, "update_failed")
	} else {
		if h.cache != nil {
			h.cache.InvalidateUser(userID)
		}
		view.SetFlash(w, view.FlashSuccess, "record_updated")
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
