package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/auth"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/validation"
	"github.com/tsukino/go-hanbai/view"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in with a live account: skip the form.
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		var count int64
		if err := h.db.Model(&models.User{}).Where("id = ?", uid).Count(&count).Error; err == nil && count > 0 {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		auth.ClearSession(w)
	}
	render(w, r, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		render(w, r, "login.html", map[string]any{"Error": "login_failed", "Email": email})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		render(w, r, "login.html", map[string]any{"Error": "login_failed", "Email": email})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		render(w, r, "login.html", map[string]any{"Error": "login_failed", "Email": email})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	render(w, r, "signup.html", nil)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")

	v := make(validation.Violations)
	validation.Required("email", email, v)
	validation.Required("name", name, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		render(w, r, "signup.html", map[string]any{"Errors": v, "Email": email, "Name": name})
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		render(w, r, "signup.html", map[string]any{"Error": "email_exists", "Email": email, "Name": name})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		render(w, r, "signup.html", map[string]any{"Error": "save_failed", "Email": email, "Name": name})
		return
	}

	user := models.User{Email: email, Name: name, Password: string(hash)}
	if profile := h.signupProfile(); profile != nil {
		user.ProfileID = &profile.ID
	}
	if err := h.db.Create(&user).Error; err != nil {
		log.Error().Err(err).Str("email", email).Msg("signup failed")
		render(w, r, "signup.html", map[string]any{"Error": "save_failed", "Email": email, "Name": name})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// signupProfile picks the profile for a new account: the very first user
// becomes an administrator, everyone after that gets the sales profile.
func (h *AuthHandler) signupProfile() *models.Profile {
	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil
	}
	name := models.ProfileSales
	if total == 0 {
		name = models.ProfileAdmin
	}
	var profile models.Profile
	if err := h.db.Where("name = ?", name).First(&profile).Error; err != nil {
		return nil
	}
	return &profile
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// render is the shared template helper; a render failure is a server bug,
// not a user error.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
