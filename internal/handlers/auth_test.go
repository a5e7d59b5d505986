package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/internal/models"
)

func signup(t *testing.T, h *AuthHandler, email, name, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "name": {name}, "password": {password}}
	rr := httptest.NewRecorder()
	h.Signup(rr, formRequest(t, "/signup", "", form))
	return rr
}

func userProfileName(t *testing.T, conn *gorm.DB, email string) string {
	t.Helper()
	var user models.User
	require.NoError(t, conn.Preload("Profile").Where("email = ?", email).First(&user).Error)
	require.NotNil(t, user.Profile)
	return user.Profile.Name
}

func TestSignup_FirstUserBecomesAdmin(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	rr := signup(t, h, "first@example.com", "一人目", "secret123")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	assert.Equal(t, models.ProfileAdmin, userProfileName(t, conn, "first@example.com"))

	rr = signup(t, h, "second@example.com", "二人目", "secret123")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, models.ProfileSales, userProfileName(t, conn, "second@example.com"))
}

func TestSignup_HashesPassword(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	signup(t, h, "first@example.com", "一人目", "secret123")

	var user models.User
	require.NoError(t, conn.Where("email = ?", "first@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	signup(t, h, "first@example.com", "一人目", "secret123")
	rr := signup(t, h, "first@example.com", "別人", "other456")

	assert.Equal(t, http.StatusOK, rr.Code)
	var count int64
	conn.Model(&models.User{}).Where("email = ?", "first@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignup_RequiredFields(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	rr := signup(t, h, "first@example.com", "", "secret123")

	assert.Equal(t, http.StatusOK, rr.Code)
	var count int64
	conn.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)
	signup(t, h, "first@example.com", "一人目", "secret123")

	form := url.Values{"email": {"first@example.com"}, "password": {"secret123"}}
	rr := httptest.NewRecorder()
	h.Login(rr, formRequest(t, "/login", "", form))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session, "login must set a session cookie")
	assert.NotEmpty(t, session.Value)
}

func TestLogin_WrongPassword(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)
	signup(t, h, "first@example.com", "一人目", "secret123")

	form := url.Values{"email": {"first@example.com"}, "password": {"wrong"}}
	rr := httptest.NewRecorder()
	h.Login(rr, formRequest(t, "/login", "", form))

	// The form is re-rendered; no redirect, no session.
	assert.Equal(t, http.StatusOK, rr.Code)
	for _, c := range rr.Result().Cookies() {
		assert.NotEqual(t, "session", c.Name)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	rr := httptest.NewRecorder()
	h.Logout(rr, getRequest(t, "/logout", ""))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" && c.Value == "" && c.Expires.Before(time.Now()) {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}
