package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/auth"
	"github.com/tsukino/go-hanbai/internal/db"
	"github.com/tsukino/go-hanbai/internal/models"
)

// setupTestDB creates an isolated in-memory SQLite database, migrated and
// seeded like production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return conn
}

// createTestUser inserts a user with the sales profile and returns it.
func createTestUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()
	var profile models.Profile
	if err := conn.Where("name = ?", models.ProfileSales).First(&profile).Error; err != nil {
		t.Fatalf("sales profile not seeded: %v", err)
	}
	user := &models.User{Email: email, Name: "テスト太郎", Password: "x", ProfileID: &profile.ID}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// formRequest builds a POST with form values and the user in context.
func formRequest(t *testing.T, target, userID string, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userID != "" {
		r = r.WithContext(auth.WithUserID(r.Context(), userID))
	}
	return r
}

// getRequest builds a GET with the user in context.
func getRequest(t *testing.T, target, userID string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		r = r.WithContext(auth.WithUserID(r.Context(), userID))
	}
	return r
}

// flashValue returns the decoded flash cookie set on the response, if any.
func flashValue(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge >= 0 {
			v, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatalf("bad flash cookie: %v", err)
			}
			return v
		}
	}
	return ""
}
