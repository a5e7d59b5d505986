package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukino/go-hanbai/internal/models"
)

func TestProjectCreate(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	customer := models.Customer{Code: "C001", Name: "株式会社サンプル"}
	require.NoError(t, conn.Create(&customer).Error)
	h := NewProjectHandler(conn)

	form := url.Values{
		"customer_id": {customer.ID},
		"code":        {"P001"},
		"name":        {"新システム導入"},
		"status":      {"active"},
		"start_date":  {"2026-09-01"},
	}
	rr := httptest.NewRecorder()
	h.Create(rr, formRequest(t, "/projects", user.ID, form))

	require.Equal(t, http.StatusSeeOther, rr.Code)

	var project models.Project
	require.NoError(t, conn.First(&project, "code = ?", "P001").Error)
	assert.Equal(t, customer.ID, project.CustomerID)
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	require.NotNil(t, project.StartDate)
}

func TestProjectCreate_RejectsUnknownStatus(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	customer := models.Customer{Code: "C001", Name: "株式会社サンプル"}
	require.NoError(t, conn.Create(&customer).Error)
	h := NewProjectHandler(conn)

	form := url.Values{
		"customer_id": {customer.ID},
		"name":        {"新システム導入"},
		"status":      {"mystery"},
	}
	rr := httptest.NewRecorder()
	h.Create(rr, formRequest(t, "/projects", user.ID, form))

	assert.Equal(t, http.StatusOK, rr.Code)
	var count int64
	conn.Model(&models.Project{}).Count(&count)
	assert.Zero(t, count)
}
