package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukino/go-hanbai/internal/models"
)

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) InvalidateUser(userID string) {
	r.invalidated = append(r.invalidated, userID)
}

func TestAdminAssignProfile(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	cache := &recordingInvalidator{}
	h := NewAdminHandler(conn, cache)

	var admin models.Profile
	require.NoError(t, conn.Where("name = ?", models.ProfileAdmin).First(&admin).Error)

	req := formRequest(t, "/admin/users/"+user.ID+"/profile", user.ID, url.Values{"profile_id": {admin.ID}})
	req.SetPathValue("id", user.ID)
	rr := httptest.NewRecorder()
	h.AssignProfile(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "success:record_updated", flashValue(t, rr))
	assert.Equal(t, []string{user.ID}, cache.invalidated)

	var updated models.User
	require.NoError(t, conn.First(&updated, "id = ?", user.ID).Error)
	require.NotNil(t, updated.ProfileID)
	assert.Equal(t, admin.ID, *updated.ProfileID)
}

func TestAdminAssignProfile_Clear(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	h := NewAdminHandler(conn, &recordingInvalidator{})

	req := formRequest(t, "/admin/users/"+user.ID+"/profile", user.ID, url.Values{"profile_id": {""}})
	req.SetPathValue("id", user.ID)
	rr := httptest.NewRecorder()
	h.AssignProfile(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	var updated models.User
	require.NoError(t, conn.First(&updated, "id = ?", user.ID).Error)
	assert.Nil(t, updated.ProfileID)
}

func TestAdminAssignProfile_UnknownUser(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	cache := &recordingInvalidator{}
	h := NewAdminHandler(conn, cache)

	missing := uuid.NewString()
	req := formRequest(t, "/admin/users/"+missing+"/profile", user.ID, url.Values{"profile_id": {""}})
	req.SetPathValue("id", missing)
	rr := httptest.NewRecorder()
	h.AssignProfile(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, cache.invalidated)
}

func TestAdminAssignProfile_UnknownProfile(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	h := NewAdminHandler(conn, &recordingInvalidator{})
	before := *user.ProfileID

	req := formRequest(t, "/admin/users/"+user.ID+"/profile", user.ID, url.Values{"profile_id": {uuid.NewString()}})
	req.SetPathValue("id", user.ID)
	rr := httptest.NewRecorder()
	h.AssignProfile(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "error:update_failed", flashValue(t, rr))

	var unchanged models.User
	require.NoError(t, conn.First(&unchanged, "id = ?", user.ID).Error)
	require.NotNil(t, unchanged.ProfileID)
	assert.Equal(t, before, *unchanged.ProfileID)
}

func TestAdminUsersScreen(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	h := NewAdminHandler(conn, &recordingInvalidator{})

	rr := httptest.NewRecorder()
	h.Users(rr, getRequest(t, "/admin/users", user.ID))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sales@example.com")
	assert.Contains(t, rr.Body.String(), models.ProfileAdmin)
}
