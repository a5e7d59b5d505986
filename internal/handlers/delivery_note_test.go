package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/internal/services"
)

func TestDeliveryNoteCreateAndAddItem(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	customer := models.Customer{Code: "C001", Name: "株式会社サンプル"}
	require.NoError(t, conn.Create(&customer).Error)
	h := NewDeliveryNoteHandler(conn, services.NewDocumentService(conn))

	form := url.Values{
		"customer_id":   {customer.ID},
		"delivery_date": {"2026-08-25"},
	}
	rr := httptest.NewRecorder()
	h.Create(rr, formRequest(t, "/delivery-notes", user.ID, form))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	var note models.DeliveryNote
	require.NoError(t, conn.First(&note, "customer_id = ?", customer.ID).Error)
	assert.Equal(t, fmt.Sprintf("DN-%d-0001", time.Now().Year()), note.DeliveryNumber)

	itemForm := url.Values{"item_name": {"機材一式"}, "quantity": {"2"}, "unit_price": {"45000"}}
	req := formRequest(t, "/delivery-notes/"+note.ID+"/items", user.ID, itemForm)
	req.SetPathValue("id", note.ID)
	rr = httptest.NewRecorder()
	h.AddItem(rr, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	require.NoError(t, conn.First(&note, "id = ?", note.ID).Error)
	assert.Equal(t, 90000.0, note.Subtotal)
	assert.Equal(t, 9000.0, note.Tax)
	assert.Equal(t, 99000.0, note.Total)
}

func TestDeliveryNoteDelete_RemovesItems(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	customer := models.Customer{Code: "C001", Name: "株式会社サンプル"}
	require.NoError(t, conn.Create(&customer).Error)
	h := NewDeliveryNoteHandler(conn, services.NewDocumentService(conn))

	note := models.DeliveryNote{
		DeliveryNumber: fmt.Sprintf("DN-%d-0001", time.Now().Year()),
		CustomerID:     customer.ID,
		DeliveryDate:   time.Now(),
	}
	require.NoError(t, conn.Create(&note).Error)
	item := models.DeliveryNoteItem{DeliveryNoteID: note.ID, LineNumber: 1, ItemName: "機材一式", Quantity: 1, UnitPrice: 45000, Amount: 45000}
	require.NoError(t, conn.Create(&item).Error)

	req := formRequest(t, "/delivery-notes/"+note.ID+"/delete", user.ID, url.Values{})
	req.SetPathValue("id", note.ID)
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	var notes, items int64
	conn.Model(&models.DeliveryNote{}).Count(&notes)
	conn.Model(&models.DeliveryNoteItem{}).Count(&items)
	assert.Zero(t, notes)
	assert.Zero(t, items)
}
