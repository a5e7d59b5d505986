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
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/internal/models"
)

func deliveryLogTestSetup(t *testing.T) (*gorm.DB, *DeliveryLogHandler, *models.User, *models.Invoice) {
	t.Helper()
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "sales@example.com")
	customer := &models.Customer{Code: "C001", Name: "株式会社サンプル"}
	require.NoError(t, conn.Create(customer).Error)
	invoice := &models.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d-0001", time.Now().Year()),
		CustomerID:    customer.ID,
		IssueDate:     time.Now(),
		Status:        models.InvoiceStatusSent,
	}
	require.NoError(t, conn.Create(invoice).Error)
	return conn, NewDeliveryLogHandler(conn), user, invoice
}

func TestDeliveryLogCreate(t *testing.T) {
	conn, h, user, invoice := deliveryLogTestSetup(t)

	form := url.Values{
		"invoice_id":      {invoice.ID},
		"delivery_method": {"post"},
		"delivered_at":    {"2026-08-20"},
	}
	rr := httptest.NewRecorder()
	h.Create(rr, formRequest(t, "/delivery-logs", user.ID, form))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/delivery-logs", rr.Header().Get("Location"))
	assert.Equal(t, "success:delivery_recorded", flashValue(t, rr))

	var entry models.InvoiceDeliveryLog
	require.NoError(t, conn.First(&entry, "invoice_id = ?", invoice.ID).Error)
	assert.Equal(t, models.DeliveryMethodPost, entry.DeliveryMethod)
	require.NotNil(t, entry.DeliveredBy)
	assert.Equal(t, user.ID, *entry.DeliveredBy)
}

func TestDeliveryLogCreate_RequiresInvoice(t *testing.T) {
	conn, h, user, _ := deliveryLogTestSetup(t)

	form := url.Values{"delivery_method": {"email"}}
	rr := httptest.NewRecorder()
	h.Create(rr, formRequest(t, "/delivery-logs", user.ID, form))

	// Violations re-render the form without persisting.
	assert.Equal(t, http.StatusOK, rr.Code)
	var count int64
	conn.Model(&models.InvoiceDeliveryLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeliveryLogList(t *testing.T) {
	conn, h, user, invoice := deliveryLogTestSetup(t)

	entries := []models.InvoiceDeliveryLog{
		{InvoiceID: invoice.ID, DeliveryMethod: models.DeliveryMethodEmail, DeliveredAt: time.Now().Add(-48 * time.Hour)},
		{InvoiceID: invoice.ID, DeliveryMethod: models.DeliveryMethodPost, DeliveredAt: time.Now()},
	}
	for i := range entries {
		require.NoError(t, conn.Create(&entries[i]).Error)
	}

	rr := httptest.NewRecorder()
	h.List(rr, getRequest(t, "/delivery-logs", user.ID))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), invoice.InvoiceNumber)
}

func TestDeliveryLogDelete(t *testing.T) {
	conn, h, user, invoice := deliveryLogTestSetup(t)
	entry := models.InvoiceDeliveryLog{InvoiceID: invoice.ID, DeliveryMethod: models.DeliveryMethodEmail, DeliveredAt: time.Now()}
	require.NoError(t, conn.Create(&entry).Error)

	req := formRequest(t, "/delivery-logs/"+entry.ID+"/delete", user.ID, url.Values{})
	req.SetPathValue("id", entry.ID)
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	var count int64
	conn.Model(&models.InvoiceDeliveryLog{}).Count(&count)
	assert.Zero(t, count)
}
