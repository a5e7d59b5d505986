package models

import (
	"testing"
)

func TestCustomer_SearchFields(t *testing.T) {
	c := Customer{Code: "C001", Name: "株式会社サンプル"}
	name, code := c.SearchFields()
	if name != "株式会社サンプル" || code != "C001" {
		t.Errorf("SearchFields() = %q, %q", name, code)
	}
}

func TestQuote_SearchFields(t *testing.T) {
	q := Quote{QuoteNumber: "QT-2026-0001"}
	name, code := q.SearchFields()
	if name != "" {
		t.Errorf("expected empty name without preloaded customer, got %q", name)
	}
	if code != "QT-2026-0001" {
		t.Errorf("code = %q", code)
	}

	q.Customer = &Customer{Name: "株式会社テスト"}
	name, _ = q.SearchFields()
	if name != "株式会社テスト" {
		t.Errorf("name = %q", name)
	}
}

func TestQuoteItem_ComputedAmount(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		unitPrice float64
		want      float64
	}{
		{"whole units", 3, 1000, 3000},
		{"fractional quantity", 2.5, 100, 250},
		{"zero price", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &QuoteItem{Quantity: tt.quantity, UnitPrice: tt.unitPrice}
			if got := i.ComputedAmount(); got != tt.want {
				t.Errorf("ComputedAmount() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestQuote_IsDraft(t *testing.T) {
	q := &Quote{Status: QuoteStatusDraft}
	if !q.IsDraft() {
		t.Error("draft quote should be draft")
	}
	q.Status = QuoteStatusAccepted
	if q.IsDraft() {
		t.Error("accepted quote should not be draft")
	}
}

func TestSalesOrder_IsOpen(t *testing.T) {
	tests := []struct {
		status SalesOrderStatus
		want   bool
	}{
		{SalesOrderStatusPending, true},
		{SalesOrderStatusProcessing, true},
		{SalesOrderStatusCompleted, false},
		{SalesOrderStatusCanceled, false},
	}
	for _, tt := range tests {
		o := &SalesOrder{Status: tt.status}
		if got := o.IsOpen(); got != tt.want {
			t.Errorf("IsOpen() with %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestInvoice_IsPaid(t *testing.T) {
	inv := &Invoice{Status: InvoiceStatusPaid}
	if !inv.IsPaid() {
		t.Error("paid invoice should be paid")
	}
	inv.Status = InvoiceStatusSent
	if inv.IsPaid() {
		t.Error("sent invoice should not be paid")
	}
}

func TestDeliveryLog_SearchFields(t *testing.T) {
	l := InvoiceDeliveryLog{RecipientEmail: "keiri@example.co.jp", DeliveryMethod: DeliveryMethodEmail}
	name, code := l.SearchFields()
	if name != "keiri@example.co.jp" || code != "email" {
		t.Errorf("SearchFields() = %q, %q", name, code)
	}
}

func TestPermission_Code(t *testing.T) {
	p := Permission{ResourceType: "customer", Action: "create"}
	if p.Code() != "customer:create" {
		t.Errorf("Code() = %q", p.Code())
	}
}
