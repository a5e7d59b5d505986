// Package services implements document-level operations shared by the
// handlers: sequential document numbering and line-item totals.
package services

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/tsukino/go-hanbai/internal/models"
	"gorm.io/gorm"
)

// TaxRate is the consumption tax rate applied to document subtotals.
const TaxRate = 0.10

// DocumentService owns numbering and totals for quotes, invoices and
// delivery notes.
type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// nextNumber produces "<prefix>-<year>-<seq>" (e.g. "QT-2026-0001") by
// counting existing numbers for the year. The LIKE pattern keeps the query
// portable between PostgreSQL and the SQLite test databases.
func (s *DocumentService) nextNumber(model any, column, prefix string, at time.Time) (string, error) {
	var count int64
	pattern := fmt.Sprintf("%s-%d-%%", prefix, at.Year())
	if err := s.db.Model(model).Where(column+" LIKE ?", pattern).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, at.Year(), count+1), nil
}

func (s *DocumentService) NextQuoteNumber(at time.Time) (string, error) {
	return s.nextNumber(&models.Quote{}, "quote_number", "QT", at)
}

func (s *DocumentService) NextOrderNumber(at time.Time) (string, error) {
	return s.nextNumber(&models.SalesOrder{}, "order_number", "SO", at)
}

func (s *DocumentService) NextInvoiceNumber(at time.Time) (string, error) {
	return s.nextNumber(&models.Invoice{}, "invoice_number", "INV", at)
}

func (s *DocumentService) NextDeliveryNumber(at time.Time) (string, error) {
	return s.nextNumber(&models.DeliveryNote{}, "delivery_number", "DN", at)
}

// SumAmounts totals the stored line amounts and derives tax and total.
// The tax fraction is truncated, as is customary for consumption tax.
func SumAmounts(amounts []float64) (subtotal, tax, total float64) {
	for _, a := range amounts {
		subtotal += a
	}
	tax = math.Floor(subtotal * TaxRate)
	total = subtotal + tax
	return subtotal, tax, total
}

// RecalculateQuote refreshes the quote's subtotal/tax/total from its items.
func (s *DocumentService) RecalculateQuote(quoteID string) error {
	var items []models.QuoteItem
	if err := s.db.Where("quote_id = ?", quoteID).Find(&items).Error; err != nil {
		return err
	}
	amounts := make([]float64, len(items))
	for i, it := range items {
		amounts[i] = it.Amount
	}
	subtotal, tax, total := SumAmounts(amounts)
	return s.db.Model(&models.Quote{}).Where("id = ?", quoteID).
		Updates(map[string]any{"subtotal": subtotal, "tax": tax, "total": total}).Error
}

// RecalculateInvoice refreshes the invoice's subtotal/tax/total from its items.
func (s *DocumentService) RecalculateInvoice(invoiceID string) error {
	var items []models.InvoiceItem
	if err := s.db.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return err
	}
	amounts := make([]float64, len(items))
	for i, it := range items {
		amounts[i] = it.Amount
	}
	subtotal, tax, total := SumAmounts(amounts)
	return s.db.Model(&models.Invoice{}).Where("id = ?", invoiceID).
		Updates(map[string]any{"subtotal": subtotal, "tax": tax, "total": total}).Error
}

// RecalculateDeliveryNote refreshes the note's subtotal/tax/total from its items.
func (s *DocumentService) RecalculateDeliveryNote(noteID string) error {
	var items []models.DeliveryNoteItem
	if err := s.db.Where("delivery_note_id = ?", noteID).Find(&items).Error; err != nil {
		return err
	}
	amounts := make([]float64, len(items))
	for i, it := range items {
		amounts[i] = it.Amount
	}
	subtotal, tax, total := SumAmounts(amounts)
	return s.db.Model(&models.DeliveryNote{}).Where("id = ?", noteID).
		Updates(map[string]any{"subtotal": subtotal, "tax": tax, "total": total}).Error
}

// NextLineNumber returns the ordinal for a new line on a parent document.
func NextLineNumber(db *gorm.DB, model any, parentColumn, parentID string) (int, error) {
	var maxLine sql.NullInt64
	err := db.Model(model).Where(parentColumn+" = ?", parentID).
		Select("MAX(line_number)").Scan(&maxLine).Error
	if err != nil {
		return 0, err
	}
	if !maxLine.Valid {
		return 1, nil
	}
	return int(maxLine.Int64) + 1, nil
}
