package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"invoice-extract/models"
)

// ErrMissingTaxID is returned when a transaction has no owner.
var ErrMissingTaxID = errors.New("transaction tax id is required")

// NoteStats summarizes the stored notes of one tax identifier.
type NoteStats struct {
	Count          int64      `json:"count"`
	LastCapturedAt *time.Time `json:"last_captured_at"`
}

// TransactionRepository stores extracted receipts. It has no update or delete path.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// PutTransaction inserts tx.
func (r *TransactionRepository) PutTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.TaxID == "" {
		return ErrMissingTaxID
	}
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// ListByTaxID returns one page of a tax identifier's notes, newest first, and the total count.
func (r *TransactionRepository) ListByTaxID(ctx context.Context, taxID string, page Page) ([]models.Transaction, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("tax_id = ?", taxID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := query.Order("captured_at desc").Limit(page.Limit).Offset(page.Offset()).Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}

// AllByTaxID returns every note of a tax identifier, oldest first.
func (r *TransactionRepository) AllByTaxID(ctx context.Context, taxID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).Where("tax_id = ?", taxID).Order("captured_at asc").Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Stats counts a tax identifier's notes and reports the latest capture time.
func (r *TransactionRepository) Stats(ctx context.Context, taxID string) (NoteStats, error) {
	var stats NoteStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Transaction{}).Where("tax_id = ?", taxID).Count(&stats.Count).Error; err != nil {
		return NoteStats{}, fmt.Errorf("failed to count transactions: %w", err)
	}
	if stats.Count == 0 {
		return stats, nil
	}

	var last models.Transaction
	if err := db.Where("tax_id = ?", taxID).Order("captured_at desc").First(&last).Error; err != nil {
		return NoteStats{}, fmt.Errorf("failed to find latest transaction: %w", err)
	}
	stats.LastCapturedAt = &last.CapturedAt
	return stats, nil
}
