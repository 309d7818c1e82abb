package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoice-extract/models"
)

// RegistrationRepository stores sender -> tax identifier links.
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a RegistrationRepository.
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// GetRegistration returns the tax identifier registered for phone.
// found is false, with a nil error, when the sender never registered.
func (r *RegistrationRepository) GetRegistration(ctx context.Context, phone string) (string, bool, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to find registration: %w", err)
	}
	return reg.TaxID, true, nil
}

// PutRegistration creates the registration, or overwrites the tax identifier of an existing one.
func (r *RegistrationRepository) PutRegistration(ctx context.Context, phone, taxID string) error {
	reg := models.Registration{PhoneNumber: phone, TaxID: taxID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"tax_id", "updated_at"}),
	}).Create(&reg).Error
	if err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

// List returns one page of registrations, newest first, and the total count.
func (r *RegistrationRepository) List(ctx context.Context, page Page) ([]models.Registration, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.Registration{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	var regs []models.Registration
	err := query.Order("created_at desc").Limit(page.Limit).Offset(page.Offset()).Find(&regs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, total, nil
}
