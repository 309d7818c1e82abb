package models

import "time"

// Transaction is one receipt read successfully from a registered sender's photo.
// Rows are insert-only.
type Transaction struct {
	ID          string    `gorm:"primaryKey" json:"transaction_id"`
	TaxID       string    `gorm:"index;not null" json:"tax_id"`
	TotalValue  *string   `json:"total_value"`
	Date        *string   `json:"date"`
	IssuerTaxID *string   `gorm:"column:cnpj" json:"cnpj"`
	CapturedAt  time.Time `gorm:"index" json:"timestamp"`
}

// TableName implements the GORM tabler interface.
func (Transaction) TableName() string { return "fiscal_notes" }
