package models

import "time"

// Registration links a WhatsApp sender to the tax identifier (CPF) they submitted.
type Registration struct {
	PhoneNumber string    `gorm:"primaryKey" json:"phone_number"`
	TaxID       string    `gorm:"not null" json:"tax_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName implements the GORM tabler interface.
func (Registration) TableName() string { return "registrations" }
