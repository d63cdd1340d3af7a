package model

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:text;not null;default:active"`
	LeadTimeDays int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

type SupplierPrice struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierId   uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationId uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitPrice    float64   `gorm:"not null"`
}

func (SupplierPrice) TableName() string {
	return "supplier_prices"
}
