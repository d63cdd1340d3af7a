package model

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseOrder struct {
	Id           uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    string              `gorm:"type:text;index"`
	SupplierName string              `gorm:"type:text;not null"`
	Status       string              `gorm:"type:text;not null;default:draft;index"`
	TotalCost    float64             `gorm:"not null"`
	CreatedAt    time.Time           `gorm:"autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime"`
	Lines        []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderId;constraint:OnDelete:CASCADE"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type PurchaseOrderLine struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderId uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationId    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity        int       `gorm:"not null"`
	UnitPrice       float64   `gorm:"not null"`
	Priority        string    `gorm:"type:text;not null"`
	Reason          string    `gorm:"type:text"`
}

func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}
