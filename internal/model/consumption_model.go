package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsumptionRecord struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicationId uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreId      int       `gorm:"not null;index"`
	Quantity     int       `gorm:"not null"`
	ConsumedAt   time.Time `gorm:"not null;index"`
}

func (ConsumptionRecord) TableName() string {
	return "consumption_records"
}
