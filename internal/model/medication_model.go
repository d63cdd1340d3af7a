package model

import (
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:text;not null;index"`
	StoreId      int       `gorm:"not null;index"`
	CurrentStock int       `gorm:"not null"`
	ReorderPoint int       `gorm:"not null"`
	Unit         string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Medication) TableName() string {
	return "medications"
}
