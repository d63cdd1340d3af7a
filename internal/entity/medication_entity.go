package entity

import (
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	Id           uuid.UUID
	Name         string
	Category     string
	StoreId      int
	CurrentStock int
	ReorderPoint int
	Unit         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
