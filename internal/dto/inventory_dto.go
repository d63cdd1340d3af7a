package dto

import (
	"time"

	"github.com/google/uuid"
)

type GetAllMedicationsRequest struct {
	StoreIds []int  `query:"store_ids"`
	Category string `query:"category"`
	LowStock bool   `query:"low_stock"`
}

type MedicationResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	StoreId      int        `json:"store_id"`
	CurrentStock int        `json:"current_stock"`
	ReorderPoint int        `json:"reorder_point"`
	Unit         string     `json:"unit"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
