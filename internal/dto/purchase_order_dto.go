package dto

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseOrderLineResponse struct {
	Id           uuid.UUID `json:"id"`
	MedicationId uuid.UUID `json:"medication_id"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	Priority     string    `json:"priority"`
	Reason       string    `json:"reason"`
}

type PurchaseOrderResponse struct {
	Id           uuid.UUID                   `json:"id"`
	SessionId    string                      `json:"session_id,omitempty"`
	SupplierName string                      `json:"supplier_name"`
	Status       string                      `json:"status"`
	TotalCost    float64                     `json:"total_cost"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    *time.Time                  `json:"updated_at,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
}

type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft submitted received cancelled"`
}
