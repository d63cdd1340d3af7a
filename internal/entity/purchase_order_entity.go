package entity

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseOrder is a drafted order, usually materialized from a completed
// generation session.
type PurchaseOrder struct {
	Id           uuid.UUID
	SessionId    string
	SupplierName string
	Status       string
	TotalCost    float64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	Lines        []*PurchaseOrderLine
}

type PurchaseOrderLine struct {
	Id              uuid.UUID
	PurchaseOrderId uuid.UUID
	MedicationId    uuid.UUID
	Quantity        int
	UnitPrice       float64
	Priority        string
	Reason          string
}
