package entity

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	Id           uuid.UUID
	Name         string
	Status       string // active | suspended
	LeadTimeDays int
	CreatedAt    time.Time
}

// SupplierPrice is a supplier's unit price for one medication.
type SupplierPrice struct {
	Id           uuid.UUID
	SupplierId   uuid.UUID
	MedicationId uuid.UUID
	UnitPrice    float64
}

const (
	SupplierStatusActive    = "active"
	SupplierStatusSuspended = "suspended"
)
