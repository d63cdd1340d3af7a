package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsumptionRecord is one dispensing event for a medication at a store.
type ConsumptionRecord struct {
	Id           uuid.UUID
	MedicationId uuid.UUID
	StoreId      int
	Quantity     int
	ConsumedAt   time.Time
}
