package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pharma-warehouse-be/internal/entity"
)

// InventoryReader is the read-only medication/consumption query surface the
// stages consume. The production implementation sits on the repository
// layer; tests substitute fixtures.
type InventoryReader interface {
	// Medications returns the medications in scope. Empty storeIDs means
	// all stores; empty category means all categories.
	Medications(ctx context.Context, storeIDs []int, category string) ([]*entity.Medication, error)

	// DailyConsumption averages consumed units per day over the lookback
	// window ending now.
	DailyConsumption(ctx context.Context, medicationID uuid.UUID, lookback time.Duration) (float64, error)
}

// SupplierReader is the read-only supplier/price query surface used by the
// allocation stage.
type SupplierReader interface {
	ActiveSuppliers(ctx context.Context) ([]*entity.Supplier, error)
	PricesFor(ctx context.Context, medicationID uuid.UUID) ([]*entity.SupplierPrice, error)
}
