package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStoreIDs limits rows to the given store identifiers.
type ByStoreIDs struct {
	StoreIDs []int
}

func (s ByStoreIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("store_id IN ?", s.StoreIDs)
}

// ByCategory filters medications by category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// BelowReorderPoint selects medications whose stock dropped under their
// reorder point.
type BelowReorderPoint struct{}

func (s BelowReorderPoint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("current_stock < reorder_point")
}

// ByMedicationID filters child rows (consumption, prices) by medication.
type ByMedicationID struct {
	MedicationID uuid.UUID
}

func (s ByMedicationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("medication_id = ?", s.MedicationID)
}

// ConsumedSince keeps consumption records newer than the cutoff.
type ConsumedSince struct {
	Since time.Time
}

func (s ConsumedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("consumed_at >= ?", s.Since)
}

// ActiveOnly keeps suppliers whose status is active.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "active")
}

// BySessionID filters purchase orders by originating generation session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
