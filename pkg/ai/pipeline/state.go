package pipeline

import (
	"github.com/google/uuid"

	"pharma-warehouse-be/pkg/store"
)

// Request carries the generation parameters into the pipeline. Immutable
// once submitted.
type Request struct {
	StoreIDs         []int
	Category         string
	ForecastDays     int
	UrgencyThreshold float64
}

// ProjectedDemand is the per-medication projection handed from stage to
// stage. Forecast produces it, Adjustment revises it in place, Allocation
// consumes it.
type ProjectedDemand struct {
	MedicationID  uuid.UUID
	Name          string
	Category      string
	CurrentStock  int
	ReorderPoint  int
	DailyDemand   float64
	ProjectedNeed float64 // units needed over the forecast horizon
	Urgent        bool
}

// State is the shared pipeline state for one session. Stages run strictly
// in order, so no synchronization is needed.
type State struct {
	SessionID  string
	Request    Request
	Projection []ProjectedDemand
	Artifacts  map[string]store.StageArtifact
	Result     *store.Result
}

func NewState(sessionID string, req Request) *State {
	return &State{
		SessionID: sessionID,
		Request:   req,
		Artifacts: make(map[string]store.StageArtifact),
	}
}
