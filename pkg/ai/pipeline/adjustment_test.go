package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"pharma-warehouse-be/internal/constant"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestAdjustmentStageSeasonality(t *testing.T) {
	tests := []struct {
		name       string
		month      time.Month
		wantFactor float64
	}{
		{name: "december uplift", month: time.December, wantFactor: 1.15},
		{name: "january uplift", month: time.January, wantFactor: 1.15},
		{name: "february uplift", month: time.February, wantFactor: 1.10},
		{name: "june dip", month: time.June, wantFactor: 0.95},
		{name: "july dip", month: time.July, wantFactor: 0.95},
		{name: "neutral month", month: time.April, wantFactor: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := NewAdjustmentStage(&stubLLM{reply: "adjusted"}, testLogger())
			stage.now = fixedClock(tt.month)

			state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
			state.Projection = []ProjectedDemand{
				{MedicationID: uuid.New(), Name: "Paracetamol", CurrentStock: 500, ReorderPoint: 300, ProjectedNeed: 100},
			}

			if err := stage.Run(context.Background(), state); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got := state.Projection[0].ProjectedNeed
			want := 100 * tt.wantFactor
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("ProjectedNeed = %v, want %v", got, want)
			}
		})
	}
}

func TestAdjustmentStageUrgency(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int
		reorderPoint int
		threshold    float64
		projected    float64
		wantUrgent   bool
		wantNeed     float64
	}{
		{
			// 40 < 0.5*200, restocked up to the reorder point
			name:         "urgent and restocked to reorder point",
			currentStock: 40,
			reorderPoint: 200,
			threshold:    0.5,
			projected:    80,
			wantUrgent:   true,
			wantNeed:     200,
		},
		{
			// urgent but demand already above the reorder point
			name:         "urgent keeps larger projection",
			currentStock: 40,
			reorderPoint: 200,
			threshold:    0.5,
			projected:    350,
			wantUrgent:   true,
			wantNeed:     350,
		},
		{
			// 150 >= 0.5*200
			name:         "not urgent above threshold",
			currentStock: 150,
			reorderPoint: 200,
			threshold:    0.5,
			projected:    80,
			wantUrgent:   false,
			wantNeed:     80,
		},
		{
			// threshold 0 disables urgency entirely
			name:         "zero threshold never urgent",
			currentStock: 0,
			reorderPoint: 200,
			threshold:    0,
			projected:    80,
			wantUrgent:   false,
			wantNeed:     80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := NewAdjustmentStage(&stubLLM{reply: "adjusted"}, testLogger())
			stage.now = fixedClock(time.April) // neutral seasonality

			state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: tt.threshold})
			state.Projection = []ProjectedDemand{
				{MedicationID: uuid.New(), Name: "Metformin", CurrentStock: tt.currentStock, ReorderPoint: tt.reorderPoint, ProjectedNeed: tt.projected},
			}

			if err := stage.Run(context.Background(), state); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			p := state.Projection[0]
			if p.Urgent != tt.wantUrgent {
				t.Errorf("Urgent = %v, want %v", p.Urgent, tt.wantUrgent)
			}
			if math.Abs(p.ProjectedNeed-tt.wantNeed) > 1e-9 {
				t.Errorf("ProjectedNeed = %v, want %v", p.ProjectedNeed, tt.wantNeed)
			}
		})
	}
}

func TestAdjustmentStageDropsForeignCategories(t *testing.T) {
	stage := NewAdjustmentStage(&stubLLM{reply: "adjusted"}, testLogger())
	stage.now = fixedClock(time.April)

	state := NewState("session-1", Request{Category: "antibiotic", ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: uuid.New(), Name: "Amoxicillin", Category: "antibiotic", CurrentStock: 100, ReorderPoint: 150, ProjectedNeed: 60},
		{MedicationID: uuid.New(), Name: "Paracetamol", Category: "analgesic", CurrentStock: 100, ReorderPoint: 150, ProjectedNeed: 60},
	}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(state.Projection) != 1 {
		t.Fatalf("Projection count = %d, want 1", len(state.Projection))
	}
	if state.Projection[0].Name != "Amoxicillin" {
		t.Errorf("kept %q, want Amoxicillin", state.Projection[0].Name)
	}

	artifact := state.Artifacts[constant.StageAdjustment]
	if len(artifact.DecisionPoints) < 3 {
		t.Errorf("expected drop recorded in decision points, got %v", artifact.DecisionPoints)
	}
}
