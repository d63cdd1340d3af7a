package store

import "time"

// Session statuses. The only legal transitions are
// pending -> processing -> completed|failed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// GenerationSession tracks one purchase-order generation request from
// creation to a terminal state. It is created by the API, mutated only by
// the pipeline run that claimed it, and read concurrently by status polls.
type GenerationSession struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"` // pending | processing | completed | failed
	ProgressPercent int              `json:"progress_percent"`
	CurrentStage    string           `json:"current_stage"`
	StagesCompleted []string         `json:"stages_completed"`
	CreatedAt       time.Time        `json:"created_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	Result          *Result          `json:"result,omitempty"`
	Error           *GenerationError `json:"error,omitempty"`
}

// GenerationError records which stage failed and why.
type GenerationError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Timeout bool   `json:"timeout"`
}

// StageArtifact is the explanatory output each stage produces alongside
// its data output.
type StageArtifact struct {
	Confidence     float64  `json:"confidence"`
	Summary        string   `json:"summary"`
	DecisionPoints []string `json:"decision_points"`
}

// RecommendedItem is one line of the eventual purchase order.
type RecommendedItem struct {
	MedicationID string  `json:"medication_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Reason       string  `json:"reason"`
	Priority     string  `json:"priority"` // high | medium | low
	SupplierName string  `json:"supplier_name"`
	UnitPrice    float64 `json:"unit_price"`
}

// Result is the terminal output of a completed session. Immutable once
// attached.
type Result struct {
	Items             []RecommendedItem        `json:"items"`
	EstimatedTotal    float64                  `json:"estimated_total"`
	SuggestedSupplier string                   `json:"suggested_supplier"`
	Reasoning         map[string]StageArtifact `json:"reasoning"`
	TotalItems        int                      `json:"total_items"`
	AvgLeadTimeDays   float64                  `json:"avg_lead_time_days"`
}

// Clone returns a deep copy so readers never observe writer mutations.
func (s *GenerationSession) Clone() *GenerationSession {
	if s == nil {
		return nil
	}
	cp := *s
	cp.StagesCompleted = append([]string(nil), s.StagesCompleted...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		cp.CompletedAt = &t
	}
	if s.Error != nil {
		e := *s.Error
		cp.Error = &e
	}
	if s.Result != nil {
		r := *s.Result
		r.Items = append([]RecommendedItem(nil), s.Result.Items...)
		r.Reasoning = make(map[string]StageArtifact, len(s.Result.Reasoning))
		for k, v := range s.Result.Reasoning {
			v.DecisionPoints = append([]string(nil), v.DecisionPoints...)
			r.Reasoning[k] = v
		}
		cp.Result = &r
	}
	return &cp
}

// Terminal reports whether the session reached completed or failed.
func (s *GenerationSession) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}
