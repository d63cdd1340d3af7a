package dto

import "time"

// GenerateOrderRequest is the body of POST /po-generation/v1/generate.
// Defaults: forecast_days 30, urgency_threshold 0.5.
type GenerateOrderRequest struct {
	StoreIds         []int    `json:"store_ids,omitempty"`
	Category         string   `json:"category,omitempty"`
	ForecastDays     int      `json:"forecast_days,omitempty" validate:"omitempty,gt=0"`
	UrgencyThreshold *float64 `json:"urgency_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type GenerateOrderResponse struct {
	SessionId string `json:"session_id"`
}

type GenerationStatusResponse struct {
	SessionId       string              `json:"session_id"`
	Status          string              `json:"status"`
	ProgressPercent int                 `json:"progress_percent"`
	CurrentStage    string              `json:"current_stage"`
	StagesCompleted []string            `json:"stages_completed"`
	CreatedAt       time.Time           `json:"created_at"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
	Error           *GenerationErrorDTO `json:"error,omitempty"`
}

type GenerationErrorDTO struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Timeout bool   `json:"timeout,omitempty"`
}

type StageArtifactDTO struct {
	Confidence     float64  `json:"confidence"`
	Summary        string   `json:"summary"`
	DecisionPoints []string `json:"decision_points"`
}

type RecommendedItemDTO struct {
	MedicationId string  `json:"medication_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Reason       string  `json:"reason"`
	Priority     string  `json:"priority"`
	SupplierName string  `json:"supplier_name"`
	UnitPrice    float64 `json:"unit_price"`
}

type GenerationResultResponse struct {
	SessionId         string                      `json:"session_id"`
	Items             []RecommendedItemDTO        `json:"items"`
	EstimatedTotal    float64                     `json:"estimated_total"`
	SuggestedSupplier string                      `json:"suggested_supplier"`
	Reasoning         map[string]StageArtifactDTO `json:"reasoning"`
	TotalItems        int                         `json:"total_items"`
	AvgLeadTimeDays   float64                     `json:"avg_lead_time_days"`
}

// GeneratePurchaseOrderMessage is the kickoff payload published to the
// in-process job topic.
type GeneratePurchaseOrderMessage struct {
	SessionId        string  `json:"session_id"`
	StoreIds         []int   `json:"store_ids,omitempty"`
	Category         string  `json:"category,omitempty"`
	ForecastDays     int     `json:"forecast_days"`
	UrgencyThreshold float64 `json:"urgency_threshold"`
}
