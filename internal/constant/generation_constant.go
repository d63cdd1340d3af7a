package constant

// Pipeline stage names, in execution order
const (
	StageForecast   = "forecast"
	StageAdjustment = "adjustment"
	StageAllocation = "allocation"
)

// Recommended item priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SupplierMixed is reported when allocation splits lines across suppliers.
const SupplierMixed = "mixed"

// Generation request defaults
const (
	DefaultForecastDays     = 30
	DefaultUrgencyThreshold = 0.5
)
