package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/store"
)

// seasonalFactors uplift winter months for respiratory/flu demand. Applied
// uniformly; per-category curves belong to the forecasting model, not here.
var seasonalFactors = map[time.Month]float64{
	time.December: 1.15,
	time.January:  1.15,
	time.February: 1.10,
	time.June:     0.95,
	time.July:     0.95,
}

// AdjustmentStage applies contextual corrections to the forecast: urgency
// threshold, seasonality, and a category filter re-check. Same projection
// shape in and out.
type AdjustmentStage struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
	now         func() time.Time
}

func NewAdjustmentStage(llmProvider llm.LLMProvider, logger *log.Logger) *AdjustmentStage {
	return &AdjustmentStage{
		llmProvider: llmProvider,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AdjustmentStage) Name() string {
	return constant.StageAdjustment
}

func (s *AdjustmentStage) Run(ctx context.Context, state *State) error {
	req := state.Request
	factor := 1.0
	if f, ok := seasonalFactors[s.now().Month()]; ok {
		factor = f
	}

	adjusted := make([]ProjectedDemand, 0, len(state.Projection))
	urgentCount := 0
	for _, p := range state.Projection {
		if req.Category != "" && p.Category != req.Category {
			continue
		}

		p.ProjectedNeed *= factor

		// A medication is urgent when stock fell below the threshold
		// fraction of its reorder point; restock it to at least that point.
		if float64(p.CurrentStock) < req.UrgencyThreshold*float64(p.ReorderPoint) {
			p.Urgent = true
			urgentCount++
			if p.ProjectedNeed < float64(p.ReorderPoint) {
				p.ProjectedNeed = float64(p.ReorderPoint)
			}
		}

		adjusted = append(adjusted, p)
	}

	s.logger.Printf("[ADJUSTMENT] session=%s seasonal=%.2f urgent=%d/%d", state.SessionID, factor, urgentCount, len(adjusted))

	summary, err := s.summarize(ctx, adjusted, factor, urgentCount)
	if err != nil {
		return fmt.Errorf("adjustment summary: %w", err)
	}

	confidence := 0.7
	if len(adjusted) > 0 && urgentCount == 0 {
		confidence = 0.85
	}

	decisions := []string{
		fmt.Sprintf("seasonal factor %.2f for %s", factor, s.now().Month()),
		fmt.Sprintf("urgency threshold %.2f flagged %d medication(s)", req.UrgencyThreshold, urgentCount),
	}
	if dropped := len(state.Projection) - len(adjusted); dropped > 0 {
		decisions = append(decisions, fmt.Sprintf("dropped %d medication(s) outside category %q", dropped, req.Category))
	}

	state.Projection = adjusted
	state.Artifacts[s.Name()] = store.StageArtifact{
		Confidence:     confidence,
		Summary:        summary,
		DecisionPoints: decisions,
	}
	return nil
}

func (s *AdjustmentStage) summarize(ctx context.Context, adjusted []ProjectedDemand, factor float64, urgentCount int) (string, error) {
	var digest strings.Builder
	fmt.Fprintf(&digest, "Applied seasonal factor %.2f; %d urgent medication(s) out of %d.\n", factor, urgentCount, len(adjusted))
	for i, p := range adjusted {
		if i >= 20 {
			break
		}
		flag := ""
		if p.Urgent {
			flag = " URGENT"
		}
		fmt.Fprintf(&digest, "- %s: revised need %.1f%s\n", p.Name, p.ProjectedNeed, flag)
	}

	prompt := fmt.Sprintf(`You are a pharmacy demand planner. In 2-3 sentences, explain the adjustments below to a warehouse manager, calling out urgent medications first. Respond with plain text only.

%s`, digest.String())

	return s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
}
