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

// consumptionLookback is the history window used to derive daily demand.
const consumptionLookback = 90 * 24 * time.Hour

// ForecastStage projects per-medication demand over the request horizon
// from historical consumption.
type ForecastStage struct {
	inventory   InventoryReader
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewForecastStage(inventory InventoryReader, llmProvider llm.LLMProvider, logger *log.Logger) *ForecastStage {
	return &ForecastStage{
		inventory:   inventory,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (s *ForecastStage) Name() string {
	return constant.StageForecast
}

func (s *ForecastStage) Run(ctx context.Context, state *State) error {
	req := state.Request

	medications, err := s.inventory.Medications(ctx, req.StoreIDs, req.Category)
	if err != nil {
		return fmt.Errorf("load medications: %w", err)
	}

	s.logger.Printf("[FORECAST] session=%s medications=%d horizon=%dd", state.SessionID, len(medications), req.ForecastDays)

	projection := make([]ProjectedDemand, 0, len(medications))
	withHistory := 0
	for _, med := range medications {
		daily, err := s.inventory.DailyConsumption(ctx, med.Id, consumptionLookback)
		if err != nil {
			return fmt.Errorf("consumption history for %s: %w", med.Name, err)
		}
		if daily > 0 {
			withHistory++
		}

		projection = append(projection, ProjectedDemand{
			MedicationID:  med.Id,
			Name:          med.Name,
			Category:      med.Category,
			CurrentStock:  med.CurrentStock,
			ReorderPoint:  med.ReorderPoint,
			DailyDemand:   daily,
			ProjectedNeed: daily * float64(req.ForecastDays),
		})
	}

	summary, err := s.summarize(ctx, projection, req.ForecastDays)
	if err != nil {
		return fmt.Errorf("forecast summary: %w", err)
	}

	// Confidence tracks data coverage: projections without any consumption
	// history are guesses.
	confidence := 0.5
	if len(projection) > 0 {
		confidence = 0.5 + 0.5*float64(withHistory)/float64(len(projection))
	}

	decisions := []string{
		fmt.Sprintf("projected %d medications over %d days", len(projection), req.ForecastDays),
		fmt.Sprintf("%d of %d have consumption history in the last 90 days", withHistory, len(projection)),
	}
	if len(req.StoreIDs) > 0 {
		decisions = append(decisions, fmt.Sprintf("restricted to %d store(s)", len(req.StoreIDs)))
	}
	if req.Category != "" {
		decisions = append(decisions, fmt.Sprintf("restricted to category %q", req.Category))
	}

	state.Projection = projection
	state.Artifacts[s.Name()] = store.StageArtifact{
		Confidence:     confidence,
		Summary:        summary,
		DecisionPoints: decisions,
	}
	return nil
}

func (s *ForecastStage) summarize(ctx context.Context, projection []ProjectedDemand, horizonDays int) (string, error) {
	var digest strings.Builder
	fmt.Fprintf(&digest, "Demand forecast over %d days for %d medications:\n", horizonDays, len(projection))
	for i, p := range projection {
		if i >= 20 {
			fmt.Fprintf(&digest, "... and %d more\n", len(projection)-i)
			break
		}
		fmt.Fprintf(&digest, "- %s: stock %d, reorder point %d, projected need %.1f\n",
			p.Name, p.CurrentStock, p.ReorderPoint, p.ProjectedNeed)
	}

	prompt := fmt.Sprintf(`You are a pharmacy demand planner. Summarize the following demand forecast in 2-3 sentences for a warehouse manager. Mention which medications look at risk of stock-out. Respond with plain text only.

%s`, digest.String())

	return s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
}
