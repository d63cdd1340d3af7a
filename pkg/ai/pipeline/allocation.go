package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/store"
)

// AllocationStage selects suppliers, sets line quantities and assembles the
// final Result.
type AllocationStage struct {
	suppliers   SupplierReader
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewAllocationStage(suppliers SupplierReader, llmProvider llm.LLMProvider, logger *log.Logger) *AllocationStage {
	return &AllocationStage{
		suppliers:   suppliers,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (s *AllocationStage) Name() string {
	return constant.StageAllocation
}

func (s *AllocationStage) Run(ctx context.Context, state *State) error {
	needed := make([]ProjectedDemand, 0, len(state.Projection))
	for _, p := range state.Projection {
		qty := orderQuantity(p)
		if qty > 0 {
			needed = append(needed, p)
		}
	}

	var (
		items       []store.RecommendedItem
		unpriced    []string
		chosen      = map[uuid.UUID]*entity.Supplier{}
		total       float64
		supplierSet = map[string]struct{}{}
	)

	if len(needed) > 0 {
		active, err := s.suppliers.ActiveSuppliers(ctx)
		if err != nil {
			return fmt.Errorf("load suppliers: %w", err)
		}
		if len(active) == 0 {
			return fmt.Errorf("no active suppliers available")
		}
		byID := make(map[uuid.UUID]*entity.Supplier, len(active))
		for _, sup := range active {
			byID[sup.Id] = sup
		}

		for _, p := range needed {
			prices, err := s.suppliers.PricesFor(ctx, p.MedicationID)
			if err != nil {
				return fmt.Errorf("prices for %s: %w", p.Name, err)
			}

			best, price := pickSupplier(prices, byID)
			if best == nil {
				unpriced = append(unpriced, p.Name)
				continue
			}

			qty := orderQuantity(p)
			items = append(items, store.RecommendedItem{
				MedicationID: p.MedicationID.String(),
				Name:         p.Name,
				Quantity:     qty,
				Reason:       reasonFor(p),
				Priority:     priorityFor(p),
				SupplierName: best.Name,
				UnitPrice:    price,
			})
			total += price * float64(qty)
			chosen[best.Id] = best
			supplierSet[best.Name] = struct{}{}
		}
	}

	sortItems(items)

	suggested := ""
	switch len(supplierSet) {
	case 0:
	case 1:
		for name := range supplierSet {
			suggested = name
		}
	default:
		suggested = constant.SupplierMixed
	}

	avgLead := 0.0
	if len(chosen) > 0 {
		for _, sup := range chosen {
			avgLead += float64(sup.LeadTimeDays)
		}
		avgLead /= float64(len(chosen))
	}

	s.logger.Printf("[ALLOCATION] session=%s items=%d total=%.2f suppliers=%d", state.SessionID, len(items), total, len(chosen))

	summary, err := s.summarize(ctx, items, total, suggested)
	if err != nil {
		return fmt.Errorf("allocation summary: %w", err)
	}

	confidence := 0.9
	if len(unpriced) > 0 {
		confidence = 0.6
	}

	decisions := []string{
		fmt.Sprintf("recommended %d line item(s) across %d supplier(s)", len(items), len(chosen)),
		"picked the cheapest active supplier per medication, ties broken by lead time",
	}
	if len(unpriced) > 0 {
		decisions = append(decisions, fmt.Sprintf("skipped %d medication(s) with no supplier price: %s", len(unpriced), strings.Join(unpriced, ", ")))
	}
	if len(items) == 0 {
		decisions = append(decisions, "stock levels cover the forecast horizon, nothing to order")
	}

	state.Artifacts[s.Name()] = store.StageArtifact{
		Confidence:     confidence,
		Summary:        summary,
		DecisionPoints: decisions,
	}

	reasoning := make(map[string]store.StageArtifact, len(state.Artifacts))
	for name, artifact := range state.Artifacts {
		reasoning[name] = artifact
	}

	state.Result = &store.Result{
		Items:             items,
		EstimatedTotal:    math.Round(total*100) / 100,
		SuggestedSupplier: suggested,
		Reasoning:         reasoning,
		TotalItems:        len(items),
		AvgLeadTimeDays:   avgLead,
	}
	return nil
}

// orderQuantity is the shortfall between projected need and what is on the
// shelf, floored at zero.
func orderQuantity(p ProjectedDemand) int {
	qty := int(math.Ceil(p.ProjectedNeed)) - p.CurrentStock
	if qty < 0 {
		return 0
	}
	return qty
}

func priorityFor(p ProjectedDemand) string {
	if p.Urgent {
		return constant.PriorityHigh
	}
	if p.CurrentStock < p.ReorderPoint {
		return constant.PriorityMedium
	}
	return constant.PriorityLow
}

func reasonFor(p ProjectedDemand) string {
	if p.Urgent {
		return fmt.Sprintf("stock %d is critically below reorder point %d", p.CurrentStock, p.ReorderPoint)
	}
	if p.CurrentStock < p.ReorderPoint {
		return fmt.Sprintf("stock %d fell under reorder point %d", p.CurrentStock, p.ReorderPoint)
	}
	return fmt.Sprintf("projected demand %.0f exceeds current stock %d", p.ProjectedNeed, p.CurrentStock)
}

// pickSupplier returns the cheapest active supplier, breaking price ties by
// shorter lead time.
func pickSupplier(prices []*entity.SupplierPrice, active map[uuid.UUID]*entity.Supplier) (*entity.Supplier, float64) {
	var (
		best      *entity.Supplier
		bestPrice float64
	)
	for _, price := range prices {
		sup, ok := active[price.SupplierId]
		if !ok {
			continue
		}
		if best == nil ||
			price.UnitPrice < bestPrice ||
			(price.UnitPrice == bestPrice && sup.LeadTimeDays < best.LeadTimeDays) {
			best = sup
			bestPrice = price.UnitPrice
		}
	}
	return best, bestPrice
}

var priorityRank = map[string]int{
	constant.PriorityHigh:   0,
	constant.PriorityMedium: 1,
	constant.PriorityLow:    2,
}

func sortItems(items []store.RecommendedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if priorityRank[items[i].Priority] != priorityRank[items[j].Priority] {
			return priorityRank[items[i].Priority] < priorityRank[items[j].Priority]
		}
		return items[i].Quantity > items[j].Quantity
	})
}

func (s *AllocationStage) summarize(ctx context.Context, items []store.RecommendedItem, total float64, suggested string) (string, error) {
	var digest strings.Builder
	fmt.Fprintf(&digest, "Purchase order draft: %d line(s), estimated total %.2f, supplier: %s\n", len(items), total, suggested)
	for i, item := range items {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&digest, "- %s x%d from %s at %.2f (%s)\n", item.Name, item.Quantity, item.SupplierName, item.UnitPrice, item.Priority)
	}

	prompt := fmt.Sprintf(`You are a pharmacy procurement assistant. In 2-3 sentences, explain this purchase order recommendation to a warehouse manager. Respond with plain text only.

%s`, digest.String())

	return s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
}
