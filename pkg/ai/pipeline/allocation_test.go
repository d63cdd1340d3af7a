package pipeline

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/internal/entity"
)

func TestAllocationStagePicksCheapestSupplier(t *testing.T) {
	cheap := &entity.Supplier{Id: uuid.New(), Name: "MediSupply", Status: entity.SupplierStatusActive, LeadTimeDays: 5}
	pricey := &entity.Supplier{Id: uuid.New(), Name: "PharmaDirect", Status: entity.SupplierStatusActive, LeadTimeDays: 2}
	suspended := &entity.Supplier{Id: uuid.New(), Name: "HealthSource", Status: entity.SupplierStatusSuspended, LeadTimeDays: 1}

	medID := uuid.New()
	suppliers := &fakeSuppliers{
		suppliers: []*entity.Supplier{cheap, pricey, suspended},
		prices: map[uuid.UUID][]*entity.SupplierPrice{
			medID: {
				{SupplierId: cheap.Id, MedicationId: medID, UnitPrice: 1.00},
				{SupplierId: pricey.Id, MedicationId: medID, UnitPrice: 1.50},
				{SupplierId: suspended.Id, MedicationId: medID, UnitPrice: 0.10},
			},
		},
	}

	stage := NewAllocationStage(suppliers, &stubLLM{reply: "order it"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: medID, Name: "Amoxicillin", CurrentStock: 50, ReorderPoint: 100, ProjectedNeed: 120.4},
	}
	state.Artifacts[constant.StageForecast] = stubArtifact("f")
	state.Artifacts[constant.StageAdjustment] = stubArtifact("a")

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state.Result == nil {
		t.Fatal("Result is nil")
	}

	if len(state.Result.Items) != 1 {
		t.Fatalf("Items = %d, want 1", len(state.Result.Items))
	}
	item := state.Result.Items[0]

	// Suspended supplier is ignored even though it is cheapest on paper.
	if item.SupplierName != "MediSupply" {
		t.Errorf("SupplierName = %q, want MediSupply", item.SupplierName)
	}
	// ceil(120.4) - 50
	if item.Quantity != 71 {
		t.Errorf("Quantity = %d, want 71", item.Quantity)
	}
	if item.Priority != constant.PriorityMedium {
		t.Errorf("Priority = %q, want medium", item.Priority)
	}
	if math.Abs(state.Result.EstimatedTotal-71.0) > 1e-9 {
		t.Errorf("EstimatedTotal = %v, want 71.0", state.Result.EstimatedTotal)
	}
	if state.Result.SuggestedSupplier != "MediSupply" {
		t.Errorf("SuggestedSupplier = %q, want MediSupply", state.Result.SuggestedSupplier)
	}
	if state.Result.AvgLeadTimeDays != 5 {
		t.Errorf("AvgLeadTimeDays = %v, want 5", state.Result.AvgLeadTimeDays)
	}

	// All three stage artifacts land in the reasoning map.
	if len(state.Result.Reasoning) != 3 {
		t.Errorf("Reasoning entries = %d, want 3", len(state.Result.Reasoning))
	}
}

func TestAllocationStagePriceTieBrokenByLeadTime(t *testing.T) {
	slow := &entity.Supplier{Id: uuid.New(), Name: "SlowCo", Status: entity.SupplierStatusActive, LeadTimeDays: 7}
	fast := &entity.Supplier{Id: uuid.New(), Name: "FastCo", Status: entity.SupplierStatusActive, LeadTimeDays: 2}

	medID := uuid.New()
	suppliers := &fakeSuppliers{
		suppliers: []*entity.Supplier{slow, fast},
		prices: map[uuid.UUID][]*entity.SupplierPrice{
			medID: {
				{SupplierId: slow.Id, MedicationId: medID, UnitPrice: 2.00},
				{SupplierId: fast.Id, MedicationId: medID, UnitPrice: 2.00},
			},
		},
	}

	stage := NewAllocationStage(suppliers, &stubLLM{reply: "order it"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: medID, Name: "Ibuprofen", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 30, Urgent: true},
	}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := state.Result.Items[0].SupplierName; got != "FastCo" {
		t.Errorf("SupplierName = %q, want FastCo", got)
	}
}

func TestAllocationStageSortsByPriorityThenQuantity(t *testing.T) {
	sup := &entity.Supplier{Id: uuid.New(), Name: "MediSupply", Status: entity.SupplierStatusActive, LeadTimeDays: 3}

	low := ProjectedDemand{MedicationID: uuid.New(), Name: "LowMed", CurrentStock: 200, ReorderPoint: 100, ProjectedNeed: 250}
	medium := ProjectedDemand{MedicationID: uuid.New(), Name: "MediumMed", CurrentStock: 50, ReorderPoint: 100, ProjectedNeed: 80}
	urgentSmall := ProjectedDemand{MedicationID: uuid.New(), Name: "UrgentSmall", CurrentStock: 5, ReorderPoint: 100, ProjectedNeed: 20, Urgent: true}
	urgentBig := ProjectedDemand{MedicationID: uuid.New(), Name: "UrgentBig", CurrentStock: 5, ReorderPoint: 100, ProjectedNeed: 300, Urgent: true}

	prices := map[uuid.UUID][]*entity.SupplierPrice{}
	for _, p := range []ProjectedDemand{low, medium, urgentSmall, urgentBig} {
		prices[p.MedicationID] = []*entity.SupplierPrice{
			{SupplierId: sup.Id, MedicationId: p.MedicationID, UnitPrice: 1.0},
		}
	}

	stage := NewAllocationStage(&fakeSuppliers{suppliers: []*entity.Supplier{sup}, prices: prices}, &stubLLM{reply: "order it"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{low, medium, urgentSmall, urgentBig}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	gotOrder := make([]string, 0, len(state.Result.Items))
	for _, item := range state.Result.Items {
		gotOrder = append(gotOrder, item.Name)
	}
	wantOrder := []string{"UrgentBig", "UrgentSmall", "MediumMed", "LowMed"}
	if strings.Join(gotOrder, ",") != strings.Join(wantOrder, ",") {
		t.Errorf("item order = %v, want %v", gotOrder, wantOrder)
	}

	if state.Result.SuggestedSupplier != "MediSupply" {
		t.Errorf("SuggestedSupplier = %q, want MediSupply", state.Result.SuggestedSupplier)
	}
}

func TestAllocationStageMixedSuppliers(t *testing.T) {
	supA := &entity.Supplier{Id: uuid.New(), Name: "SupA", Status: entity.SupplierStatusActive, LeadTimeDays: 2}
	supB := &entity.Supplier{Id: uuid.New(), Name: "SupB", Status: entity.SupplierStatusActive, LeadTimeDays: 6}

	medA, medB := uuid.New(), uuid.New()
	suppliers := &fakeSuppliers{
		suppliers: []*entity.Supplier{supA, supB},
		prices: map[uuid.UUID][]*entity.SupplierPrice{
			medA: {{SupplierId: supA.Id, MedicationId: medA, UnitPrice: 1.0}},
			medB: {{SupplierId: supB.Id, MedicationId: medB, UnitPrice: 2.0}},
		},
	}

	stage := NewAllocationStage(suppliers, &stubLLM{reply: "order it"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: medA, Name: "MedA", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 30},
		{MedicationID: medB, Name: "MedB", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 40},
	}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.Result.SuggestedSupplier != constant.SupplierMixed {
		t.Errorf("SuggestedSupplier = %q, want %q", state.Result.SuggestedSupplier, constant.SupplierMixed)
	}
	// (2 + 6) / 2
	if state.Result.AvgLeadTimeDays != 4 {
		t.Errorf("AvgLeadTimeDays = %v, want 4", state.Result.AvgLeadTimeDays)
	}
}

func TestAllocationStageWellStockedProducesEmptyOrder(t *testing.T) {
	stage := NewAllocationStage(&fakeSuppliers{}, &stubLLM{reply: "nothing to do"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: uuid.New(), Name: "Paracetamol", CurrentStock: 800, ReorderPoint: 300, ProjectedNeed: 100},
	}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(state.Result.Items) != 0 {
		t.Errorf("Items = %d, want 0", len(state.Result.Items))
	}
	if state.Result.EstimatedTotal != 0 {
		t.Errorf("EstimatedTotal = %v, want 0", state.Result.EstimatedTotal)
	}
	if state.Result.SuggestedSupplier != "" {
		t.Errorf("SuggestedSupplier = %q, want empty", state.Result.SuggestedSupplier)
	}
	if state.Result.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", state.Result.TotalItems)
	}
}

func TestAllocationStageNoActiveSuppliers(t *testing.T) {
	suspended := &entity.Supplier{Id: uuid.New(), Name: "HealthSource", Status: entity.SupplierStatusSuspended, LeadTimeDays: 1}
	stage := NewAllocationStage(&fakeSuppliers{suppliers: []*entity.Supplier{suspended}}, &stubLLM{reply: "x"}, testLogger())

	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: uuid.New(), Name: "MedA", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 30},
	}

	err := stage.Run(context.Background(), state)
	if err == nil {
		t.Fatal("Run() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no active suppliers") {
		t.Errorf("error = %v, want no active suppliers", err)
	}
}

func TestAllocationStageSkipsUnpricedMedications(t *testing.T) {
	sup := &entity.Supplier{Id: uuid.New(), Name: "MediSupply", Status: entity.SupplierStatusActive, LeadTimeDays: 3}
	priced, unpriced := uuid.New(), uuid.New()

	suppliers := &fakeSuppliers{
		suppliers: []*entity.Supplier{sup},
		prices: map[uuid.UUID][]*entity.SupplierPrice{
			priced: {{SupplierId: sup.Id, MedicationId: priced, UnitPrice: 1.0}},
		},
	}

	stage := NewAllocationStage(suppliers, &stubLLM{reply: "order it"}, testLogger())
	state := NewState("session-1", Request{ForecastDays: 30, UrgencyThreshold: 0.5})
	state.Projection = []ProjectedDemand{
		{MedicationID: priced, Name: "Priced", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 30},
		{MedicationID: unpriced, Name: "Unpriced", CurrentStock: 0, ReorderPoint: 10, ProjectedNeed: 30},
	}

	if err := stage.Run(context.Background(), state); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(state.Result.Items) != 1 {
		t.Fatalf("Items = %d, want 1", len(state.Result.Items))
	}

	artifact := state.Artifacts[constant.StageAllocation]
	if artifact.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want 0.6", artifact.Confidence)
	}
}
