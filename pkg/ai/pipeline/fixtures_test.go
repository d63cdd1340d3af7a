package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/store"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// stubLLM returns a canned reply for every prompt.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

type fakeInventory struct {
	medications []*entity.Medication
	daily       map[uuid.UUID]float64
	medsErr     error
}

func (f *fakeInventory) Medications(ctx context.Context, storeIDs []int, category string) ([]*entity.Medication, error) {
	if f.medsErr != nil {
		return nil, f.medsErr
	}
	out := make([]*entity.Medication, 0, len(f.medications))
	for _, med := range f.medications {
		if category != "" && med.Category != category {
			continue
		}
		if len(storeIDs) > 0 && !containsInt(storeIDs, med.StoreId) {
			continue
		}
		out = append(out, med)
	}
	return out, nil
}

func (f *fakeInventory) DailyConsumption(ctx context.Context, medicationID uuid.UUID, lookback time.Duration) (float64, error) {
	return f.daily[medicationID], nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeSuppliers struct {
	suppliers []*entity.Supplier
	prices    map[uuid.UUID][]*entity.SupplierPrice
}

func (f *fakeSuppliers) ActiveSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(f.suppliers))
	for _, sup := range f.suppliers {
		if sup.Status == entity.SupplierStatusActive {
			out = append(out, sup)
		}
	}
	return out, nil
}

func (f *fakeSuppliers) PricesFor(ctx context.Context, medicationID uuid.UUID) ([]*entity.SupplierPrice, error) {
	return f.prices[medicationID], nil
}

var errStageBoom = errors.New("boom")

func stubArtifact(summary string) store.StageArtifact {
	return store.StageArtifact{Confidence: 0.8, Summary: summary}
}
