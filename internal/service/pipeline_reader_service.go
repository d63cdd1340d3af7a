package service

import (
	"context"
	"time"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/repository/specification"
	"pharma-warehouse-be/internal/repository/unitofwork"
	"pharma-warehouse-be/pkg/ai/pipeline"

	"github.com/google/uuid"
)

// PipelineReaders adapts the repository layer to the read-only query
// interfaces the pipeline stages consume.
type PipelineReaders struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPipelineReaders(uowFactory unitofwork.RepositoryFactory) *PipelineReaders {
	return &PipelineReaders{uowFactory: uowFactory}
}

var (
	_ pipeline.InventoryReader = (*PipelineReaders)(nil)
	_ pipeline.SupplierReader  = (*PipelineReaders)(nil)
)

func (r *PipelineReaders) Medications(ctx context.Context, storeIDs []int, category string) ([]*entity.Medication, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if len(storeIDs) > 0 {
		specs = append(specs, specification.ByStoreIDs{StoreIDs: storeIDs})
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}
	return uow.MedicationRepository().FindAll(ctx, specs...)
}

func (r *PipelineReaders) DailyConsumption(ctx context.Context, medicationID uuid.UUID, lookback time.Duration) (float64, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	since := time.Now().Add(-lookback)
	total, err := uow.ConsumptionRecordRepository().SumQuantity(ctx,
		specification.ByMedicationID{MedicationID: medicationID},
		specification.ConsumedSince{Since: since},
	)
	if err != nil {
		return 0, err
	}

	days := lookback.Hours() / 24
	if days <= 0 {
		return 0, nil
	}
	return float64(total) / days, nil
}

func (r *PipelineReaders) ActiveSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return uow.SupplierRepository().FindAll(ctx, specification.ActiveOnly{})
}

func (r *PipelineReaders) PricesFor(ctx context.Context, medicationID uuid.UUID) ([]*entity.SupplierPrice, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return uow.SupplierRepository().FindPrices(ctx, specification.ByMedicationID{MedicationID: medicationID})
}
