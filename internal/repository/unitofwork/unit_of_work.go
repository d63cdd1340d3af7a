package unitofwork

import (
	"context"

	"pharma-warehouse-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MedicationRepository() contract.MedicationRepository
	ConsumptionRecordRepository() contract.ConsumptionRecordRepository
	SupplierRepository() contract.SupplierRepository
	PurchaseOrderRepository() contract.PurchaseOrderRepository
}
