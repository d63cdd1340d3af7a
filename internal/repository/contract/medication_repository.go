package contract

import (
	"context"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/repository/specification"
)

type MedicationRepository interface {
	Create(ctx context.Context, medication *entity.Medication) error
	Update(ctx context.Context, medication *entity.Medication) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Medication, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Medication, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
