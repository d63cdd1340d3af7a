package contract

import (
	"context"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/repository/specification"
)

type ConsumptionRecordRepository interface {
	Create(ctx context.Context, record *entity.ConsumptionRecord) error
	CreateBulk(ctx context.Context, records []*entity.ConsumptionRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsumptionRecord, error)
	// SumQuantity totals consumed units across the matching records.
	SumQuantity(ctx context.Context, specs ...specification.Specification) (int64, error)
}
