package contract

import (
	"context"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/repository/specification"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PurchaseOrder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PurchaseOrder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
