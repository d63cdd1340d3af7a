package contract

import (
	"context"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/repository/specification"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Supplier, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Supplier, error)
	FindPrices(ctx context.Context, specs ...specification.Specification) ([]*entity.SupplierPrice, error)
	CreatePrice(ctx context.Context, price *entity.SupplierPrice) error
}
