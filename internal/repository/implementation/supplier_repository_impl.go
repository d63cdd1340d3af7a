package implementation

import (
	"context"
	"errors"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/mapper"
	"pharma-warehouse-be/internal/model"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SupplierRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InventoryMapper
}

func NewSupplierRepository(db *gorm.DB) contract.SupplierRepository {
	return &SupplierRepositoryImpl{
		db:     db,
		mapper: mapper.NewInventoryMapper(),
	}
}

func (r *SupplierRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SupplierRepositoryImpl) Create(ctx context.Context, supplier *entity.Supplier) error {
	m := r.mapper.SupplierToModel(supplier)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*supplier = *r.mapper.SupplierToEntity(m)
	return nil
}

func (r *SupplierRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Supplier, error) {
	var m model.Supplier
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SupplierToEntity(&m), nil
}

func (r *SupplierRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Supplier, error) {
	var models []model.Supplier
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.Supplier, 0, len(models))
	for i := range models {
		result = append(result, r.mapper.SupplierToEntity(&models[i]))
	}
	return result, nil
}

func (r *SupplierRepositoryImpl) FindPrices(ctx context.Context, specs ...specification.Specification) ([]*entity.SupplierPrice, error) {
	var models []model.SupplierPrice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.SupplierPrice, 0, len(models))
	for i := range models {
		result = append(result, r.mapper.SupplierPriceToEntity(&models[i]))
	}
	return result, nil
}

func (r *SupplierRepositoryImpl) CreatePrice(ctx context.Context, price *entity.SupplierPrice) error {
	m := r.mapper.SupplierPriceToModel(price)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*price = *r.mapper.SupplierPriceToEntity(m)
	return nil
}
