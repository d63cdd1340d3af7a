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

type PurchaseOrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PurchaseOrderMapper
}

func NewPurchaseOrderRepository(db *gorm.DB) contract.PurchaseOrderRepository {
	return &PurchaseOrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewPurchaseOrderMapper(),
	}
}

func (r *PurchaseOrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PurchaseOrderRepositoryImpl) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *PurchaseOrderRepositoryImpl) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Omit("Lines").Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *PurchaseOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PurchaseOrder, error) {
	var m model.PurchaseOrder
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Lines"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PurchaseOrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PurchaseOrder, error) {
	var models []model.PurchaseOrder
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Lines"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.PurchaseOrder, 0, len(models))
	for i := range models {
		result = append(result, r.mapper.ToEntity(&models[i]))
	}
	return result, nil
}

func (r *PurchaseOrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PurchaseOrder{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
