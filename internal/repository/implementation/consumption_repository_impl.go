package implementation

import (
	"context"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/mapper"
	"pharma-warehouse-be/internal/model"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConsumptionRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InventoryMapper
}

func NewConsumptionRecordRepository(db *gorm.DB) contract.ConsumptionRecordRepository {
	return &ConsumptionRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewInventoryMapper(),
	}
}

func (r *ConsumptionRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConsumptionRecordRepositoryImpl) Create(ctx context.Context, record *entity.ConsumptionRecord) error {
	m := r.mapper.ConsumptionToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ConsumptionToEntity(m)
	return nil
}

func (r *ConsumptionRecordRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.ConsumptionRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.ConsumptionRecord, 0, len(records))
	for _, record := range records {
		models = append(models, r.mapper.ConsumptionToModel(record))
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ConsumptionRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsumptionRecord, error) {
	var models []model.ConsumptionRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.ConsumptionRecord, 0, len(models))
	for i := range models {
		result = append(result, r.mapper.ConsumptionToEntity(&models[i]))
	}
	return result, nil
}

func (r *ConsumptionRecordRepositoryImpl) SumQuantity(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var total *int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConsumptionRecord{}), specs...)
	if err := query.Select("SUM(quantity)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
