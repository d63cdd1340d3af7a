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

type MedicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InventoryMapper
}

func NewMedicationRepository(db *gorm.DB) contract.MedicationRepository {
	return &MedicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewInventoryMapper(),
	}
}

func (r *MedicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MedicationRepositoryImpl) Create(ctx context.Context, medication *entity.Medication) error {
	m := r.mapper.MedicationToModel(medication)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*medication = *r.mapper.MedicationToEntity(m)
	return nil
}

func (r *MedicationRepositoryImpl) Update(ctx context.Context, medication *entity.Medication) error {
	m := r.mapper.MedicationToModel(medication)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*medication = *r.mapper.MedicationToEntity(m)
	return nil
}

func (r *MedicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Medication, error) {
	var m model.Medication
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MedicationToEntity(&m), nil
}

func (r *MedicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Medication, error) {
	var models []model.Medication
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.Medication, 0, len(models))
	for i := range models {
		result = append(result, r.mapper.MedicationToEntity(&models[i]))
	}
	return result, nil
}

func (r *MedicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Medication{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
