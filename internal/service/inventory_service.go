package service

import (
	"context"

	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/repository/specification"
	"pharma-warehouse-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IInventoryService interface {
	GetAll(ctx context.Context, req *dto.GetAllMedicationsRequest) ([]*dto.MedicationResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error)
}

type inventoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewInventoryService(uowFactory unitofwork.RepositoryFactory) IInventoryService {
	return &inventoryService{uowFactory: uowFactory}
}

// medicationSpecs translates the list filters into repository
// specifications, always ordered by name.
func medicationSpecs(req *dto.GetAllMedicationsRequest) []specification.Specification {
	specs := make([]specification.Specification, 0)
	if len(req.StoreIds) > 0 {
		specs = append(specs, specification.ByStoreIDs{StoreIDs: req.StoreIds})
	}
	if req.Category != "" {
		specs = append(specs, specification.ByCategory{Category: req.Category})
	}
	if req.LowStock {
		specs = append(specs, specification.BelowReorderPoint{})
	}
	return append(specs, specification.OrderBy{Field: "name"})
}

func (c *inventoryService) GetAll(ctx context.Context, req *dto.GetAllMedicationsRequest) ([]*dto.MedicationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	medications, err := uow.MedicationRepository().FindAll(ctx, medicationSpecs(req)...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MedicationResponse, 0, len(medications))
	for _, medication := range medications {
		result = append(result, &dto.MedicationResponse{
			Id:           medication.Id,
			Name:         medication.Name,
			Category:     medication.Category,
			StoreId:      medication.StoreId,
			CurrentStock: medication.CurrentStock,
			ReorderPoint: medication.ReorderPoint,
			Unit:         medication.Unit,
			CreatedAt:    medication.CreatedAt,
			UpdatedAt:    medication.UpdatedAt,
		})
	}
	return result, nil
}

func (c *inventoryService) Show(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	medication, err := uow.MedicationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, nil
	}

	return &dto.MedicationResponse{
		Id:           medication.Id,
		Name:         medication.Name,
		Category:     medication.Category,
		StoreId:      medication.StoreId,
		CurrentStock: medication.CurrentStock,
		ReorderPoint: medication.ReorderPoint,
		Unit:         medication.Unit,
		CreatedAt:    medication.CreatedAt,
		UpdatedAt:    medication.UpdatedAt,
	}, nil
}
