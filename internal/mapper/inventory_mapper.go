package mapper

import (
	"time"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/model"
)

type InventoryMapper struct{}

func NewInventoryMapper() *InventoryMapper {
	return &InventoryMapper{}
}

// Medication Mappers

func (m *InventoryMapper) MedicationToEntity(med *model.Medication) *entity.Medication {
	if med == nil {
		return nil
	}

	var updatedAt *time.Time
	if !med.UpdatedAt.IsZero() {
		t := med.UpdatedAt
		updatedAt = &t
	}

	return &entity.Medication{
		Id:           med.Id,
		Name:         med.Name,
		Category:     med.Category,
		StoreId:      med.StoreId,
		CurrentStock: med.CurrentStock,
		ReorderPoint: med.ReorderPoint,
		Unit:         med.Unit,
		CreatedAt:    med.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *InventoryMapper) MedicationToModel(med *entity.Medication) *model.Medication {
	if med == nil {
		return nil
	}

	out := &model.Medication{
		Id:           med.Id,
		Name:         med.Name,
		Category:     med.Category,
		StoreId:      med.StoreId,
		CurrentStock: med.CurrentStock,
		ReorderPoint: med.ReorderPoint,
		Unit:         med.Unit,
		CreatedAt:    med.CreatedAt,
	}
	if med.UpdatedAt != nil {
		out.UpdatedAt = *med.UpdatedAt
	}
	return out
}

// Consumption Mappers

func (m *InventoryMapper) ConsumptionToEntity(c *model.ConsumptionRecord) *entity.ConsumptionRecord {
	if c == nil {
		return nil
	}
	return &entity.ConsumptionRecord{
		Id:           c.Id,
		MedicationId: c.MedicationId,
		StoreId:      c.StoreId,
		Quantity:     c.Quantity,
		ConsumedAt:   c.ConsumedAt,
	}
}

func (m *InventoryMapper) ConsumptionToModel(c *entity.ConsumptionRecord) *model.ConsumptionRecord {
	if c == nil {
		return nil
	}
	return &model.ConsumptionRecord{
		Id:           c.Id,
		MedicationId: c.MedicationId,
		StoreId:      c.StoreId,
		Quantity:     c.Quantity,
		ConsumedAt:   c.ConsumedAt,
	}
}

// Supplier Mappers

func (m *InventoryMapper) SupplierToEntity(s *model.Supplier) *entity.Supplier {
	if s == nil {
		return nil
	}
	return &entity.Supplier{
		Id:           s.Id,
		Name:         s.Name,
		Status:       s.Status,
		LeadTimeDays: s.LeadTimeDays,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *InventoryMapper) SupplierToModel(s *entity.Supplier) *model.Supplier {
	if s == nil {
		return nil
	}
	return &model.Supplier{
		Id:           s.Id,
		Name:         s.Name,
		Status:       s.Status,
		LeadTimeDays: s.LeadTimeDays,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *InventoryMapper) SupplierPriceToEntity(p *model.SupplierPrice) *entity.SupplierPrice {
	if p == nil {
		return nil
	}
	return &entity.SupplierPrice{
		Id:           p.Id,
		SupplierId:   p.SupplierId,
		MedicationId: p.MedicationId,
		UnitPrice:    p.UnitPrice,
	}
}

func (m *InventoryMapper) SupplierPriceToModel(p *entity.SupplierPrice) *model.SupplierPrice {
	if p == nil {
		return nil
	}
	return &model.SupplierPrice{
		Id:           p.Id,
		SupplierId:   p.SupplierId,
		MedicationId: p.MedicationId,
		UnitPrice:    p.UnitPrice,
	}
}
