package mapper

import (
	"time"

	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/model"
)

type PurchaseOrderMapper struct{}

func NewPurchaseOrderMapper() *PurchaseOrderMapper {
	return &PurchaseOrderMapper{}
}

func (m *PurchaseOrderMapper) ToEntity(po *model.PurchaseOrder) *entity.PurchaseOrder {
	if po == nil {
		return nil
	}

	var updatedAt *time.Time
	if !po.UpdatedAt.IsZero() {
		t := po.UpdatedAt
		updatedAt = &t
	}

	lines := make([]*entity.PurchaseOrderLine, 0, len(po.Lines))
	for i := range po.Lines {
		lines = append(lines, m.LineToEntity(&po.Lines[i]))
	}

	return &entity.PurchaseOrder{
		Id:           po.Id,
		SessionId:    po.SessionId,
		SupplierName: po.SupplierName,
		Status:       po.Status,
		TotalCost:    po.TotalCost,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    updatedAt,
		Lines:        lines,
	}
}

func (m *PurchaseOrderMapper) ToModel(po *entity.PurchaseOrder) *model.PurchaseOrder {
	if po == nil {
		return nil
	}

	lines := make([]model.PurchaseOrderLine, 0, len(po.Lines))
	for _, line := range po.Lines {
		lines = append(lines, *m.LineToModel(line))
	}

	out := &model.PurchaseOrder{
		Id:           po.Id,
		SessionId:    po.SessionId,
		SupplierName: po.SupplierName,
		Status:       po.Status,
		TotalCost:    po.TotalCost,
		CreatedAt:    po.CreatedAt,
		Lines:        lines,
	}
	if po.UpdatedAt != nil {
		out.UpdatedAt = *po.UpdatedAt
	}
	return out
}

func (m *PurchaseOrderMapper) LineToEntity(l *model.PurchaseOrderLine) *entity.PurchaseOrderLine {
	if l == nil {
		return nil
	}
	return &entity.PurchaseOrderLine{
		Id:              l.Id,
		PurchaseOrderId: l.PurchaseOrderId,
		MedicationId:    l.MedicationId,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		Priority:        l.Priority,
		Reason:          l.Reason,
	}
}

func (m *PurchaseOrderMapper) LineToModel(l *entity.PurchaseOrderLine) *model.PurchaseOrderLine {
	if l == nil {
		return nil
	}
	return &model.PurchaseOrderLine{
		Id:              l.Id,
		PurchaseOrderId: l.PurchaseOrderId,
		MedicationId:    l.MedicationId,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		Priority:        l.Priority,
		Reason:          l.Reason,
	}
}
