package service

import (
	"testing"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{constant.PurchaseOrderStatusDraft, constant.PurchaseOrderStatusSubmitted, true},
		{constant.PurchaseOrderStatusDraft, constant.PurchaseOrderStatusCancelled, true},
		{constant.PurchaseOrderStatusDraft, constant.PurchaseOrderStatusReceived, false},
		{constant.PurchaseOrderStatusDraft, constant.PurchaseOrderStatusDraft, false},
		{constant.PurchaseOrderStatusSubmitted, constant.PurchaseOrderStatusReceived, true},
		{constant.PurchaseOrderStatusSubmitted, constant.PurchaseOrderStatusCancelled, true},
		{constant.PurchaseOrderStatusSubmitted, constant.PurchaseOrderStatusDraft, false},
		{constant.PurchaseOrderStatusReceived, constant.PurchaseOrderStatusCancelled, false},
		{constant.PurchaseOrderStatusCancelled, constant.PurchaseOrderStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, transitionAllowed(tt.from, tt.to))
		})
	}
}

func TestBuildOrderFromResult(t *testing.T) {
	medID := uuid.New()
	result := &store.Result{
		Items: []store.RecommendedItem{
			{
				MedicationID: medID.String(),
				Name:         "Amoxicillin",
				Quantity:     40,
				Reason:       "below reorder point",
				Priority:     constant.PriorityMedium,
				SupplierName: "MediSupply",
				UnitPrice:    1.5,
			},
		},
		EstimatedTotal:    60,
		SuggestedSupplier: "MediSupply",
		TotalItems:        1,
	}

	order, err := buildOrderFromResult("s1", result)
	require.NoError(t, err)

	assert.Equal(t, "s1", order.SessionId)
	assert.Equal(t, constant.PurchaseOrderStatusDraft, order.Status)
	assert.Equal(t, "MediSupply", order.SupplierName)
	assert.Equal(t, 60.0, order.TotalCost)
	require.Len(t, order.Lines, 1)

	line := order.Lines[0]
	assert.Equal(t, order.Id, line.PurchaseOrderId)
	assert.Equal(t, medID, line.MedicationId)
	assert.Equal(t, 40, line.Quantity)
	assert.Equal(t, constant.PriorityMedium, line.Priority)
}

func TestBuildOrderFromResultRejectsBadMedicationId(t *testing.T) {
	result := &store.Result{
		Items: []store.RecommendedItem{
			{MedicationID: "not-a-uuid", Name: "Broken", Quantity: 1},
		},
	}

	_, err := buildOrderFromResult("s1", result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid medication id")
}
