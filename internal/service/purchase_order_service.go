package service

import (
	"context"
	"fmt"
	"time"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/entity"
	"pharma-warehouse-be/internal/pkg/apperror"
	"pharma-warehouse-be/internal/pkg/logger"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/internal/repository/specification"
	"pharma-warehouse-be/internal/repository/unitofwork"
	"pharma-warehouse-be/pkg/events"
	pktNats "pharma-warehouse-be/pkg/nats"
	"pharma-warehouse-be/pkg/store"

	"github.com/google/uuid"
)

type IPurchaseOrderService interface {
	CreateFromGeneration(ctx context.Context, sessionId string) (*dto.PurchaseOrderResponse, error)
	GetAll(ctx context.Context) ([]*dto.PurchaseOrderResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePurchaseOrderStatusRequest) (*dto.PurchaseOrderResponse, error)
}

// statusTransitions holds the allowed next statuses for each order status.
// Received and cancelled orders are final.
var statusTransitions = map[string][]string{
	constant.PurchaseOrderStatusDraft:     {constant.PurchaseOrderStatusSubmitted, constant.PurchaseOrderStatusCancelled},
	constant.PurchaseOrderStatusSubmitted: {constant.PurchaseOrderStatusReceived, constant.PurchaseOrderStatusCancelled},
}

type purchaseOrderService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.GenerationSessionRepository
	natsPub    *pktNats.Publisher
	logger     logger.ILogger
}

func NewPurchaseOrderService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.GenerationSessionRepository,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IPurchaseOrderService {
	return &purchaseOrderService{
		uowFactory: uowFactory,
		sessions:   sessions,
		natsPub:    natsPub,
		logger:     log,
	}
}

// CreateFromGeneration materializes a draft purchase order from a completed
// generation session. Calling it twice for the same session returns the
// existing draft instead of creating a duplicate.
func (c *purchaseOrderService) CreateFromGeneration(ctx context.Context, sessionId string) (*dto.PurchaseOrderResponse, error) {
	session, found, err := c.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.UnknownSession(sessionId)
	}
	if session.Status != store.StatusCompleted || session.Result == nil {
		return nil, apperror.NotReady()
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.PurchaseOrderRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return c.toResponse(existing), nil
	}

	order, err := buildOrderFromResult(sessionId, session.Result)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PurchaseOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.logger.Info("PurchaseOrder", "Draft created from generation", map[string]interface{}{
		"order_id":   order.Id,
		"session_id": sessionId,
		"lines":      len(order.Lines),
	})

	if c.natsPub != nil {
		evt := events.BaseEvent{
			Type: "PURCHASE_ORDER_DRAFTED",
			Data: map[string]interface{}{
				"order_id":   order.Id,
				"session_id": sessionId,
				"total_cost": order.TotalCost,
			},
			OccurredAt: time.Now(),
		}
		if err := c.natsPub.Publish(ctx, evt); err != nil {
			c.logger.Warn("PurchaseOrder", "Failed to publish drafted event", map[string]interface{}{
				"order_id": order.Id,
				"error":    err.Error(),
			})
		}
	}

	return c.toResponse(order), nil
}

func buildOrderFromResult(sessionId string, result *store.Result) (*entity.PurchaseOrder, error) {
	orderId := uuid.New()
	lines := make([]*entity.PurchaseOrderLine, 0, len(result.Items))
	for _, item := range result.Items {
		medicationId, err := uuid.Parse(item.MedicationID)
		if err != nil {
			return nil, fmt.Errorf("recommendation carries invalid medication id %q: %w", item.MedicationID, err)
		}
		lines = append(lines, &entity.PurchaseOrderLine{
			Id:              uuid.New(),
			PurchaseOrderId: orderId,
			MedicationId:    medicationId,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Priority:        item.Priority,
			Reason:          item.Reason,
		})
	}

	return &entity.PurchaseOrder{
		Id:           orderId,
		SessionId:    sessionId,
		SupplierName: result.SuggestedSupplier,
		Status:       constant.PurchaseOrderStatusDraft,
		TotalCost:    result.EstimatedTotal,
		CreatedAt:    time.Now(),
		Lines:        lines,
	}, nil
}

func (c *purchaseOrderService) GetAll(ctx context.Context) ([]*dto.PurchaseOrderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	orders, err := uow.PurchaseOrderRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, c.toResponse(order))
	}
	return result, nil
}

func (c *purchaseOrderService) Show(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.PurchaseOrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return c.toResponse(order), nil
}

func (c *purchaseOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePurchaseOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.PurchaseOrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if !transitionAllowed(order.Status, req.Status) {
		return nil, apperror.InvalidRequest(
			fmt.Sprintf("cannot change order status from %s to %s", order.Status, req.Status),
		)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order.Status = req.Status
	now := time.Now()
	order.UpdatedAt = &now
	if err := uow.PurchaseOrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return c.toResponse(order), nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (c *purchaseOrderService) toResponse(order *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.PurchaseOrderLineResponse{
			Id:           line.Id,
			MedicationId: line.MedicationId,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Priority:     line.Priority,
			Reason:       line.Reason,
		})
	}
	return &dto.PurchaseOrderResponse{
		Id:           order.Id,
		SessionId:    order.SessionId,
		SupplierName: order.SupplierName,
		Status:       order.Status,
		TotalCost:    order.TotalCost,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Lines:        lines,
	}
}
