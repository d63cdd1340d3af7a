package service

import (
	"context"
	"time"

	"pharma-warehouse-be/internal/constant"
	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/pkg/apperror"
	"pharma-warehouse-be/internal/pkg/logger"
	"pharma-warehouse-be/internal/pkg/serverutils"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/store"

	"github.com/google/uuid"
)

// IGenerationService exposes the purchase-order generation protocol:
// non-blocking creation, idempotent status polls, and result retrieval.
type IGenerationService interface {
	Generate(ctx context.Context, req *dto.GenerateOrderRequest) (*dto.GenerateOrderResponse, error)
	GetStatus(ctx context.Context, sessionId string) (*dto.GenerationStatusResponse, error)
	GetResult(ctx context.Context, sessionId string) (*dto.GenerationResultResponse, error)
}

type generationService struct {
	capability llm.CapabilityChecker
	sessions   contract.GenerationSessionRepository
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewGenerationService(
	capability llm.CapabilityChecker,
	sessions contract.GenerationSessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		capability: capability,
		sessions:   sessions,
		publisher:  publisher,
		logger:     log,
	}
}

// Generate validates the request, creates a pending session and publishes
// the kickoff message. It returns the session id before any stage runs.
func (s *generationService) Generate(ctx context.Context, req *dto.GenerateOrderRequest) (*dto.GenerateOrderResponse, error) {
	if configured, reason := s.capability.Check(); !configured {
		return nil, apperror.NotConfigured(reason)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	forecastDays := req.ForecastDays
	if forecastDays == 0 {
		forecastDays = constant.DefaultForecastDays
	}
	threshold := constant.DefaultUrgencyThreshold
	if req.UrgencyThreshold != nil {
		threshold = *req.UrgencyThreshold
	}

	session := &store.GenerationSession{
		ID:              uuid.NewString(),
		Status:          store.StatusPending,
		StagesCompleted: []string{},
		CreatedAt:       time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	msg := dto.GeneratePurchaseOrderMessage{
		SessionId:        session.ID,
		StoreIds:         req.StoreIds,
		Category:         req.Category,
		ForecastDays:     forecastDays,
		UrgencyThreshold: threshold,
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		// The session exists but will never be claimed. Mark it failed so
		// pollers are not left hanging until expiry.
		s.logger.Error("Generation", "Kickoff publish failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		_ = s.sessions.Fail(ctx, session.ID, &store.GenerationError{
			Message: "failed to start generation pipeline",
		})
		return nil, err
	}

	s.logger.Info("Generation", "Session created", map[string]interface{}{
		"session_id":    session.ID,
		"forecast_days": forecastDays,
	})
	return &dto.GenerateOrderResponse{SessionId: session.ID}, nil
}

func (s *generationService) GetStatus(ctx context.Context, sessionId string) (*dto.GenerationStatusResponse, error) {
	session, found, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.UnknownSession(sessionId)
	}

	res := &dto.GenerationStatusResponse{
		SessionId:       session.ID,
		Status:          session.Status,
		ProgressPercent: session.ProgressPercent,
		CurrentStage:    session.CurrentStage,
		StagesCompleted: session.StagesCompleted,
		CreatedAt:       session.CreatedAt,
		CompletedAt:     session.CompletedAt,
	}
	if res.StagesCompleted == nil {
		res.StagesCompleted = []string{}
	}
	if session.Error != nil {
		res.Error = &dto.GenerationErrorDTO{
			Stage:   session.Error.Stage,
			Message: session.Error.Message,
			Timeout: session.Error.Timeout,
		}
	}
	return res, nil
}

func (s *generationService) GetResult(ctx context.Context, sessionId string) (*dto.GenerationResultResponse, error) {
	session, found, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.UnknownSession(sessionId)
	}

	switch session.Status {
	case store.StatusPending, store.StatusProcessing:
		return nil, apperror.NotReady()
	case store.StatusFailed:
		if session.Error != nil && session.Error.Timeout {
			return nil, apperror.Timeout(session.Error.Stage)
		}
		message := "generation failed"
		stage := ""
		if session.Error != nil {
			message = session.Error.Message
			stage = session.Error.Stage
		}
		return nil, apperror.StageFailure(stage, message)
	}

	result := session.Result
	items := make([]dto.RecommendedItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, dto.RecommendedItemDTO{
			MedicationId: item.MedicationID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Reason:       item.Reason,
			Priority:     item.Priority,
			SupplierName: item.SupplierName,
			UnitPrice:    item.UnitPrice,
		})
	}

	reasoning := make(map[string]dto.StageArtifactDTO, len(result.Reasoning))
	for stage, artifact := range result.Reasoning {
		reasoning[stage] = dto.StageArtifactDTO{
			Confidence:     artifact.Confidence,
			Summary:        artifact.Summary,
			DecisionPoints: artifact.DecisionPoints,
		}
	}

	return &dto.GenerationResultResponse{
		SessionId:         session.ID,
		Items:             items,
		EstimatedTotal:    result.EstimatedTotal,
		SuggestedSupplier: result.SuggestedSupplier,
		Reasoning:         reasoning,
		TotalItems:        result.TotalItems,
		AvgLeadTimeDays:   result.AvgLeadTimeDays,
	}, nil
}
