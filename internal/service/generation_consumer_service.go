package service

import (
	"context"
	"encoding/json"
	"log"

	"time"

	"pharma-warehouse-be/internal/dto"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/pkg/ai/pipeline"
	"pharma-warehouse-be/pkg/events"
	pktNats "pharma-warehouse-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IGenerationConsumerService interface {
	Consume(ctx context.Context) error
}

// generationConsumerService runs generation jobs off the in-process topic,
// decoupled from the HTTP request that created the session.
type generationConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	orchestrator *pipeline.Orchestrator
	sessions     contract.GenerationSessionRepository
	natsPub      *pktNats.Publisher
}

func NewGenerationConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	orchestrator *pipeline.Orchestrator,
	sessions contract.GenerationSessionRepository,
	natsPub *pktNats.Publisher,
) IGenerationConsumerService {
	return &generationConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		orchestrator: orchestrator,
		sessions:     sessions,
		natsPub:      natsPub,
	}
}

func (cs *generationConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *generationConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Failed runs are terminal and never retried; the message is always
	// acked. A redelivery would lose the session claim anyway.
	defer msg.Ack()

	var payload dto.GeneratePurchaseOrderMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal generation message: %v", err)
		return
	}

	log.Printf("[INFO] Running generation pipeline for session %s", payload.SessionId)

	req := pipeline.Request{
		StoreIDs:         payload.StoreIds,
		Category:         payload.Category,
		ForecastDays:     payload.ForecastDays,
		UrgencyThreshold: payload.UrgencyThreshold,
	}

	runErr := cs.orchestrator.Run(ctx, payload.SessionId, req)
	if runErr != nil {
		log.Printf("[ERROR] Generation pipeline failed for session %s: %v", payload.SessionId, runErr)
	}

	cs.publishOutcome(ctx, payload.SessionId)
}

func (cs *generationConsumerService) publishOutcome(ctx context.Context, sessionId string) {
	if cs.natsPub == nil {
		return
	}

	session, found, err := cs.sessions.Get(ctx, sessionId)
	if err != nil || !found {
		return
	}

	var evt events.BaseEvent
	switch {
	case session.Result != nil:
		evt = events.BaseEvent{
			Type: "PO_GENERATION_COMPLETED",
			Data: map[string]interface{}{
				"session_id":      sessionId,
				"total_items":     session.Result.TotalItems,
				"estimated_total": session.Result.EstimatedTotal,
			},
			OccurredAt: time.Now(),
		}
	case session.Error != nil:
		evt = events.BaseEvent{
			Type: "PO_GENERATION_FAILED",
			Data: map[string]interface{}{
				"session_id": sessionId,
				"stage":      session.Error.Stage,
				"message":    session.Error.Message,
			},
			OccurredAt: time.Now(),
		}
	default:
		return
	}

	if err := cs.natsPub.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish generation event for session %s: %v", sessionId, err)
	}
}
