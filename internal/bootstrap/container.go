package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"pharma-warehouse-be/internal/config"
	"pharma-warehouse-be/internal/controller"
	"pharma-warehouse-be/internal/pkg/logger"
	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/internal/repository/memory"
	redisRepo "pharma-warehouse-be/internal/repository/redis"
	"pharma-warehouse-be/internal/repository/unitofwork"
	"pharma-warehouse-be/internal/service"
	"pharma-warehouse-be/pkg/ai/pipeline"
	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/llm/factory"

	pktNats "pharma-warehouse-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController    controller.IGenerationController
	InventoryController     controller.IInventoryController
	PurchaseOrderController controller.IPurchaseOrderController

	// Background Services (Exposed for main.go to run)
	GenerationConsumerService service.IGenerationConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Session Storage
	retention := time.Duration(cfg.Pipeline.SessionRetentionMinutes) * time.Minute
	var sessionRepo contract.GenerationSessionRepository
	if cfg.Pipeline.SessionStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisRepo.NewGenerationSessionRepository(rdb, retention)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewGenerationSessionRepository(retention)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 4. LLM Provider
	// Without a configured provider the server still boots; generate
	// requests are rejected at the capability gate.
	capability := llm.NewConfigCapability(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL)

	var llmProvider llm.LLMProvider
	if configured, _ := capability.Check(); configured {
		llmProvider, err = factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[WARN] No LLM provider configured; generation requests will be rejected")
	}

	// 5. Pipeline
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)
	readers := service.NewPipelineReaders(uowFactory)
	stages := []pipeline.Stage{
		pipeline.NewForecastStage(readers, llmProvider, pipelineLogger),
		pipeline.NewAdjustmentStage(llmProvider, pipelineLogger),
		pipeline.NewAllocationStage(readers, llmProvider, pipelineLogger),
	}
	orchestrator := pipeline.NewOrchestrator(
		sessionRepo,
		stages,
		time.Duration(cfg.Pipeline.StageTimeoutSeconds)*time.Second,
		pipelineLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Pipeline.GenerateTopic, pubSub)
	generationConsumerService := service.NewGenerationConsumerService(
		pubSub,
		cfg.Pipeline.GenerateTopic,
		orchestrator,
		sessionRepo,
		natsPub,
	)

	generationService := service.NewGenerationService(capability, sessionRepo, publisherService, sysLogger)
	inventoryService := service.NewInventoryService(uowFactory)
	purchaseOrderService := service.NewPurchaseOrderService(uowFactory, sessionRepo, natsPub, sysLogger)

	// 7. Controllers
	return &Container{
		GenerationController:      controller.NewGenerationController(generationService),
		InventoryController:       controller.NewInventoryController(inventoryService),
		PurchaseOrderController:   controller.NewPurchaseOrderController(purchaseOrderService),
		GenerationConsumerService: generationConsumerService,
	}
}
