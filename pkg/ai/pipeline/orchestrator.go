package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/pkg/store"
)

// Orchestrator runs the ordered stages for one session. It claims the
// session exactly once, checkpoints progress after each stage, and records
// the terminal outcome. It never writes to a session after terminal.
type Orchestrator struct {
	stages       []Stage
	sessions     contract.GenerationSessionRepository
	stageTimeout time.Duration
	logger       *log.Logger
}

func NewOrchestrator(
	sessions contract.GenerationSessionRepository,
	stages []Stage,
	stageTimeout time.Duration,
	logger *log.Logger,
) *Orchestrator {
	if stageTimeout <= 0 {
		stageTimeout = 2 * time.Minute
	}
	return &Orchestrator{
		stages:       stages,
		sessions:     sessions,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}

// Run executes the pipeline for the session. Duplicate deliveries for the
// same session id lose the claim and return without touching it.
func (o *Orchestrator) Run(ctx context.Context, sessionID string, req Request) error {
	claimed, err := o.sessions.Claim(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("claim session %s: %w", sessionID, err)
	}
	if !claimed {
		o.logger.Printf("[PIPELINE] session=%s not claimable, skipping", sessionID)
		return nil
	}

	state := NewState(sessionID, req)

	for i, stage := range o.stages {
		// Mark the stage as current before it starts; progress stays put.
		if err := o.sessions.SetStageProgress(ctx, sessionID, stage.Name(), 0, ""); err != nil {
			o.logger.Printf("[PIPELINE] session=%s progress write failed: %v", sessionID, err)
		}

		o.logger.Printf("[PIPELINE] session=%s stage=%s starting", sessionID, stage.Name())
		started := time.Now()

		stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
		runErr := stage.Run(stageCtx, state)
		cancel()

		if runErr != nil {
			timeout := errors.Is(runErr, context.DeadlineExceeded)
			o.logger.Printf("[PIPELINE] session=%s stage=%s failed after %s: %v", sessionID, stage.Name(), time.Since(started), runErr)
			if failErr := o.sessions.Fail(ctx, sessionID, &store.GenerationError{
				Stage:   stage.Name(),
				Message: runErr.Error(),
				Timeout: timeout,
			}); failErr != nil {
				o.logger.Printf("[PIPELINE] session=%s fail write failed: %v", sessionID, failErr)
			}
			return fmt.Errorf("stage %s: %w", stage.Name(), runErr)
		}

		// Progress 100 is reserved for Complete, which flips the status in
		// the same write. The last stage only records its completion.
		checkpoint := (i + 1) * 100 / len(o.stages)
		if checkpoint >= 100 {
			checkpoint = 0
		}
		if err := o.sessions.SetStageProgress(ctx, sessionID, stage.Name(), checkpoint, stage.Name()); err != nil {
			o.logger.Printf("[PIPELINE] session=%s progress write failed: %v", sessionID, err)
		}
		o.logger.Printf("[PIPELINE] session=%s stage=%s done in %s", sessionID, stage.Name(), time.Since(started))
	}

	if state.Result == nil {
		err := fmt.Errorf("pipeline finished without a result")
		if failErr := o.sessions.Fail(ctx, sessionID, &store.GenerationError{
			Stage:   o.stages[len(o.stages)-1].Name(),
			Message: err.Error(),
		}); failErr != nil {
			o.logger.Printf("[PIPELINE] session=%s fail write failed: %v", sessionID, failErr)
		}
		return err
	}

	if err := o.sessions.Complete(ctx, sessionID, state.Result); err != nil {
		return fmt.Errorf("complete session %s: %w", sessionID, err)
	}
	o.logger.Printf("[PIPELINE] session=%s completed, %d item(s)", sessionID, len(state.Result.Items))
	return nil
}
