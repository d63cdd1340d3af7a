package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "po:session:"

// GenerationSessionRepository keeps sessions in Redis so status polls can be
// served by any instance. The one-time claim uses SETNX on a side key; after
// a successful claim only the claiming orchestrator writes the session body,
// so plain read-modify-write is safe.
type GenerationSessionRepository struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewGenerationSessionRepository(rdb *redis.Client, retention time.Duration) *GenerationSessionRepository {
	if retention <= 0 {
		retention = 1 * time.Hour
	}
	return &GenerationSessionRepository{
		rdb:       rdb,
		retention: retention,
	}
}

var _ contract.GenerationSessionRepository = (*GenerationSessionRepository)(nil)

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func claimKey(id string) string {
	return sessionKeyPrefix + id + ":claim"
}

func (r *GenerationSessionRepository) Create(ctx context.Context, session *store.GenerationSession) error {
	return r.save(ctx, session)
}

func (r *GenerationSessionRepository) Get(ctx context.Context, id string) (*store.GenerationSession, bool, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}

	var session store.GenerationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, true, nil
}

func (r *GenerationSessionRepository) Claim(ctx context.Context, id string) (bool, error) {
	session, found, err := r.Get(ctx, id)
	if err != nil || !found {
		return false, err
	}
	if session.Status != store.StatusPending {
		return false, nil
	}

	remaining := r.remaining(session)
	if remaining <= 0 {
		return false, nil
	}
	claimed, err := r.rdb.SetNX(ctx, claimKey(id), "1", remaining).Result()
	if err != nil {
		return false, fmt.Errorf("redis claim session: %w", err)
	}
	if !claimed {
		return false, nil
	}

	session.Status = store.StatusProcessing
	return true, r.save(ctx, session)
}

func (r *GenerationSessionRepository) SetStageProgress(ctx context.Context, id, currentStage string, progress int, completedStage string) error {
	session, found, err := r.Get(ctx, id)
	if err != nil || !found || session.Terminal() {
		return err
	}

	session.CurrentStage = currentStage
	if progress > session.ProgressPercent {
		session.ProgressPercent = progress
	}
	if completedStage != "" {
		session.StagesCompleted = append(session.StagesCompleted, completedStage)
	}
	return r.save(ctx, session)
}

func (r *GenerationSessionRepository) Complete(ctx context.Context, id string, result *store.Result) error {
	session, found, err := r.Get(ctx, id)
	if err != nil || !found || session.Terminal() {
		return err
	}

	now := time.Now()
	session.Status = store.StatusCompleted
	session.ProgressPercent = 100
	session.CurrentStage = ""
	session.CompletedAt = &now
	session.Result = result
	return r.save(ctx, session)
}

func (r *GenerationSessionRepository) Fail(ctx context.Context, id string, genErr *store.GenerationError) error {
	session, found, err := r.Get(ctx, id)
	if err != nil || !found || session.Terminal() {
		return err
	}

	now := time.Now()
	session.Status = store.StatusFailed
	session.CurrentStage = ""
	session.CompletedAt = &now
	session.Error = genErr
	return r.save(ctx, session)
}

func (r *GenerationSessionRepository) save(ctx context.Context, session *store.GenerationSession) error {
	remaining := r.remaining(session)
	if remaining <= 0 {
		return r.rdb.Del(ctx, sessionKey(session.ID)).Err()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.ID), data, remaining).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// remaining is what is left of the retention window, measured from the
// session's creation so writes do not extend its life.
func (r *GenerationSessionRepository) remaining(session *store.GenerationSession) time.Duration {
	if session.CreatedAt.IsZero() {
		return r.retention
	}
	return r.retention - time.Since(session.CreatedAt)
}
