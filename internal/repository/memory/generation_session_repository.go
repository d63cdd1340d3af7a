package memory

import (
	"context"
	"sync"
	"time"

	"pharma-warehouse-be/internal/repository/contract"
	"pharma-warehouse-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// GenerationSessionRepository is the in-process session store. Sessions
// expire from the cache after the retention window; a running pipeline is
// not stopped by expiry, its writes simply land nowhere.
type GenerationSessionRepository struct {
	cache     *cache.Cache
	retention time.Duration
	mu        sync.RWMutex
}

func NewGenerationSessionRepository(retention time.Duration) *GenerationSessionRepository {
	if retention <= 0 {
		retention = 1 * time.Hour
	}
	// Purge expired sessions at a fraction of the retention window
	c := cache.New(retention, retention/6)
	return &GenerationSessionRepository{
		cache:     c,
		retention: retention,
	}
}

var _ contract.GenerationSessionRepository = (*GenerationSessionRepository)(nil)

func (r *GenerationSessionRepository) Create(ctx context.Context, session *store.GenerationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(session.Clone())
	return nil
}

func (r *GenerationSessionRepository) Get(ctx context.Context, id string) (*store.GenerationSession, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if x, found := r.cache.Get(id); found {
		return x.(*store.GenerationSession).Clone(), true, nil
	}
	return nil, false, nil
}

func (r *GenerationSessionRepository) Claim(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(id)
	if !found || session.Status != store.StatusPending {
		return false, nil
	}

	session.Status = store.StatusProcessing
	r.set(session)
	return true, nil
}

func (r *GenerationSessionRepository) SetStageProgress(ctx context.Context, id, currentStage string, progress int, completedStage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(id)
	if !found || session.Terminal() {
		return nil
	}

	session.CurrentStage = currentStage
	if progress > session.ProgressPercent {
		session.ProgressPercent = progress
	}
	if completedStage != "" {
		session.StagesCompleted = append(session.StagesCompleted, completedStage)
	}
	r.set(session)
	return nil
}

func (r *GenerationSessionRepository) Complete(ctx context.Context, id string, result *store.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(id)
	if !found || session.Terminal() {
		return nil
	}

	now := time.Now()
	session.Status = store.StatusCompleted
	session.ProgressPercent = 100
	session.CurrentStage = ""
	session.CompletedAt = &now
	session.Result = result
	r.set(session)
	return nil
}

func (r *GenerationSessionRepository) Fail(ctx context.Context, id string, genErr *store.GenerationError) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(id)
	if !found || session.Terminal() {
		return nil
	}

	now := time.Now()
	session.Status = store.StatusFailed
	session.CurrentStage = ""
	session.CompletedAt = &now
	session.Error = genErr
	r.set(session)
	return nil
}

// get must be called with the write lock held.
func (r *GenerationSessionRepository) get(id string) (*store.GenerationSession, bool) {
	if x, found := r.cache.Get(id); found {
		return x.(*store.GenerationSession), true
	}
	return nil, false
}

// set rewrites the session with whatever remains of its retention window.
// Retention runs from creation; writes do not extend a session's life.
func (r *GenerationSessionRepository) set(session *store.GenerationSession) {
	remaining := r.retention
	if !session.CreatedAt.IsZero() {
		remaining = r.retention - time.Since(session.CreatedAt)
	}
	if remaining <= 0 {
		r.cache.Delete(session.ID)
		return
	}
	r.cache.Set(session.ID, session, remaining)
}
