package contract

import (
	"context"

	"pharma-warehouse-be/pkg/store"
)

// GenerationSessionRepository is the session store behind the generation
// protocol. Implementations must support concurrent reads and serialize
// writes per session; the single orchestrator writer is enforced by Claim,
// which succeeds at most once per session id.
//
// Terminal sessions are immutable: SetStageProgress, Complete and Fail are
// no-ops once the session is completed or failed.
type GenerationSessionRepository interface {
	Create(ctx context.Context, session *store.GenerationSession) error

	// Get returns a copy of the session, or found=false when the id is
	// unknown or expired.
	Get(ctx context.Context, id string) (*store.GenerationSession, bool, error)

	// Claim transitions pending -> processing exactly once. It returns
	// false when the session does not exist or was already claimed.
	Claim(ctx context.Context, id string) (bool, error)

	// SetStageProgress advances progress after a stage boundary. Progress
	// never decreases.
	SetStageProgress(ctx context.Context, id, currentStage string, progress int, completedStage string) error

	Complete(ctx context.Context, id string, result *store.Result) error
	Fail(ctx context.Context, id string, genErr *store.GenerationError) error
}
