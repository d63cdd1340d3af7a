package pipeline

import (
	"context"
	"testing"
	"time"

	"pharma-warehouse-be/internal/repository/memory"
	"pharma-warehouse-be/pkg/store"
)

// stubStage lets tests script each step of the pipeline.
type stubStage struct {
	name  string
	run   func(ctx context.Context, state *State) error
	calls int
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Run(ctx context.Context, state *State) error {
	s.calls++
	if s.run != nil {
		return s.run(ctx, state)
	}
	return nil
}

func finishingStage(name string) *stubStage {
	return &stubStage{
		name: name,
		run: func(ctx context.Context, state *State) error {
			state.Artifacts[name] = stubArtifact(name)
			state.Result = &store.Result{
				Reasoning: map[string]store.StageArtifact{name: stubArtifact(name)},
			}
			return nil
		},
	}
}

func newPendingSession(t *testing.T, repo *memory.GenerationSessionRepository, id string) {
	t.Helper()
	err := repo.Create(context.Background(), &store.GenerationSession{
		ID:              id,
		Status:          store.StatusPending,
		StagesCompleted: []string{},
		CreatedAt:       time.Now(),
	})
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}
}

func TestOrchestratorHappyPath(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	first := &stubStage{name: "forecast"}
	second := &stubStage{name: "adjustment"}
	last := finishingStage("allocation")
	orch := NewOrchestrator(repo, []Stage{first, second, last}, time.Minute, testLogger())

	if err := orch.Run(context.Background(), "s1", Request{ForecastDays: 30}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	session, found, _ := repo.Get(context.Background(), "s1")
	if !found {
		t.Fatal("session disappeared")
	}
	if session.Status != store.StatusCompleted {
		t.Errorf("Status = %q, want completed", session.Status)
	}
	if session.ProgressPercent != 100 {
		t.Errorf("ProgressPercent = %d, want 100", session.ProgressPercent)
	}
	if session.CurrentStage != "" {
		t.Errorf("CurrentStage = %q, want empty", session.CurrentStage)
	}
	if session.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if session.Result == nil {
		t.Error("Result not recorded")
	}
	if len(session.StagesCompleted) != 3 {
		t.Errorf("StagesCompleted = %v, want 3 entries", session.StagesCompleted)
	}
}

func TestOrchestratorProgressCheckpoints(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	var progressAfterFirst, progressAfterSecond int
	first := &stubStage{name: "forecast"}
	second := &stubStage{
		name: "adjustment",
		run: func(ctx context.Context, state *State) error {
			session, _, _ := repo.Get(ctx, "s1")
			progressAfterFirst = session.ProgressPercent
			return nil
		},
	}
	last := finishingStage("allocation")
	last.run = func(ctx context.Context, state *State) error {
		session, _, _ := repo.Get(ctx, "s1")
		progressAfterSecond = session.ProgressPercent
		state.Result = &store.Result{}
		return nil
	}

	orch := NewOrchestrator(repo, []Stage{first, second, last}, time.Minute, testLogger())
	if err := orch.Run(context.Background(), "s1", Request{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if progressAfterFirst != 33 {
		t.Errorf("progress after first stage = %d, want 33", progressAfterFirst)
	}
	if progressAfterSecond != 66 {
		t.Errorf("progress after second stage = %d, want 66", progressAfterSecond)
	}
}

// observingRepo snapshots the session after every progress write, the way
// a status poll racing the pipeline would see it.
type observingRepo struct {
	*memory.GenerationSessionRepository
	seen []store.GenerationSession
}

func (r *observingRepo) SetStageProgress(ctx context.Context, id, currentStage string, progress int, completedStage string) error {
	err := r.GenerationSessionRepository.SetStageProgress(ctx, id, currentStage, progress, completedStage)
	if session, found, _ := r.GenerationSessionRepository.Get(ctx, id); found {
		r.seen = append(r.seen, *session)
	}
	return err
}

func TestOrchestratorFullProgressOnlyWhenCompleted(t *testing.T) {
	inner := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, inner, "s1")
	repo := &observingRepo{GenerationSessionRepository: inner}

	first := &stubStage{name: "forecast"}
	second := &stubStage{name: "adjustment"}
	last := finishingStage("allocation")
	orch := NewOrchestrator(repo, []Stage{first, second, last}, time.Minute, testLogger())

	if err := orch.Run(context.Background(), "s1", Request{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, snapshot := range repo.seen {
		if snapshot.Status != store.StatusCompleted && snapshot.ProgressPercent >= 100 {
			t.Errorf("observed progress %d with status %q", snapshot.ProgressPercent, snapshot.Status)
		}
	}

	session, _, _ := inner.Get(context.Background(), "s1")
	if session.Status != store.StatusCompleted || session.ProgressPercent != 100 {
		t.Errorf("final session = %q/%d, want completed/100", session.Status, session.ProgressPercent)
	}
	if len(session.StagesCompleted) != 3 {
		t.Errorf("StagesCompleted = %v, want 3 entries", session.StagesCompleted)
	}
}

func TestOrchestratorStageFailure(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	first := &stubStage{name: "forecast"}
	failing := &stubStage{
		name: "adjustment",
		run: func(ctx context.Context, state *State) error {
			return errStageBoom
		},
	}
	never := &stubStage{name: "allocation"}

	orch := NewOrchestrator(repo, []Stage{first, failing, never}, time.Minute, testLogger())
	if err := orch.Run(context.Background(), "s1", Request{}); err == nil {
		t.Fatal("Run() expected error, got nil")
	}

	if never.calls != 0 {
		t.Errorf("stage after failure ran %d time(s)", never.calls)
	}

	session, _, _ := repo.Get(context.Background(), "s1")
	if session.Status != store.StatusFailed {
		t.Errorf("Status = %q, want failed", session.Status)
	}
	if session.Error == nil {
		t.Fatal("Error not recorded")
	}
	if session.Error.Stage != "adjustment" {
		t.Errorf("Error.Stage = %q, want adjustment", session.Error.Stage)
	}
	if session.Error.Timeout {
		t.Error("Timeout = true, want false")
	}
	// Progress from the completed first stage is preserved.
	if session.ProgressPercent != 33 {
		t.Errorf("ProgressPercent = %d, want 33", session.ProgressPercent)
	}
}

func TestOrchestratorStageTimeout(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	slow := &stubStage{
		name: "forecast",
		run: func(ctx context.Context, state *State) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		},
	}

	orch := NewOrchestrator(repo, []Stage{slow}, 20*time.Millisecond, testLogger())
	if err := orch.Run(context.Background(), "s1", Request{}); err == nil {
		t.Fatal("Run() expected timeout error, got nil")
	}

	session, _, _ := repo.Get(context.Background(), "s1")
	if session.Status != store.StatusFailed {
		t.Errorf("Status = %q, want failed", session.Status)
	}
	if session.Error == nil || !session.Error.Timeout {
		t.Errorf("Error = %+v, want timeout flagged", session.Error)
	}
}

func TestOrchestratorClaimsOnce(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	stage := finishingStage("allocation")
	orch := NewOrchestrator(repo, []Stage{stage}, time.Minute, testLogger())

	if err := orch.Run(context.Background(), "s1", Request{}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	// Duplicate delivery: claim is lost, stages must not run again.
	if err := orch.Run(context.Background(), "s1", Request{}); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if stage.calls != 1 {
		t.Errorf("stage ran %d time(s), want 1", stage.calls)
	}
}

func TestOrchestratorUnknownSession(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	stage := finishingStage("allocation")
	orch := NewOrchestrator(repo, []Stage{stage}, time.Minute, testLogger())

	if err := orch.Run(context.Background(), "missing", Request{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stage.calls != 0 {
		t.Errorf("stage ran %d time(s) for unknown session", stage.calls)
	}
}

func TestOrchestratorNilResultFails(t *testing.T) {
	repo := memory.NewGenerationSessionRepository(time.Hour)
	newPendingSession(t, repo, "s1")

	stage := &stubStage{name: "allocation"} // never sets state.Result
	orch := NewOrchestrator(repo, []Stage{stage}, time.Minute, testLogger())

	if err := orch.Run(context.Background(), "s1", Request{}); err == nil {
		t.Fatal("Run() expected error, got nil")
	}

	session, _, _ := repo.Get(context.Background(), "s1")
	if session.Status != store.StatusFailed {
		t.Errorf("Status = %q, want failed", session.Status)
	}
}
