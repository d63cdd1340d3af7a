package pipeline

import "context"

// Stage is one ordered processing step of the generation pipeline. Each
// stage reads its input from the shared State and writes its output (data
// plus a StageArtifact keyed by its name) back to it.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *State) error
}
