package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"pharma-warehouse-be/pkg/llm"
	"pharma-warehouse-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the real Ollama chat endpoint. Needs a local Ollama server
// with the model pulled; skipped unless OLLAMA_INTEGRATION=true.
func TestOllamaProvider(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	provider := ollama.NewOllamaProvider(baseURL, model)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	t.Run("Generate", func(t *testing.T) {
		resp, err := provider.Generate(ctx,
			"Reply with exactly one word: OK",
			llm.WithTemperature(0),
			llm.WithMaxTokens(10),
		)
		require.NoError(t, err)
		assert.NotEmpty(t, resp)
		t.Logf("Generate response: %q", resp)
	})

	t.Run("Chat with history", func(t *testing.T) {
		history := []llm.Message{
			{Role: "system", Content: "You are a pharmacy procurement assistant."},
			{Role: "user", Content: "Summarize in one sentence why reorder points matter."},
		}
		resp, err := provider.Chat(ctx, history, llm.WithTemperature(0.2))
		require.NoError(t, err)
		assert.NotEmpty(t, resp)
		t.Logf("Chat response: %q", resp)
	})
}
