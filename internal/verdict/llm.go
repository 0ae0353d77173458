// Package verdict decides whether a claim is consistent with retrieved
// book evidence. It defines a provider-agnostic LLM interface with a
// concrete OpenAI implementation and deterministic mocks for testing,
// assembles the fixed decision prompt, and defensively parses the
// engine's free-text response into a binary verdict.
package verdict

import (
	"context"
	"errors"
	"os"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Verdict values. The system is conservative: ambiguity resolves to
// Contradicted.
const (
	Contradicted = 0
	Consistent   = 1
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "gpt-4o-mini")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for consistency checking.
// The model can be overridden via the REASONING_MODEL environment variable.
func DefaultLLMConfig() LLMConfig {
	model := os.Getenv("REASONING_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return LLMConfig{
		Model:       model,
		Temperature: 0, // deterministic verdicts
		MaxTokens:   500,
	}
}
