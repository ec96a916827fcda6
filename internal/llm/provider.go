// Package llm holds the completion clients for the supported LLM
// backends and the prompts the pipeline sends through them.
package llm

import "context"

// Provider is a minimal completion client for one LLM backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one prompt and returns the model's text response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is the input for a single completion call.
type CompletionRequest struct {
	// System is the system prompt.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Prefill seeds the assistant's response so the model continues
	// from it. Backends that support it send it as a trailing
	// assistant message; the response text has it already stripped.
	Prefill string

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls sampling; extraction and alignment run at 0.
	Temperature float32

	// StopSequences end generation when emitted.
	StopSequences []string
}

// CompletionResponse is the model's reply.
type CompletionResponse struct {
	// Text is the response text.
	Text string

	// Model is the model that produced the response.
	Model string

	// TokensUsed tracks token consumption when the backend reports it.
	TokensUsed int
}

// Config holds provider configuration. Everything is explicit; no
// ambient SDK credentials or process-global state.
type Config struct {
	// Provider name: "anthropic", "openai", "ollama"
	Provider string

	// Model name (provider-specific; each provider has a default)
	Model string

	// APIKey for Anthropic/OpenAI
	APIKey string

	// BaseURL for custom endpoints (Ollama, test servers)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float32
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "anthropic",
		Timeout:     60,
		MaxTokens:   4096,
		Temperature: 0,
	}
}
