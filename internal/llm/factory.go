package llm

import (
	"strings"

	"github.com/termtools/extract-terms/internal/model"
)

// NewProvider creates an LLM provider from configuration. Unlike an
// optional add-on, the provider is required here: the whole pipeline
// is LLM calls, so an empty provider name is a configuration error.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, model.NewError(model.ConfigurationError, "no LLM provider configured")

	default:
		return nil, model.NewError(model.ConfigurationError,
			"unknown LLM provider: %s (supported: anthropic, openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}
}
