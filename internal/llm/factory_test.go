package llm

import (
	"testing"

	"github.com/termtools/extract-terms/internal/model"
)

func TestNewProvider_Anthropic(t *testing.T) {
	p, err := NewProvider(Config{Provider: "anthropic", APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("expected anthropic provider, got %q", p.Name())
	}
}

func TestNewProvider_ClaudeAlias(t *testing.T) {
	p, err := NewProvider(Config{Provider: "claude", APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("expected anthropic provider for the claude alias, got %q", p.Name())
	}
}

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := NewProvider(Config{Provider: "openai", APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected openai provider, got %q", p.Name())
	}
}

func TestNewProvider_Ollama(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected ollama provider, got %q", p.Name())
	}
}

func TestNewProvider_MissingKeyIsAuthError(t *testing.T) {
	for _, name := range []string{"anthropic", "openai"} {
		_, err := NewProvider(Config{Provider: name})
		if err == nil {
			t.Errorf("%s: expected an error without an API key", name)
			continue
		}
		if !model.IsKind(err, model.AuthError) {
			t.Errorf("%s: expected AuthError, got %v", name, model.KindOf(err))
		}
	}
}

func TestNewProvider_EmptyIsConfigurationError(t *testing.T) {
	_, err := NewProvider(Config{})
	if err == nil {
		t.Fatal("expected an error for an empty provider name")
	}
	if !model.IsKind(err, model.ConfigurationError) {
		t.Errorf("expected ConfigurationError, got %v", model.KindOf(err))
	}
}

func TestNewProvider_UnknownIsConfigurationError(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bedrock"})
	if err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
	if !model.IsKind(err, model.ConfigurationError) {
		t.Errorf("expected ConfigurationError, got %v", model.KindOf(err))
	}
}
