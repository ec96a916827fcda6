package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/termtools/extract-terms/internal/model"
)

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	if err == nil {
		t.Fatal("expected an error without an API key")
	}
	if !model.IsKind(err, model.AuthError) {
		t.Errorf("expected AuthError, got %v", model.KindOf(err))
	}
}

func TestOpenAIProvider_Complete_StripsPrefillEcho(t *testing.T) {
	var captured openai.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}

		// Chat models tend to repeat the seeded assistant text.
		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: OutputPrefill + "<terminology><term>Ventilator</term></terminology>",
				}},
			},
			Usage: openai.Usage{TotalTokens: 42},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		System:        "system prompt",
		Prompt:        "extract terms",
		Prefill:       OutputPrefill,
		StopSequences: []string{OutputStop},
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if resp.Text != "<terminology><term>Ventilator</term></terminology>" {
		t.Errorf("expected the prefill echo to be stripped, got %q", resp.Text)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("expected 42 tokens used, got %d", resp.TokensUsed)
	}

	if len(captured.Messages) != 3 {
		t.Fatalf("expected system, user and prefill messages, got %d", len(captured.Messages))
	}
	last := captured.Messages[2]
	if last.Role != openai.ChatMessageRoleAssistant || last.Content != OutputPrefill {
		t.Errorf("expected trailing assistant prefill, got %+v", last)
	}
	if len(captured.Stop) != 1 || captured.Stop[0] != OutputStop {
		t.Errorf("expected stop sequence %q, got %v", OutputStop, captured.Stop)
	}
}

func TestOpenAIProvider_UnauthorizedIsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "bad-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if !model.IsKind(err, model.AuthError) {
		t.Errorf("expected AuthError, got %v: %v", model.KindOf(err), err)
	}
}
