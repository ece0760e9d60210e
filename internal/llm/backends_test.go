package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

const headlineJSON = `{"headline":"DIY fits","reasons":["Small estate"]}`

func headlineSchema() *Schema {
	return &Schema{
		Name: "test-headline",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"headline": map[string]any{"type": "string"},
				"reasons":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required":             []string{"headline", "reasons"},
			"additionalProperties": false,
		},
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(
		Config{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestAnthropicProvider_StructuredReply(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": headlineJSON}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}))

	resp, err := p.Generate(context.Background(), Request{
		System:    "Explain the result.",
		Messages:  []Message{{Role: RoleUser, Content: "tier1"}},
		Schema:    headlineSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop = %q", resp.StopReason)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		p := newTestAnthropic(t, jsonHandler(tt.status, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": "nope"},
		}))
		_, err := p.Generate(context.Background(), Request{
			Messages:  []Message{{Role: RoleUser, Content: "x"}},
			MaxTokens: 10,
		})
		if err == nil || !tt.check(err) {
			t.Errorf("status %d: got %T (%v)", tt.status, err, err)
		}
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_SendsSchemaAndValidates(t *testing.T) {
	var got map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, chatCompletion(headlineJSON, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:   "Explain.",
		Messages: []Message{{Role: RoleUser, Content: "tier1"}},
		Schema:   headlineSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 65 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	rf, _ := got["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Errorf("sent %d messages, want system + user", len(msgs))
	}
}

func TestOpenAIProvider_InvalidReply(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, chatCompletion(`{"headline":1}`, "stop")))
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   headlineSchema(),
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, chatCompletion(`{"headline":"D`, "length")))
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   headlineSchema(),
	})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit"},
	}))
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(Config{Model: "meta-llama/llama-3-8b"}); err == nil {
		t.Error("expected error without API key")
	}
	p, err := NewOpenRouterProvider(Config{APIKey: "sk-or", Provider: ProviderOpenRouter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("default model = %q", p.ModelID())
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "one line"},
			"tone":     map[string]any{"type": "string", "enum": []any{"calm", "urgent"}},
			"reasons":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"headline"},
	})
	if s.Type != genai.TypeObject {
		t.Errorf("type = %v", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("properties = %d", len(s.Properties))
	}
	if s.Properties["headline"].Description != "one line" {
		t.Errorf("description lost")
	}
	if got := s.Properties["tone"].Enum; len(got) != 2 || got[1] != "urgent" {
		t.Errorf("enum = %v", got)
	}
	if s.Properties["reasons"].Items == nil || s.Properties["reasons"].Items.Type != genai.TypeString {
		t.Errorf("items = %+v", s.Properties["reasons"].Items)
	}
	if len(s.Required) != 1 || s.Required[0] != "headline" {
		t.Errorf("required = %v", s.Required)
	}
}
