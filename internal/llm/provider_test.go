package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	m := NewMockProvider(
		MockJSON(map[string]string{"n": "1"}),
		MockResponse{Err: errors.New("boom")},
	)
	ctx := context.Background()

	resp, err := m.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "a"}}})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if string(resp.Content) != `{"n":"1"}` || resp.Model != "mock" {
		t.Errorf("first reply = %s (%s)", resp.Content, resp.Model)
	}

	if _, err := m.Generate(ctx, Request{}); err == nil || err.Error() != "boom" {
		t.Errorf("second call err = %v", err)
	}

	_, err = m.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("empty queue err = %T", err)
	}
	if m.CallCount() != 3 || m.Calls[0].Messages[0].Content != "a" {
		t.Errorf("calls = %d", m.CallCount())
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockJSON(map[string]any{"headline": 7}))
	_, err := m.Generate(context.Background(), Request{Schema: headlineSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "explain")); got != "explain" {
		t.Errorf("purpose = %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := DefaultConfig()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"no provider", func(c *Config) {}, false},
		{"mock", func(c *Config) { c.Provider = ProviderMock }, false},
		{"anthropic with key", func(c *Config) { c.Provider = ProviderAnthropic; c.APIKey = "k" }, false},
		{"openai without key", func(c *Config) { c.Provider = ProviderOpenAI }, true},
		{"unknown", func(c *Config) { c.Provider = "llama" }, true},
		{"zero attempts", func(c *Config) {
			c.Provider = ProviderGemini
			c.APIKey = "k"
			c.Retry.MaxAttempts = 0
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ResolvedModel(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Provider: ProviderAnthropic}, "claude-haiku-4-5-20251001"},
		{Config{Provider: ProviderGemini, Model: "gemini-pro"}, "gemini-2.0-pro"},
		{Config{Provider: ProviderOpenAI, Model: "gpt-4.1"}, "gpt-4.1"},
	}
	for _, tt := range tests {
		if got := tt.cfg.ResolvedModel(); got != tt.want {
			t.Errorf("%+v: model = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}

func TestConfig_FromEnvAndDiscover(t *testing.T) {
	t.Setenv("PROBATEQUIZ_LLM_PROVIDER", "")
	t.Setenv("PROBATEQUIZ_LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg := ConfigFromEnv().Discover()
	if cfg.Provider != ProviderOpenAI || cfg.APIKey != "sk-openai" {
		t.Errorf("discovered %q %q", cfg.Provider, cfg.APIKey)
	}

	t.Setenv("PROBATEQUIZ_LLM_PROVIDER", "Gemini")
	cfg = ConfigFromEnv().Discover()
	if cfg.Provider != ProviderGemini || cfg.APIKey != "" {
		t.Errorf("explicit provider: %q key %q", cfg.Provider, cfg.APIKey)
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, DefaultConfig(), nil)
	if err != nil || p != nil {
		t.Errorf("no provider: %v, %v", p, err)
	}

	if _, err := NewProvider(ctx, Config{Provider: ProviderOpenAI}, nil); err == nil {
		t.Error("expected error without key")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.APIKey = "sk-or"
	cfg.Timeout = time.Second
	p, err = NewProvider(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if _, ok := p.(*timeoutProvider); !ok {
		t.Errorf("outermost wrapper = %T", p)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("model = %q", p.ModelID())
	}
}
