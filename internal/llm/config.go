package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
	ProviderNone       = "" // explanations use templates only
)

// defaultModels is used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
	ProviderGemini:     "gemini-flash",
}

// modelAliases maps short names to provider model IDs. Unknown names are
// sent unchanged.
var modelAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoints only

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a config with no provider and default retry
// settings.
func DefaultConfig() Config {
	return Config{
		Timeout: 20 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != ProviderNone }

// ResolvedModel returns the model ID requests are sent to.
func (c Config) ResolvedModel() string {
	m := c.Model
	if m == "" {
		m = defaultModels[c.Provider]
	}
	return resolveModel(m)
}

// ConfigFromEnv overlays PROBATEQUIZ_LLM_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = strings.ToLower(os.Getenv("PROBATEQUIZ_LLM_PROVIDER"))
	cfg.Model = os.Getenv("PROBATEQUIZ_LLM_MODEL")
	cfg.APIKey = os.Getenv("PROBATEQUIZ_LLM_API_KEY")
	cfg.BaseURL = os.Getenv("PROBATEQUIZ_LLM_BASE_URL")
	return cfg
}

// vendorKeys lists the vendors' own API key variables in probe order.
var vendorKeys = []struct{ env, provider string }{
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Discover fills in a missing API key from the vendor's own environment
// variable. With no provider selected it picks the first vendor whose key
// is set.
func (c Config) Discover() Config {
	for _, vk := range vendorKeys {
		key := os.Getenv(vk.env)
		if key == "" {
			continue
		}
		if c.Provider == ProviderNone {
			c.Provider = vk.provider
		}
		if c.Provider == vk.provider && c.APIKey == "" {
			c.APIKey = key
		}
	}
	return c
}

// Validate checks that the selected provider can be built.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("llm.api_key (or PROBATEQUIZ_LLM_API_KEY) is required for the %s provider", c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative")
	}
	return nil
}
