// Package config loads probatequiz settings from an optional YAML file, a
// .env file and PROBATEQUIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/probatequiz/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. PROBATEQUIZ_SERVER_ADDR.
const EnvPrefix = "PROBATEQUIZ"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// DatabaseConfig locates the SQLite file. Empty means store.DefaultDBPath.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// QuizConfig tunes the interactive quiz.
type QuizConfig struct {
	// AutoAdvanceDelay is how long a single-choice selection stays on
	// screen before the next question appears.
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	Registry       string        `mapstructure:"registry"` // memory or redis
	HandoffTimeout time.Duration `mapstructure:"handoff_timeout"`
}

// RedisConfig points at the Redis session registry.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LLMConfig selects the model behind the advisor. An empty provider keeps
// explanations template-only.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Registry backends.
const (
	RegistryMemory = "memory"
	RegistryRedis  = "redis"
)

// Load reads configuration. configPath may be empty to search the default
// locations; a missing file is not an error. A .env file in the working
// directory is loaded first and never overrides variables already set.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".probatequiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "probatequiz"))
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("quiz.auto_advance_delay", 300*time.Millisecond)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("server.registry", RegistryMemory)
	v.SetDefault("server.handoff_timeout", 10*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 20*time.Second)
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []string

	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Logging.Format != FormatConsole && c.Logging.Format != FormatJSON {
		errs = append(errs, "logging.format must be one of: console, json")
	}
	if c.Quiz.AutoAdvanceDelay < 0 || c.Quiz.AutoAdvanceDelay > 5*time.Second {
		errs = append(errs, "quiz.auto_advance_delay must be between 0s and 5s")
	}
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, "server.session_ttl must be positive")
	}
	if c.Server.HandoffTimeout < 0 {
		errs = append(errs, "server.handoff_timeout must not be negative")
	}
	switch c.Server.Registry {
	case RegistryMemory:
	case RegistryRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, "redis.addr is required for the redis registry")
		}
	default:
		errs = append(errs, fmt.Sprintf("server.registry must be memory or redis, got %q", c.Server.Registry))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, "redis.db must not be negative")
	}
	if err := c.LLMSettings().Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// LLMSettings converts the llm section, filling a missing API key from
// the vendor's own environment variable.
func (c *Config) LLMSettings() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Model = c.LLM.Model
	out.APIKey = c.LLM.APIKey
	out.BaseURL = c.LLM.BaseURL
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}
	if out.Provider != llm.ProviderNone {
		out = out.Discover()
	}
	return out
}
