package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log lines while the terminal UI owns the screen.
	// Empty means next to the database.
	File string `mapstructure:"file"`
}

func parseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
}

// ZerologLevel returns the configured level.
func (l LoggingConfig) ZerologLevel() zerolog.Level {
	lvl, _ := parseLevel(l.Level)
	return lvl
}

// Setup points the global logger at w with the configured format and
// level.
func (l LoggingConfig) Setup(w io.Writer) {
	if l.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(l.ZerologLevel())
}

// SetupFile sends JSON log lines to path, creating it if needed. The caller
// closes the returned file.
func (l LoggingConfig) SetupFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	file := l
	file.Format = FormatJSON
	file.Setup(f)
	return f, nil
}
