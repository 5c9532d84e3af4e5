package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler built by NewWithConfig.
type Config struct {
	// Output defaults to os.Stdout.
	Output io.Writer `yaml:"-"`
	// Format is "json" (default) or "text".
	Format string `yaml:"format"`
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level"`
}

// New creates a JSON logger on stdout with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{}, extractors...)
}

// NewWithConfig creates a logger from cfg with optional context extractors.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(Decorate(cfg.handler(), extractors...))
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (cfg Config) handler() slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
