package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization -
// misconfiguration should prevent startup rather than cause runtime errors.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers for safety.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// defaultConfig provides production-safe defaults: JSON format with INFO level.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured *slog.Logger. Pair it with NewSlog to obtain a
// TransitionLogger, or use it directly for application logging.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(handler)
}

// envConfig holds environment-driven logger settings.
type envConfig struct {
	Level  string `env:"FSM_LOG_LEVEL" envDefault:"info"`
	Format string `env:"FSM_LOG_FORMAT" envDefault:"json"`
}

var dotenvOnce sync.Once

// NewFromEnv creates a logger configured from environment variables,
// loading a .env file once if present. Recognized variables:
// FSM_LOG_LEVEL (debug|info|warn|error) and FSM_LOG_FORMAT (json|text).
func NewFromEnv(opts ...Option) (*slog.Logger, error) {
	dotenvOnce.Do(func() {
		// The .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("logger: failed to parse environment: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logger: invalid FSM_LOG_LEVEL %q: %w", cfg.Level, err)
	}

	format := Format(cfg.Format)
	switch format {
	case FormatJSON, FormatText:
	default:
		return nil, fmt.Errorf("logger: invalid FSM_LOG_FORMAT %q: must be %q or %q",
			cfg.Format, FormatJSON, FormatText)
	}

	return New(append([]Option{WithLevel(level), WithFormat(format)}, opts...)...), nil
}
