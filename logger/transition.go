package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/fsmkit"
)

// Slog bridges the machine's TransitionLogger capability to a *slog.Logger.
type Slog struct {
	log   *slog.Logger
	level slog.Level
	msg   string
}

var _ fsmkit.TransitionLogger = (*Slog)(nil)

// SlogOption configures the Slog adapter.
type SlogOption func(*Slog)

// WithSlogLevel sets the level transition records are logged at.
// The default is slog.LevelInfo.
func WithSlogLevel(level slog.Level) SlogOption {
	return func(s *Slog) { s.level = level }
}

// WithSlogMessage sets the log message of transition records.
// Empty messages are ignored.
func WithSlogMessage(msg string) SlogOption {
	return func(s *Slog) {
		if msg != "" {
			s.msg = msg
		}
	}
}

// NewSlog creates an adapter logging transitions through log. A nil log
// falls back to slog.Default.
func NewSlog(log *slog.Logger, opts ...SlogOption) *Slog {
	if log == nil {
		log = slog.Default()
	}
	s := &Slog{log: log, level: slog.LevelInfo, msg: "state transition"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Slog) LogTransition(ctx context.Context, event, from, to string) {
	s.log.LogAttrs(ctx, s.level, s.msg,
		slog.String("event", event),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// Console is a trivial print adapter writing one line per transition,
// meant for examples and local debugging.
type Console struct {
	w io.Writer
}

var _ fsmkit.TransitionLogger = (*Console)(nil)

// NewConsole creates a console adapter. A nil writer falls back to os.Stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) LogTransition(_ context.Context, event, from, to string) {
	fmt.Fprintf(c.w, "transition %s: %s -> %s\n", event, from, to)
}
