// Package logger provides TransitionLogger adapters for fsmkit machines and
// a small factory for configured slog.Logger instances.
//
// The machine core depends only on the one-method TransitionLogger
// capability; this package supplies the two common implementations:
//
//   - Slog bridges transitions to a *slog.Logger with event/from/to attrs.
//   - Console prints one human-readable line per transition to a writer.
//
// The factory side mirrors how services typically construct their logger:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "billing")),
//	)
//
//	machine := fsmkit.MustNew(initial,
//	    fsmkit.WithLogger(logger.NewSlog(log)),
//	    // ...
//	)
//
// NewFromEnv reads FSM_LOG_LEVEL and FSM_LOG_FORMAT (loading a .env file
// once if present) for environments configured entirely via variables.
package logger
