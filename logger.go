package meshbvh

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with meshbvh-specific context. Builds and
// invalidations are logged; query traversal never logs.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds a tree-kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogBuild logs a tree build.
func (l *Logger) LogBuild(kind Kind, elements int, duration time.Duration, err error) {
	kl := l.WithKind(kind)
	if err != nil {
		kl.Error("tree build failed",
			"error", err,
		)
	} else {
		kl.Debug("tree built",
			"elements", elements,
			"duration", duration,
		)
	}
}

// LogInvalidate logs a cache-slot invalidation.
func (l *Logger) LogInvalidate(kind Kind) {
	l.WithKind(kind).Debug("tree invalidated")
}
