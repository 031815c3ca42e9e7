package bumparena

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific helpers.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName tags every record with an arena name (useful with many arenas).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name),
	}
}

// LogAllocFailure logs a rejected allocation.
func (l *Logger) LogAllocFailure(size, align int, err error) {
	l.Error("allocation failed",
		"size", size,
		"align", align,
		"error", err,
	)
}

// LogBlockAcquired logs a block appended to the chain.
func (l *Logger) LogBlockAcquired(index, capacity int) {
	l.Debug("block acquired",
		"index", index,
		"capacity", capacity,
	)
}

// LogRelease logs a ReleaseAll.
func (l *Logger) LogRelease(blocks int, bytes uint64, err error) {
	if err != nil {
		l.Error("release failed",
			"blocks", blocks,
			"bytes", bytes,
			"error", err,
		)
	} else if blocks > 0 {
		l.Info("arena released",
			"blocks", blocks,
			"bytes", bytes,
		)
	}
}

// LogReset logs a Reset.
func (l *Logger) LogReset(blocks int) {
	l.Debug("arena reset",
		"blocks", blocks,
	)
}
