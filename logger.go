package splitmatch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with splitmatch-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithStage adds a pipeline stage field to the logger.
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stage", stage),
	}
}

// WithLocation adds a storage location field to the logger.
func (l *Logger) WithLocation(location string) *Logger {
	return &Logger{
		Logger: l.Logger.With("location", location),
	}
}

// LogParse logs the result of reading a tree set.
func (l *Logger) LogParse(ctx context.Context, location string, trees int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parsing trees failed",
			"location", location,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "parsed trees",
			"location", location,
			"trees", trees,
		)
	}
}

// LogNormalize logs the result of tip numbering.
func (l *Logger) LogNormalize(ctx context.Context, lineages, queries, others int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "normalizing trees failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "normalized trees",
			"lineages", lineages,
			"queries", queries,
			"others", others,
		)
	}
}

// LogAccumulate logs the result of scoring a forest.
func (l *Logger) LogAccumulate(ctx context.Context, trees, splits int, matches uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "accumulating matches failed",
			"trees", trees,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "accumulated matches",
			"trees", trees,
			"total_splits", splits,
			"matches", matches,
		)
	}
}

// LogWrite logs the result of writing a report.
func (l *Logger) LogWrite(ctx context.Context, name, format string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "writing report failed",
			"name", name,
			"format", format,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report written",
			"name", name,
			"format", format,
		)
	}
}

const progressInterval = 2 * time.Second

// progress returns a callback that logs pass progress at most every
// progressInterval, plus the first and the final call.
func (l *Logger) progress(ctx context.Context, stage string) func(done, total int) {
	s := &rate.Sometimes{First: 1, Interval: progressInterval}
	return func(done, total int) {
		if done == total {
			l.DebugContext(ctx, "progress", "stage", stage, "done", done, "total", total)
			return
		}
		s.Do(func() {
			l.DebugContext(ctx, "progress", "stage", stage, "done", done, "total", total)
		})
	}
}
