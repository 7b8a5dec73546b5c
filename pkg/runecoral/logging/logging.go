package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Logger defines the subset of slog functionality used by the runecoral
// wrapper. The interface is small so applications can plug in their own
// implementation for tests or an existing logging system.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by the provided slog.Logger. Passing nil binds to
// slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }

// ModelSize logs the length of a model blob. Model bytes themselves are
// never logged.
func ModelSize(model []byte) slog.Attr {
	return slog.Int("model_bytes", len(model))
}

// Shape renders a tensor shape as "[1 224 224 3]".
func Shape(key string, shape []int) slog.Attr {
	return slog.String(key, fmt.Sprint(shape))
}

// Shapes renders a list of tensor shapes, e.g. "[1 1],[1 10]".
func Shapes(key string, shapes [][]int) slog.Attr {
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = fmt.Sprint(s)
	}
	return slog.String(key, strings.Join(parts, ","))
}
