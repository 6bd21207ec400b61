// Package ctxlog carries the *slog.Logger of a link run through
// context.Context so library stages can log without a logger parameter.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var discard = slog.New(slog.DiscardHandler)

// WithLogger returns a copy of ctx holding logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or one that discards
// everything when none was stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return discard
}

// With returns a context whose logger carries the given attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// Stage tags the logger with the name of a pipeline stage.
func Stage(ctx context.Context, name string) context.Context {
	return With(ctx, "stage", name)
}
