package logging

import (
	"context"
	"log/slog"
)

type loggerKeyType string

const loggerKey loggerKeyType = "logger"

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// From returns the logger carried by ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

// WithAttrs returns ctx carrying the current logger extended with args.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	return With(ctx, From(ctx).With(args...))
}
