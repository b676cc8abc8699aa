package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// CloseFunc defers Close for callers that hand a release function around.
func CloseFunc(ctx context.Context, closer io.Closer) func() {
	return func() {
		Close(ctx, closer)
	}
}
