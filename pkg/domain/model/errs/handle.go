package errs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/request_id"
)

// Handle logs the error and reports it to Sentry. Sentry is a no-op when it
// has not been initialized.
func Handle(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[CRITICAL] slog crashed during error handling: original_error=%s, slog_panic=%v\n",
				err.Error(), r)
		}
	}()

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if reqID := request_id.FromContext(ctx); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		for k, v := range goerr.Values(err) {
			scope.SetExtra(k, v)
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error("Error: "+err.Error(),
		slog.Any("error", err),
		slog.Any("sentry.id", evID),
	)
}
