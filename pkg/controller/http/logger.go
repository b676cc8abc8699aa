package http

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/request_id"
)

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Status returns the written status code, 200 when the handler never set one.
func (w *statusResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Hijack lets the alert feed upgrade through the middleware chain.
func (w *statusResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, goerr.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, requestID := request_id.Ensure(r.Context(), r.Header.Get(request_id.Header))
		logger := logging.From(ctx).With("request_id", requestID)
		w.Header().Set(request_id.Header, requestID)

		attrs := []any{
			slog.Any("method", r.Method),
			slog.Any("path", r.URL.Path),
			slog.Any("query", r.URL.Query()),
			slog.Any("headers", r.Header),
		}

		if logger.Enabled(ctx, slog.LevelDebug) && r.Body != nil {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("failed to read request body", "error", err)
			} else {
				attrs = append(attrs, slog.Any("body", string(body)))
			}
			r.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		sw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(logging.With(ctx, logger)))
		attrs = append(attrs, slog.Int("status", sw.Status()))

		logger.Info("Access Log", attrs...)
	})
}
