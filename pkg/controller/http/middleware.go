package http

import (
	"fmt"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/user"
)

const (
	// DefaultIAPJWKURL serves the public keys signing IAP assertions
	DefaultIAPJWKURL = "https://www.gstatic.com/iap/verify/public_key-jwk"

	iapIssuer    = "https://cloud.google.com/iap"
	iapJWTHeader = "x-goog-iap-jwt-assertion"
)

// validateGoogleIAPTokenWithJWKURL validates the Google IAP JWT and, when it
// is valid, records the verified subject and email as the request actor.
// Requests with a missing or invalid assertion are passed through unchanged.
func validateGoogleIAPTokenWithJWKURL(next http.Handler, jwkURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertion := r.Header.Get(iapJWTHeader)
		if assertion == "" {
			next.ServeHTTP(w, r)
			return
		}

		logger := logging.From(r.Context())

		keySet, err := jwk.Fetch(r.Context(), jwkURL)
		if err != nil {
			logger.Warn("failed to fetch IAP public keys, continuing without validation", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.Parse([]byte(assertion), jwt.WithKeySet(keySet), jwt.WithValidate(true))
		if err != nil {
			logger.Warn("invalid IAP JWT token, continuing without validation", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if token.Issuer() != iapIssuer {
			logger.Warn("invalid JWT issuer, continuing without validation", "issuer", token.Issuer())
			next.ServeHTTP(w, r)
			return
		}

		now := time.Now()
		if token.Expiration().Before(now) {
			logger.Warn("JWT token expired, continuing without validation", "expiration", token.Expiration(), "now", now)
			next.ServeHTTP(w, r)
			return
		}
		if token.IssuedAt().After(now) {
			logger.Warn("JWT token used before issued, continuing without validation", "issued_at", token.IssuedAt(), "now", now)
			next.ServeHTTP(w, r)
			return
		}
		if len(token.Audience()) == 0 {
			logger.Warn("JWT missing audience, continuing without validation")
			next.ServeHTTP(w, r)
			return
		}

		var email string
		if v, ok := token.Get("email"); ok {
			email, _ = v.(string)
		}

		logger.Debug("IAP JWT validated", "sub", token.Subject(), "email", email)

		ctx := user.WithUserID(r.Context(), token.Subject())
		if email != "" {
			ctx = user.WithEmail(ctx, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// metricsMiddleware records request counts and latency per chi route pattern
// so that alert ids do not explode label cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.ObserveHTTPRequest(r.Method, route, sw.Status(), time.Since(start))
	})
}

// getDetailedStackTrace returns a detailed stack trace with function names and line numbers
func getDetailedStackTrace() string {
	var buf strings.Builder
	buf.WriteString("Detailed Stack Trace:\n")

	// Skip the frames of the recovery code itself
	callers := make([]uintptr, 64)
	n := runtime.Callers(3, callers)
	frames := runtime.CallersFrames(callers[:n])

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&buf, "  %s\n    %s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return buf.String()
}

func panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				panicErr := goerr.New("panic recovered",
					goerr.V("panic", fmt.Sprintf("%v", err)),
					goerr.V("debug_stack", string(debug.Stack())),
					goerr.V("detailed_stack", getDetailedStackTrace()),
					goerr.V("method", r.Method),
					goerr.V("path", r.URL.Path),
				)

				handleError(w, r, panicErr)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
