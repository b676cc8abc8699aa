package request_id

import (
	"context"

	"github.com/google/uuid"
)

// Header carries a caller supplied request ID, e.g. from a load balancer.
const Header = "X-Request-Id"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
)

func With(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func FromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// Ensure stores requestID in ctx, generating a new ID when it is empty.
func Ensure(ctx context.Context, requestID string) (context.Context, string) {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return With(ctx, requestID), requestID
}
