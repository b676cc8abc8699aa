package user

import (
	"context"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
)

// WithUserID sets the authenticated user ID in context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// FromContext extracts the authenticated user ID from context
func FromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func EmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(emailKey).(string); ok {
		return email
	}
	return ""
}

// Actor returns the identity recorded on alert actions performed by the
// request owner. The email wins over the opaque user ID.
func Actor(ctx context.Context) string {
	if email := EmailFromContext(ctx); email != "" {
		return email
	}
	return FromContext(ctx)
}
