package interfaces

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/domain/event"
)

//go:generate go run github.com/matryer/moq@latest -pkg mock -out ../mock/notifier.go . EventPublisher

// EventPublisher fans alert changes out to live consumers. Publish must not
// block on slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.AlertEvent)
}
