package usecase

import (
	"context"
	"sync/atomic"

	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/repository"
)

type UseCases struct {
	// services and adapters
	repository   interfaces.Repository
	scores       interfaces.ScoreProvider
	remoteAlerts interfaces.RemoteAlertStore
	remoteConfig interfaces.RemoteConfigStore
	publisher    interfaces.EventPublisher

	// configs
	defaultConfig config.Config

	// set while a monitoring pass runs
	passing atomic.Bool
}

var _ interfaces.AlertUsecases = &UseCases{}
var _ interfaces.ConfigUsecases = &UseCases{}

type Option func(*UseCases)

func WithRepository(repository interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repository = repository
	}
}

// WithScoreProvider sets the source of driver snapshots used by
// RunMonitoringPass.
func WithScoreProvider(scores interfaces.ScoreProvider) Option {
	return func(u *UseCases) {
		u.scores = scores
	}
}

// WithRemoteAlerts enables the backend alert store. Without it only locally
// generated alerts are visible.
func WithRemoteAlerts(store interfaces.RemoteAlertStore) Option {
	return func(u *UseCases) {
		u.remoteAlerts = store
	}
}

func WithRemoteConfig(store interfaces.RemoteConfigStore) Option {
	return func(u *UseCases) {
		u.remoteConfig = store
	}
}

func WithEventPublisher(publisher interfaces.EventPublisher) Option {
	return func(u *UseCases) {
		u.publisher = publisher
	}
}

// WithDefaultConfig replaces the built-in defaults, e.g. with a seed file.
// ResetConfig restores this configuration.
func WithDefaultConfig(cfg config.Config) Option {
	return func(u *UseCases) {
		u.defaultConfig = cfg
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		repository:    repository.NewMemory(),
		publisher:     NewDiscardPublisher(),
		defaultConfig: config.Default(),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

func (u *UseCases) publish(ctx context.Context, ev event.AlertEvent) {
	u.publisher.Publish(ctx, ev)
}

type discardPublisher struct{}

// NewDiscardPublisher returns a publisher that drops every event.
func NewDiscardPublisher() interfaces.EventPublisher {
	return &discardPublisher{}
}

func (p *discardPublisher) Publish(ctx context.Context, ev event.AlertEvent) {}
