package interfaces

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

//go:generate go run github.com/matryer/moq@latest -pkg mock -out ../mock/repository.go . AlertRepository ConfigRepository

// AlertRepository stores the locally generated alert bucket.
type AlertRepository interface {
	// GetAlert returns an error tagged errs.TagNotFound when id is unknown.
	GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	PutAlert(ctx context.Context, a *alert.Alert) error
	ListAlerts(ctx context.Context) (alert.Alerts, error)
	// ClearAlerts removes every alert and returns how many were removed.
	ClearAlerts(ctx context.Context) (int, error)
}

type ConfigRepository interface {
	// GetConfig returns nil without error when nothing has been saved yet.
	GetConfig(ctx context.Context) (*config.Config, error)
	PutConfig(ctx context.Context, cfg config.Config) error
}

type Repository interface {
	AlertRepository
	ConfigRepository
}
