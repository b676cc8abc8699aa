package interfaces

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

//go:generate go run github.com/matryer/moq@latest -pkg mock -out ../mock/clients.go . ScoreProvider RemoteAlertStore RemoteConfigStore

// ScoreProvider supplies the current EMA score of every driver.
type ScoreProvider interface {
	ListDriverSnapshots(ctx context.Context) ([]driver.Snapshot, error)
}

// RemoteAlertStore is the backend owning server-issued alerts. Errors caused
// by an unreachable backend are tagged errs.TagUpstream.
type RemoteAlertStore interface {
	ListActiveAlerts(ctx context.Context) (alert.Alerts, error)
	ListMyAlerts(ctx context.Context, manager types.ManagerID) (alert.Alerts, error)
	GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	ApplyAction(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error)
}

type RemoteConfigStore interface {
	GetConfig(ctx context.Context) (*config.Config, error)
	PutConfig(ctx context.Context, cfg config.Config) (*config.Config, error)
}
