package interfaces

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

type AlertUsecases interface {
	CheckAndTriggerAlerts(ctx context.Context, snapshots []driver.Snapshot) (alert.Alerts, error)
	RunMonitoringPass(ctx context.Context) (alert.Alerts, error)

	ListAlerts(ctx context.Context, filter alert.Filter) (*alert.List, error)
	ListMyAlerts(ctx context.Context, manager types.ManagerID, filter alert.Filter) (*alert.List, error)

	AcknowledgeAlert(ctx context.Context, id types.AlertID, actor types.ManagerID) (*alert.Alert, error)
	AssignAlert(ctx context.Context, id types.AlertID, manager types.ManagerID) (*alert.Alert, error)
	ResolveAlert(ctx context.Context, id types.AlertID, actor types.ManagerID, notes string) (*alert.Alert, error)
	DismissAlert(ctx context.Context, id types.AlertID, actor types.ManagerID, reason string) (*alert.Alert, error)
	EscalateAlert(ctx context.Context, id types.AlertID, reason string) (*alert.Alert, error)

	ClearGeneratedAlerts(ctx context.Context) (int, error)
}

type ConfigUsecases interface {
	GetConfig(ctx context.Context) (*config.Config, error)
	SaveConfig(ctx context.Context, cfg config.Config) (*config.Config, error)
	ResetConfig(ctx context.Context) (*config.Config, error)
}
