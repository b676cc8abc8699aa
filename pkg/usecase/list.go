package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/service/aggregate"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type remoteListFunc func(ctx context.Context) (alert.Alerts, error)

func (u *UseCases) listRemoteActive(ctx context.Context) (alert.Alerts, error) {
	return u.remoteAlerts.ListActiveAlerts(ctx)
}

// alertSources holds both origins of one read. remoteErr is set when the
// backend could not be read; remote is empty in that case.
type alertSources struct {
	remote    alert.Alerts
	local     alert.Alerts
	remoteErr error
}

// fetchAlerts reads the remote and local alerts in parallel. A remote
// failure is counted and kept in remoteErr, a local failure is returned.
func (u *UseCases) fetchAlerts(ctx context.Context, operation string, listRemote remoteListFunc) (*alertSources, error) {
	var src alertSources

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		alerts, err := u.repository.ListAlerts(egCtx)
		if err != nil {
			return goerr.Wrap(err, "failed to list local alerts")
		}
		src.local = alerts
		return nil
	})

	if u.remoteAlerts != nil {
		eg.Go(func() error {
			alerts, err := listRemote(egCtx)
			if err != nil {
				metrics.ObserveUpstreamError(operation)
				src.remoteErr = goerr.Wrap(err, "failed to list remote alerts", goerr.V("operation", operation))
				return nil
			}
			for _, a := range alerts {
				a.Origin = types.OriginRemote
			}
			src.remote = alerts
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &src, nil
}

// readable returns the sources for display. Remote outages degrade to the
// local alerts only.
func (x *alertSources) readable(ctx context.Context) (alert.Alerts, alert.Alerts) {
	if x.remoteErr != nil {
		logging.From(ctx).Warn("remote alerts unavailable, showing local alerts only", "error", x.remoteErr)
	}
	return x.remote, x.local
}

// ListAlerts returns the merged and sorted alerts matching filter, along
// with statistics over both stores.
func (u *UseCases) ListAlerts(ctx context.Context, filter alert.Filter) (*alert.List, error) {
	src, err := u.fetchAlerts(ctx, "list_active_alerts", u.listRemoteActive)
	if err != nil {
		return nil, err
	}
	remote, local := src.readable(ctx)
	return aggregate.Build(clock.Now(ctx), remote, local, filter), nil
}

// ListMyAlerts behaves like ListAlerts restricted to alerts assigned to
// manager.
func (u *UseCases) ListMyAlerts(ctx context.Context, manager types.ManagerID, filter alert.Filter) (*alert.List, error) {
	if manager == "" {
		return nil, goerr.New("managerId is required",
			goerr.TV(errs.FieldKey, "managerId"),
			goerr.T(errs.TagValidation),
		)
	}

	src, err := u.fetchAlerts(ctx, "list_my_alerts", func(ctx context.Context) (alert.Alerts, error) {
		return u.remoteAlerts.ListMyAlerts(ctx, manager)
	})
	if err != nil {
		return nil, err
	}
	remote, local := src.readable(ctx)

	mine := make(alert.Alerts, 0, len(local))
	for _, a := range local {
		if a.AssignedTo == manager {
			mine = append(mine, a)
		}
	}

	return aggregate.Build(clock.Now(ctx), remote, mine, filter), nil
}
