package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

func (u *UseCases) AcknowledgeAlert(ctx context.Context, id types.AlertID, actor types.ManagerID) (*alert.Alert, error) {
	return u.applyAction(ctx, id, alert.ActionAcknowledge, alert.Input{Actor: actor})
}

func (u *UseCases) AssignAlert(ctx context.Context, id types.AlertID, manager types.ManagerID) (*alert.Alert, error) {
	return u.applyAction(ctx, id, alert.ActionAssign, alert.Input{Manager: manager})
}

func (u *UseCases) ResolveAlert(ctx context.Context, id types.AlertID, actor types.ManagerID, notes string) (*alert.Alert, error) {
	return u.applyAction(ctx, id, alert.ActionResolve, alert.Input{Actor: actor, Notes: notes})
}

func (u *UseCases) DismissAlert(ctx context.Context, id types.AlertID, actor types.ManagerID, reason string) (*alert.Alert, error) {
	return u.applyAction(ctx, id, alert.ActionDismiss, alert.Input{Actor: actor, Notes: reason})
}

func (u *UseCases) EscalateAlert(ctx context.Context, id types.AlertID, reason string) (*alert.Alert, error) {
	return u.applyAction(ctx, id, alert.ActionEscalate, alert.Input{Notes: reason})
}

// applyAction routes the action to the store owning id. Local alerts are
// looked up first; an id unknown locally is treated as a backend alert.
func (u *UseCases) applyAction(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid alert ID", goerr.T(errs.TagValidation))
	}
	if err := input.Validate(action); err != nil {
		return nil, err
	}

	local, err := u.repository.GetAlert(ctx, id)
	switch {
	case err == nil:
		updated, err := u.applyLocal(ctx, local, action, input)
		metrics.ObserveTransition(action.String(), types.OriginLocal.String(), err)
		return updated, err

	case errs.IsNotFound(err):
		updated, err := u.applyRemote(ctx, id, action, input)
		metrics.ObserveTransition(action.String(), types.OriginRemote.String(), err)
		return updated, err

	default:
		return nil, goerr.Wrap(err, "failed to get alert", goerr.TV(errs.AlertIDKey, id.String()))
	}
}

func (u *UseCases) applyLocal(ctx context.Context, a *alert.Alert, action alert.Action, input alert.Input) (*alert.Alert, error) {
	if err := a.Apply(ctx, action, input); err != nil {
		return nil, err
	}
	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to save alert",
			goerr.TV(errs.AlertIDKey, a.ID.String()),
			goerr.TV(errs.ActionKey, action.String()),
		)
	}

	logging.From(ctx).Info("alert updated",
		"alert_id", a.ID,
		"action", action,
		"status", a.Status,
		"origin", a.Origin,
	)
	u.publish(ctx, &event.AlertUpdatedEvent{Action: action, Alert: a})
	return a, nil
}

// applyRemote checks the transition against the current backend record
// before forwarding it, so invalid transitions never reach the backend.
func (u *UseCases) applyRemote(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error) {
	if u.remoteAlerts == nil {
		return nil, goerr.New("alert not found",
			goerr.TV(errs.AlertIDKey, id.String()),
			goerr.T(errs.TagNotFound),
		)
	}

	current, err := u.remoteAlerts.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := current.Copy()
	expected.Origin = types.OriginRemote
	if err := expected.Apply(ctx, action, input); err != nil {
		return nil, err
	}

	updated, err := u.remoteAlerts.ApplyAction(ctx, id, action, input)
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.ID == types.EmptyAlertID {
		updated = expected
	}
	updated.Origin = types.OriginRemote

	logging.From(ctx).Info("remote alert updated",
		"alert_id", id,
		"action", action,
		"status", updated.Status,
	)
	u.publish(ctx, &event.AlertUpdatedEvent{Action: action, Alert: updated})
	return updated, nil
}
