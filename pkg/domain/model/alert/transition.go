package alert

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

// Action names a lifecycle operation on an alert.
type Action string

const (
	ActionAcknowledge Action = "acknowledge"
	ActionAssign      Action = "assign"
	ActionResolve     Action = "resolve"
	ActionDismiss     Action = "dismiss"
	ActionEscalate    Action = "escalate"
)

func (x Action) String() string {
	return string(x)
}

// Every transition validates its input first, then the precondition, and
// mutates the alert only when both pass.

func (x *Alert) Acknowledge(ctx context.Context, actor types.ManagerID) error {
	if err := require(ActionAcknowledge, "acknowledgedBy", string(actor)); err != nil {
		return err
	}
	if x.Status.OrDefault() != types.AlertStatusActive {
		return x.invalidTransition(ActionAcknowledge)
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusAcknowledged
	x.AcknowledgedBy = actor
	x.AcknowledgedAt = &now
	return nil
}

func (x *Alert) Assign(ctx context.Context, manager types.ManagerID) error {
	if err := require(ActionAssign, "managerId", string(manager)); err != nil {
		return err
	}
	switch x.Status.OrDefault() {
	case types.AlertStatusActive, types.AlertStatusAcknowledged:
	default:
		return x.invalidTransition(ActionAssign)
	}

	x.Status = types.AlertStatusAssigned
	x.AssignedTo = manager
	return nil
}

func (x *Alert) Resolve(ctx context.Context, actor types.ManagerID, notes string) error {
	if err := require(ActionResolve, "resolutionNotes", notes); err != nil {
		return err
	}
	if x.Status.OrDefault().IsTerminal() {
		return x.invalidTransition(ActionResolve)
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusResolved
	x.ResolvedBy = actor
	x.ResolvedAt = &now
	x.ResolutionNotes = notes
	return nil
}

func (x *Alert) Dismiss(ctx context.Context, actor types.ManagerID, reason string) error {
	if err := require(ActionDismiss, "reason", reason); err != nil {
		return err
	}
	if x.Status.OrDefault().IsTerminal() {
		return x.invalidTransition(ActionDismiss)
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusDismissed
	x.ResolvedBy = actor
	x.ResolvedAt = &now
	x.ResolutionNotes = reason
	return nil
}

// Escalate raises an ACTIVE non-critical alert to CRITICAL.
func (x *Alert) Escalate(ctx context.Context, reason string) error {
	if err := require(ActionEscalate, "reason", reason); err != nil {
		return err
	}
	if x.Status.OrDefault() != types.AlertStatusActive || x.Severity == types.SeverityCritical {
		return x.invalidTransition(ActionEscalate)
	}

	x.Status = types.AlertStatusEscalated
	x.Severity = types.SeverityCritical
	x.RecommendedAction = types.RecommendedActionFor(types.SeverityCritical)
	x.ResolutionNotes = reason
	if !strings.HasPrefix(x.Message, escalatedPrefix) {
		x.Message = escalatedPrefix + x.Message
	}
	return nil
}

const escalatedPrefix = "ESCALATED: "

// Apply runs the named action with the given input. It is the single entry
// point used by stores that replay an action against their own copy.
func (x *Alert) Apply(ctx context.Context, action Action, input Input) error {
	switch action {
	case ActionAcknowledge:
		return x.Acknowledge(ctx, input.Actor)
	case ActionAssign:
		return x.Assign(ctx, input.Manager)
	case ActionResolve:
		return x.Resolve(ctx, input.Actor, input.Notes)
	case ActionDismiss:
		return x.Dismiss(ctx, input.Actor, input.Notes)
	case ActionEscalate:
		return x.Escalate(ctx, input.Notes)
	}
	return goerr.New("unknown alert action", goerr.TV(errs.ActionKey, string(action)), goerr.T(errs.TagValidation))
}

// Input carries the operator supplied data of a lifecycle action. Notes is
// the resolution notes for resolve and the reason for dismiss and escalate.
type Input struct {
	Actor   types.ManagerID
	Manager types.ManagerID
	Notes   string
}

// Validate checks the fields action needs without looking at any alert.
func (x Input) Validate(action Action) error {
	switch action {
	case ActionAcknowledge:
		return require(action, "acknowledgedBy", string(x.Actor))
	case ActionAssign:
		return require(action, "managerId", string(x.Manager))
	case ActionResolve:
		return require(action, "resolutionNotes", x.Notes)
	case ActionDismiss, ActionEscalate:
		return require(action, "reason", x.Notes)
	}
	return goerr.New("unknown alert action", goerr.TV(errs.ActionKey, string(action)), goerr.T(errs.TagValidation))
}

func require(action Action, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return goerr.New(field+" is required",
			goerr.TV(errs.ActionKey, action.String()),
			goerr.TV(errs.FieldKey, field),
			goerr.T(errs.TagValidation),
		)
	}
	return nil
}

func (x *Alert) invalidTransition(action Action) error {
	return goerr.New("alert status does not allow "+action.String(),
		goerr.TV(errs.AlertIDKey, x.ID.String()),
		goerr.TV(errs.ActionKey, action.String()),
		goerr.TV(errs.StatusKey, x.Status.OrDefault().String()),
		goerr.TV(errs.SeverityKey, x.Severity.String()),
		goerr.T(errs.TagInvalidTransition),
	)
}
