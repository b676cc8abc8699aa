package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/mock"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/repository"
	"github.com/secmon-lab/sentiq/pkg/usecase"
)

func newLocalAlert(t *testing.T, uc *usecase.UseCases, emaScore float64) *alert.Alert {
	t.Helper()
	created, err := uc.CheckAndTriggerAlerts(testContext(t), []driver.Snapshot{{DriverID: "1", EmaScore: score(emaScore)}})
	gt.NoError(t, err).Required()
	gt.A(t, created).Length(1).Required()
	return created[0]
}

func TestLocalActions(t *testing.T) {
	t.Run("acknowledge then resolve", func(t *testing.T) {
		ctx := testContext(t)
		repo := repository.NewMemory()
		rec := &recorder{}
		uc := usecase.New(usecase.WithRepository(repo), usecase.WithEventPublisher(rec))
		a := newLocalAlert(t, uc, -0.8)

		got, err := uc.AcknowledgeAlert(ctx, a.ID, "mgr-1")
		gt.NoError(t, err)
		gt.Equal(t, got.Status, types.AlertStatusAcknowledged)
		gt.Equal(t, got.AcknowledgedBy, types.ManagerID("mgr-1"))
		gt.Equal(t, *got.AcknowledgedAt, baseTime)

		got, err = uc.ResolveAlert(ctx, a.ID, "mgr-1", "spoke with driver")
		gt.NoError(t, err)
		gt.Equal(t, got.Status, types.AlertStatusResolved)

		stored, err := repo.GetAlert(ctx, a.ID)
		gt.NoError(t, err)
		gt.Equal(t, stored.Status, types.AlertStatusResolved)
		gt.Equal(t, stored.ResolutionNotes, "spoke with driver")

		events := rec.Events()
		updated, ok := events[len(events)-1].(*event.AlertUpdatedEvent)
		gt.True(t, ok)
		gt.Equal(t, updated.Action, alert.ActionResolve)
	})

	t.Run("validation comes before precondition", func(t *testing.T) {
		ctx := testContext(t)
		uc := usecase.New()
		a := newLocalAlert(t, uc, -0.8)

		_, err := uc.DismissAlert(ctx, a.ID, "mgr-1", "false alarm")
		gt.NoError(t, err)

		// Terminal alert and missing reason: validation wins
		_, err = uc.DismissAlert(ctx, a.ID, "mgr-1", "")
		gt.True(t, errs.IsValidation(err))

		_, err = uc.DismissAlert(ctx, a.ID, "mgr-1", "again")
		gt.True(t, errs.IsInvalidTransition(err))
	})

	t.Run("escalate high alert", func(t *testing.T) {
		ctx := testContext(t)
		uc := usecase.New()
		a := newLocalAlert(t, uc, -0.4)

		got, err := uc.EscalateAlert(ctx, a.ID, "repeated complaints")
		gt.NoError(t, err)
		gt.Equal(t, got.Severity, types.SeverityCritical)
		gt.Equal(t, got.Status, types.AlertStatusEscalated)
		gt.True(t, strings.HasPrefix(got.Message, "ESCALATED: "))

		_, err = uc.AssignAlert(ctx, a.ID, "mgr-2")
		gt.True(t, errs.IsInvalidTransition(err))
	})

	t.Run("unknown alert without backend", func(t *testing.T) {
		_, err := usecase.New().AcknowledgeAlert(testContext(t), "123", "mgr-1")
		gt.True(t, errs.IsNotFound(err))
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := usecase.New().AcknowledgeAlert(testContext(t), "", "mgr-1")
		gt.True(t, errs.IsValidation(err))
	})
}

func TestRemoteActions(t *testing.T) {
	t.Run("forwards valid transition", func(t *testing.T) {
		ctx := testContext(t)
		current := remoteAlert("77", "5", types.SeverityHigh, types.AlertStatusActive, baseTime)
		remote := &mock.RemoteAlertStoreMock{
			GetAlertFunc: func(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
				return current.Copy(), nil
			},
			ApplyActionFunc: func(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error) {
				a := current.Copy()
				a.Status = types.AlertStatusAssigned
				a.AssignedTo = input.Manager
				return a, nil
			},
		}
		uc := usecase.New(usecase.WithRemoteAlerts(remote))

		got, err := uc.AssignAlert(ctx, "77", "42")
		gt.NoError(t, err)
		gt.Equal(t, got.Status, types.AlertStatusAssigned)
		gt.Equal(t, got.Origin, types.OriginRemote)
		gt.A(t, remote.ApplyActionCalls()).Length(1).Required()
		gt.Equal(t, remote.ApplyActionCalls()[0].Action, alert.ActionAssign)
	})

	t.Run("invalid transition never reaches backend", func(t *testing.T) {
		ctx := testContext(t)
		current := remoteAlert("78", "5", types.SeverityHigh, types.AlertStatusResolved, baseTime)
		remote := &mock.RemoteAlertStoreMock{
			GetAlertFunc: func(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
				return current.Copy(), nil
			},
		}
		uc := usecase.New(usecase.WithRemoteAlerts(remote))

		_, err := uc.AcknowledgeAlert(ctx, "78", "mgr-1")
		gt.True(t, errs.IsInvalidTransition(err))
		gt.A(t, remote.ApplyActionCalls()).Length(0)
	})

	t.Run("backend outage is upstream", func(t *testing.T) {
		remote := &mock.RemoteAlertStoreMock{
			GetAlertFunc: func(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
				return nil, goerr.New("connection refused", goerr.T(errs.TagUpstream))
			},
		}
		uc := usecase.New(usecase.WithRemoteAlerts(remote))

		_, err := uc.EscalateAlert(testContext(t), "79", "urgent")
		gt.True(t, errs.IsUpstream(err))
	})

	t.Run("empty backend response falls back to local result", func(t *testing.T) {
		current := remoteAlert("80", "5", types.SeverityCritical, types.AlertStatusActive, baseTime)
		remote := &mock.RemoteAlertStoreMock{
			GetAlertFunc: func(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
				return current.Copy(), nil
			},
			ApplyActionFunc: func(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error) {
				return nil, nil
			},
		}
		uc := usecase.New(usecase.WithRemoteAlerts(remote))

		got, err := uc.AcknowledgeAlert(testContext(t), "80", "mgr-1")
		gt.NoError(t, err)
		gt.Equal(t, got.Status, types.AlertStatusAcknowledged)
		gt.Equal(t, got.AcknowledgedBy, types.ManagerID("mgr-1"))
	})
}
