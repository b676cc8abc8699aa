package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/mock"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testContext(t *testing.T) context.Context {
	return clock.With(t.Context(), func() time.Time { return baseTime })
}

func score(v float64) *float64 {
	return &v
}

type recorder struct {
	mu     sync.Mutex
	events []event.AlertEvent
}

func (r *recorder) Publish(ctx context.Context, ev event.AlertEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Events() []event.AlertEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.AlertEvent{}, r.events...)
}

func remoteAlert(id string, driverID types.DriverID, severity types.Severity, status types.AlertStatus, createdAt time.Time) *alert.Alert {
	return &alert.Alert{
		ID:        types.AlertID(id),
		Origin:    types.OriginRemote,
		DriverID:  driverID,
		Severity:  severity,
		Status:    status,
		AlertType: types.AlertTypeLowSentimentScore,
		Message:   "remote alert",
		CreatedAt: createdAt,
	}
}

func newRemoteStore(alerts ...*alert.Alert) *mock.RemoteAlertStoreMock {
	return &mock.RemoteAlertStoreMock{
		ListActiveAlertsFunc: func(ctx context.Context) (alert.Alerts, error) {
			var out alert.Alerts
			for _, a := range alerts {
				out = append(out, a.Copy())
			}
			return out, nil
		},
	}
}
