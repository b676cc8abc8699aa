package notifier_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/service/notifier"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newAlert() *alert.Alert {
	return &alert.Alert{
		ID:              "alert-1740823200000-abc123def",
		Origin:          types.OriginLocal,
		DriverID:        "42",
		DriverName:      "Jane Doe",
		Severity:        types.SeverityCritical,
		Status:          types.AlertStatusActive,
		Message:         "Critical sentiment score detected",
		CurrentEmaScore: -0.75,
		CreatedAt:       now.Add(-2 * time.Hour),
	}
}

func TestConsoleNotifier(t *testing.T) {
	color.NoColor = true
	ctx := clock.With(t.Context(), func() time.Time { return now })

	var buf bytes.Buffer
	n := notifier.NewConsoleNotifier(&buf)

	n.Publish(ctx, &event.AlertCreatedEvent{Alert: newAlert()})
	n.Publish(ctx, &event.AlertUpdatedEvent{Action: alert.ActionAcknowledge, Alert: newAlert()})
	n.Publish(ctx, &event.AlertsClearedEvent{Count: 3})

	out := buf.String()
	gt.S(t, out).Contains("Alert created: CRITICAL")
	gt.S(t, out).Contains("driver=42 (Jane Doe)")
	gt.S(t, out).Contains("score=-0.75")
	gt.S(t, out).Contains("2 hours ago")
	gt.S(t, out).Contains("Alert acknowledge:")
	gt.S(t, out).Contains("Cleared 3 generated alert(s)")
}

func TestPrintList(t *testing.T) {
	color.NoColor = true

	t.Run("with alerts", func(t *testing.T) {
		var buf bytes.Buffer
		notifier.PrintList(&buf, now, &alert.List{
			Alerts: alert.Alerts{newAlert()},
			Stats:  alert.Stats{Total: 1, Critical: 1, Active: 1, BySource: alert.SourceCounts{Local: 1}},
		})

		out := buf.String()
		gt.S(t, out).Contains("alert-1740823200000-abc123def")
		gt.S(t, out).Contains("Total: 1 (remote 0, local 1)")
		gt.S(t, out).Contains("Critical: 1")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		notifier.PrintList(&buf, now, &alert.List{})
		gt.S(t, buf.String()).Contains("No alerts")
	})
}
