package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

// ConsoleNotifier prints alert events to a terminal with color formatting.
// Useful for CLI mode and debugging.
type ConsoleNotifier struct {
	w io.Writer
}

var _ interfaces.EventPublisher = &ConsoleNotifier{}

// NewConsoleNotifier creates a console notifier writing to w, or stdout when
// w is nil.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Publish(ctx context.Context, ev event.AlertEvent) {
	switch e := ev.(type) {
	case *event.AlertCreatedEvent:
		green := color.New(color.FgGreen, color.Bold)
		_, _ = green.Fprint(n.w, "Alert created: ")
		printAlertLine(n.w, clock.Now(ctx), e.Alert)

	case *event.AlertUpdatedEvent:
		blue := color.New(color.FgBlue, color.Bold)
		_, _ = blue.Fprintf(n.w, "Alert %s: ", e.Action)
		printAlertLine(n.w, clock.Now(ctx), e.Alert)

	case *event.AlertsClearedEvent:
		yellow := color.New(color.FgYellow, color.Bold)
		_, _ = yellow.Fprintf(n.w, "Cleared %d generated alert(s)\n", e.Count)
	}
}

func severityColor(severity types.Severity) *color.Color {
	switch severity {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case types.SeverityHigh:
		return color.New(color.FgYellow, color.Bold)
	case types.SeverityMedium:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

func printAlertLine(w io.Writer, now time.Time, a *alert.Alert) {
	if a == nil {
		return
	}
	gray := color.New(color.FgHiBlack)

	_, _ = severityColor(a.Severity).Fprintf(w, "%-8s ", a.Severity)
	_, _ = fmt.Fprintf(w, "%-9s %-12s driver=%s", a.Status.OrDefault(), a.Origin, a.DriverID)
	if a.DriverName != "" {
		_, _ = fmt.Fprintf(w, " (%s)", a.DriverName)
	}
	_, _ = fmt.Fprintf(w, " score=%.2f ", a.CurrentEmaScore)
	_, _ = gray.Fprintf(w, "%s %s\n", a.ID, humanize.RelTime(a.CreatedAt, now, "ago", "from now"))
	if a.Message != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", a.Message)
	}
}

// PrintList writes a sorted alert list followed by its statistics.
func PrintList(w io.Writer, now time.Time, list *alert.List) {
	cyan := color.New(color.FgCyan, color.Bold)

	if len(list.Alerts) == 0 {
		_, _ = fmt.Fprintln(w, "No alerts")
	}
	for _, a := range list.Alerts {
		printAlertLine(w, now, a)
	}

	s := list.Stats
	_, _ = cyan.Fprintln(w, "\nStatistics:")
	_, _ = fmt.Fprintf(w, "  Total: %s (remote %d, local %d)\n", humanize.Comma(int64(s.Total)), s.BySource.Remote, s.BySource.Local)
	_, _ = fmt.Fprintf(w, "  Critical: %d  High: %d  Medium: %d  Low: %d\n", s.Critical, s.High, s.Medium, s.Low)
	_, _ = fmt.Fprintf(w, "  Active: %d  Unacknowledged: %d  Unassigned: %d  Overdue: %d\n", s.Active, s.Unacknowledged, s.Unassigned, s.Overdue)
}
