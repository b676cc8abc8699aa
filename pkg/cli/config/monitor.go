package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/service/monitor"
	"github.com/urfave/cli/v3"
)

type Monitor struct {
	disabled bool
	interval time.Duration
}

func (x *Monitor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-monitor",
			Usage:       "Disable the periodic monitoring pass",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SENTIQ_NO_MONITOR"),
			Destination: &x.disabled,
		},
		&cli.DurationFlag{
			Name:        "monitor-interval",
			Usage:       "Interval between monitoring passes",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SENTIQ_MONITOR_INTERVAL"),
			Value:       monitor.DefaultInterval,
			Destination: &x.interval,
		},
	}
}

func (x Monitor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", !x.disabled),
		slog.Duration("interval", x.interval),
	)
}

func (x *Monitor) Enabled() bool {
	return !x.disabled
}

// Configure builds a monitor running pass on the configured interval.
func (x *Monitor) Configure(pass monitor.PassFunc, opts ...monitor.Option) (*monitor.Monitor, error) {
	if x.interval <= 0 {
		return nil, goerr.New("monitor interval must be positive", goerr.V("interval", x.interval))
	}
	opts = append([]monitor.Option{monitor.WithInterval(x.interval)}, opts...)
	return monitor.New(pass, opts...), nil
}
