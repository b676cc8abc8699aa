package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// sentryFlushTimeout bounds how long shutdown waits for queued events.
const sentryFlushTimeout = 2 * time.Second

type Sentry struct {
	dsn     string
	env     string
	release string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN",
			Category:    "Sentry",
			Sources:     cli.EnvVars("SENTIQ_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Sources:     cli.EnvVars("SENTIQ_SENTRY_ENV"),
			Destination: &x.env,
		},
		&cli.StringFlag{
			Name:        "sentry-release",
			Usage:       "Release name reported with Sentry events",
			Category:    "Sentry",
			Sources:     cli.EnvVars("SENTIQ_SENTRY_RELEASE"),
			Destination: &x.release,
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.dsn != ""),
		slog.String("env", x.env),
		slog.String("release", x.release),
	)
}

// Configure initializes the Sentry client and returns a function flushing
// pending events. The flush function is a no-op when Sentry is disabled.
func (x *Sentry) Configure() (func(), error) {
	if x.dsn == "" {
		logging.Default().Warn("Sentry is not configured")
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     x.release,
	}); err != nil {
		return func() {}, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}, nil
}
