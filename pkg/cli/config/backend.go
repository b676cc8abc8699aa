package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/sentiq/pkg/adapter/backend"
	"github.com/urfave/cli/v3"
)

type Backend struct {
	url     string
	token   string
	timeout time.Duration
}

func (x *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the sentiment backend API (e.g. http://localhost:8080/api)",
			Category:    "Backend",
			Sources:     cli.EnvVars("SENTIQ_BACKEND_URL"),
			Destination: &x.url,
		},
		&cli.StringFlag{
			Name:        "backend-token",
			Usage:       "Bearer token for the sentiment backend",
			Category:    "Backend",
			Sources:     cli.EnvVars("SENTIQ_BACKEND_TOKEN"),
			Destination: &x.token,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of a single backend request",
			Category:    "Backend",
			Sources:     cli.EnvVars("SENTIQ_BACKEND_TIMEOUT"),
			Value:       backend.DefaultTimeout,
			Destination: &x.timeout,
		},
	}
}

func (x Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.Bool("token", x.token != ""),
		slog.Duration("timeout", x.timeout),
	)
}

func (x *Backend) IsConfigured() bool {
	return x.url != ""
}

// Configure returns the backend client, or nil when no URL is set.
func (x *Backend) Configure() (*backend.Client, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	opts := []backend.Option{backend.WithTimeout(x.timeout)}
	if x.token != "" {
		opts = append(opts, backend.WithToken(x.token))
	}
	return backend.New(x.url, opts...)
}
