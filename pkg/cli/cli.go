package cli

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/cli/config"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	app := &cli.Command{
		Name:  "sentiq",
		Usage: "Sentiment alerting engine for driver feedback",
		Flags: joinFlags(loggerCfg.Flags(), sentryCfg.Flags()),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closeLog, err := loggerCfg.Configure()
			closers = append(closers, closeLog)
			if err != nil {
				return ctx, err
			}

			flush, err := sentryCfg.Configure()
			closers = append(closers, flush)
			if err != nil {
				return ctx, err
			}

			logging.Default().Debug("base options", "logger", loggerCfg, "sentry", sentryCfg)
			return logging.With(ctx, logging.Default()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdCheck(),
			cmdAlert(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
