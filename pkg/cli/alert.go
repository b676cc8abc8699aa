package cli

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/service/notifier"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
	"github.com/urfave/cli/v3"
)

func cmdAlert() *cli.Command {
	return &cli.Command{
		Name:  "alert",
		Usage: "Inspect and manage alerts",
		Commands: []*cli.Command{
			cmdAlertList(),
			cmdAlertClear(),
		},
	}
}

func cmdAlertList() *cli.Command {
	var (
		engineCfg engineConfig
		severity  string
		status    string
		manager   string
	)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List remote and generated alerts, most urgent first",
		Flags: joinFlags(
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "severity",
					Usage:       "Severity filter [CRITICAL|HIGH|MEDIUM|LOW|ALL]",
					Value:       string(types.SeverityAll),
					Destination: &severity,
				},
				&cli.StringFlag{
					Name:        "status",
					Usage:       "Status filter [ACTIVE|ACKNOWLEDGED|ASSIGNED|RESOLVED|DISMISSED|ESCALATED|ALL]",
					Value:       string(types.AlertStatusActive),
					Destination: &status,
				},
				&cli.StringFlag{
					Name:        "manager",
					Aliases:     []string{"m"},
					Usage:       "Only alerts assigned to this manager",
					Destination: &manager,
				},
			},
			engineCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			filter, err := newFilter(severity, status)
			if err != nil {
				return err
			}

			uc, closer, err := engineCfg.configure(ctx, nil)
			defer closer()
			if err != nil {
				return err
			}

			var list *alert.List
			if manager != "" {
				list, err = uc.ListMyAlerts(ctx, types.ManagerID(manager), filter)
			} else {
				list, err = uc.ListAlerts(ctx, filter)
			}
			if err != nil {
				return err
			}

			notifier.PrintList(os.Stdout, clock.Now(ctx), list)
			return nil
		},
	}
}

func newFilter(severity, status string) (alert.Filter, error) {
	filter := alert.Filter{
		Severity: types.Severity(strings.ToUpper(severity)),
		Status:   types.AlertStatus(strings.ToUpper(status)),
	}
	if filter.Severity != "" && filter.Severity != types.SeverityAll {
		if err := filter.Severity.Validate(); err != nil {
			return filter, goerr.Wrap(err, "invalid --severity")
		}
	}
	if filter.Status != "" && filter.Status != types.AlertStatusAll {
		if err := filter.Status.Validate(); err != nil {
			return filter, goerr.Wrap(err, "invalid --status")
		}
	}
	return filter, nil
}

func cmdAlertClear() *cli.Command {
	var engineCfg engineConfig

	return &cli.Command{
		Name:  "clear",
		Usage: "Remove every locally generated alert",
		Flags: engineCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := engineCfg.configure(ctx, notifier.NewConsoleNotifier(os.Stdout))
			defer closer()
			if err != nil {
				return err
			}

			_, err = uc.ClearGeneratedAlerts(ctx)
			return err
		},
	}
}
