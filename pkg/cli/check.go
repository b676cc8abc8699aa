package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/service/notifier"
	"github.com/secmon-lab/sentiq/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var (
		engineCfg engineConfig
		inputFile string
	)

	return &cli.Command{
		Name:  "check",
		Usage: "Run one monitoring pass and print the created alerts",
		Flags: joinFlags(
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "input",
					Aliases:     []string{"i"},
					Usage:       "JSON file of driver snapshots ('-' for stdin) used instead of the backend scores",
					Destination: &inputFile,
				},
			},
			engineCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runCheck(ctx, &engineCfg, inputFile)
		},
	}
}

func runCheck(ctx context.Context, engineCfg *engineConfig, inputFile string) error {
	if inputFile == "" && !engineCfg.hasScoreProvider() {
		return goerr.New("either --input or --backend-url is required")
	}

	uc, closer, err := engineCfg.configure(ctx, notifier.NewConsoleNotifier(os.Stdout))
	defer closer()
	if err != nil {
		return err
	}

	var created alert.Alerts
	if inputFile != "" {
		snapshots, err := readSnapshots(inputFile)
		if err != nil {
			return err
		}
		created, err = uc.CheckAndTriggerAlerts(ctx, snapshots)
		if err != nil {
			return err
		}
	} else {
		created, err = uc.RunMonitoringPass(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Printf("%d alert(s) created\n", len(created))
	return nil
}

// readSnapshots accepts either a JSON array of snapshots or the body of a
// check request, {"snapshots": [...]}.
func readSnapshots(inputFile string) ([]driver.Snapshot, error) {
	var reader io.Reader = os.Stdin
	if inputFile != "-" {
		// #nosec G304 -- the path is given by the operator
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", inputFile))
		}
		defer safe.Close(context.Background(), f)
		reader = f
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input", goerr.V("path", inputFile))
	}

	var snapshots []driver.Snapshot
	if err := json.Unmarshal(raw, &snapshots); err == nil {
		return snapshots, nil
	}

	var req struct {
		Snapshots []driver.Snapshot `json:"snapshots"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, goerr.Wrap(err, "failed to parse driver snapshots", goerr.V("path", inputFile))
	}
	return req.Snapshots, nil
}
