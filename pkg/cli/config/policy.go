package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	model "github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Policy seeds the alerting configuration from a YAML file. Keys absent in
// the file keep their default values.
type Policy struct {
	filePath string
}

func (x *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config-file",
			Aliases:     []string{"c"},
			Usage:       "YAML file overriding the default alerting configuration",
			Category:    "Policy",
			Sources:     cli.EnvVars("SENTIQ_CONFIG_FILE"),
			Destination: &x.filePath,
		},
	}
}

func (x Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file_path", x.filePath),
	)
}

// Configure returns the default configuration merged with the seed file.
func (x *Policy) Configure() (model.Config, error) {
	cfg := model.Default()
	if x.filePath == "" {
		return cfg, nil
	}

	// #nosec G304 -- the path is given by the operator
	raw, err := os.ReadFile(filepath.Clean(x.filePath))
	if err != nil {
		return cfg, goerr.Wrap(err, "failed to read config file", goerr.V("path", x.filePath))
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, goerr.Wrap(err, "failed to parse config file", goerr.V("path", x.filePath))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, goerr.Wrap(err, "invalid config file", goerr.V("path", x.filePath))
	}

	return cfg, nil
}
