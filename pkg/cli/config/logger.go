package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type Logger struct {
	level      string
	format     string
	output     string
	quiet      bool
	stacktrace bool
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "logging",
			Aliases:     []string{"l"},
			Sources:     cli.EnvVars("SENTIQ_LOG_LEVEL"),
			Usage:       "Set log level [debug|info|warn|error]",
			Value:       "info",
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "logging",
			Aliases:     []string{"f"},
			Sources:     cli.EnvVars("SENTIQ_LOG_FORMAT"),
			Usage:       "Set log format [console|json], detected from TERM when empty",
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "logging",
			Aliases:     []string{"o"},
			Sources:     cli.EnvVars("SENTIQ_LOG_OUTPUT"),
			Usage:       "Set log output (create file other than '-', 'stdout', 'stderr')",
			Value:       "stderr",
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "log-quiet",
			Category:    "logging",
			Aliases:     []string{"q"},
			Usage:       "Quiet mode (no log output)",
			Sources:     cli.EnvVars("SENTIQ_LOG_QUIET"),
			Destination: &x.quiet,
		},
		&cli.BoolFlag{
			Name:        "log-stacktrace",
			Category:    "logging",
			Usage:       "Show stacktrace (only for console format)",
			Sources:     cli.EnvVars("SENTIQ_LOG_STACKTRACE"),
			Destination: &x.stacktrace,
			Value:       true,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var logFormats = map[string]logging.Format{
	"console": logging.FormatConsole,
	"json":    logging.FormatJSON,
}

func (x *Logger) resolveFormat() (logging.Format, error) {
	if x.format == "" {
		term := os.Getenv("TERM")
		if strings.Contains(term, "color") || strings.Contains(term, "xterm") {
			return logging.FormatConsole, nil
		}
		return logging.FormatJSON, nil
	}

	format, ok := logFormats[x.format]
	if !ok {
		return format, goerr.New("invalid log format", goerr.V("format", x.format))
	}
	return format, nil
}

// Configure sets up the default logger and returns a closer for the log
// output. The closer is safe to call even when an error is returned.
func (x *Logger) Configure() (func(), error) {
	closer := func() {}
	if x.quiet {
		logging.Quiet()
		return closer, nil
	}

	format, err := x.resolveFormat()
	if err != nil {
		return closer, err
	}

	level, ok := logLevels[x.level]
	if !ok {
		return closer, goerr.New("invalid log level", goerr.V("level", x.level))
	}

	var output io.Writer
	switch x.output {
	case "stdout", "-":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		f, err := os.OpenFile(filepath.Clean(x.output), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return closer, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		output = f
		closer = func() {
			safe.Close(context.Background(), f)
		}
	}

	logging.SetDefault(logging.New(output, level, format, x.stacktrace))
	return closer, nil
}
