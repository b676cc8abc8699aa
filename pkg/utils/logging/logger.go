package logging

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

type Format int

const (
	FormatConsole Format = iota + 1
	FormatJSON
)

func (x Format) String() string {
	switch x {
	case FormatConsole:
		return "console"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(x))
}

var (
	defaultLogger = slog.Default()
	loggerMutex   sync.RWMutex
)

func Default() *slog.Logger {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	return defaultLogger
}

func SetDefault(logger *slog.Logger) {
	loggerMutex.Lock()
	defaultLogger = logger
	loggerMutex.Unlock()
}

// Quiet discards every log record from the default logger.
func Quiet() {
	SetDefault(slog.New(slog.DiscardHandler))
}

// newMaskFilter hides credentials of the backend client and Sentry, and
// any field tagged `masq:"secret"`.
func newMaskFilter() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldName("Authorization"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("APIToken"),
		masq.WithFieldName("DSN"),
	)
}

func goerrNoStacktrace(_ []string, attr slog.Attr) *clog.HandleAttr {
	goErr, ok := attr.Value.Any().(*goerr.Error)
	if !ok {
		return nil
	}

	var attrs []any
	for k, v := range goErr.Values() {
		attrs = append(attrs, slog.Any(k, v))
	}
	attrs = append(attrs, slog.Any("cause", goErr.Error()))
	newAttr := slog.Group(attr.Key, attrs...)

	return &clog.HandleAttr{NewAttr: &newAttr}
}

var consoleColors = &clog.ColorMap{
	Level: map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgGreen, color.Bold),
		slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
		slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	},
	LevelDefault: color.New(color.FgBlue, color.Bold),
	Time:         color.New(color.FgWhite),
	Message:      color.New(color.FgHiWhite),
	AttrKey:      color.New(color.FgHiCyan),
	AttrValue:    color.New(color.FgHiWhite),
}

// New creates a logger writing to w. Console output shows goerr stack traces
// only when stacktrace is true.
func New(w io.Writer, level slog.Level, format Format, stacktrace bool) *slog.Logger {
	filter := newMaskFilter()

	var handler slog.Handler
	switch format {
	case FormatConsole:
		attrHook := hooks.GoErr()
		if !stacktrace {
			attrHook = goerrNoStacktrace
		}
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithAttrHook(attrHook),
			clog.WithColorMap(consoleColors),
		)

	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})

	default:
		panic("unsupported log format: " + format.String())
	}

	return slog.New(handler)
}
