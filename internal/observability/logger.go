package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type LoggerOptions struct {
	Out       io.Writer
	App       string
	Timestamp bool
	NoColor   bool
}

// NewLogger builds a console logger tagged with the app name.
func NewLogger(opts LoggerOptions) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    opts.NoColor,
		TimeFormat: time.RFC3339,
	}
	ctx := zerolog.New(output).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	if opts.App != "" {
		ctx = ctx.Str("app", opts.App)
	}
	return ctx.Logger()
}
