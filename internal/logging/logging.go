// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Options selects verbosity and rendering.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool

	// Output defaults to stderr.
	Output io.Writer
}

// Level returns the minimum level for opts. Quiet wins over Verbose.
func (o Options) Level() clog.Level {
	switch {
	case o.Quiet:
		return clog.ErrorLevel
	case o.Verbose:
		return clog.DebugLevel
	default:
		return clog.WarnLevel
	}
}

// New builds a slog.Logger backed by a charmbracelet/log handler.
func New(opts Options) *slog.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	handler := clog.NewWithOptions(w, clog.Options{
		Level:           opts.Level(),
		ReportTimestamp: opts.Verbose,
		Prefix:          "quickhooks",
	})
	if opts.NoColor {
		handler.SetColorProfile(termenv.Ascii)
	}
	return slog.New(handler)
}

// Setup installs the logger from New as the slog default.
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}
