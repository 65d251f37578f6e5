// Package logging builds the hclog logger used across holdseek.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/config"
)

// Options controls logger construction.
type Options struct {
	// Quiet discards output when no log file is configured. The TUI sets it
	// so logs never reach the terminal.
	Quiet bool
	// JSON selects JSON-formatted lines.
	JSON bool
	// Verbose forces at least debug level.
	Verbose bool
	// Stderr is where logs go when no file is configured. Defaults to
	// os.Stderr.
	Stderr io.Writer
}

// New returns a logger for cfg and a close function for any file it opened.
func New(cfg config.LogConfig, opts Options) (hclog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if opts.Verbose && level > hclog.Debug {
		level = hclog.Debug
	}

	var out io.Writer
	closer := noop
	switch {
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, noop, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f.Close
	case opts.Quiet:
		return hclog.NewNullLogger(), noop, nil
	case opts.Stderr != nil:
		out = opts.Stderr
	default:
		out = os.Stderr
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "holdseek",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}
