// Package logging builds the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the log level ("debug", "info", ...) and format ("json" or "console").
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// New returns a timestamped logger writing to opts.Writer (stderr when nil).
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
