// Package logging provides structured logging setup for amlak.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Options controls Setup.
type Options struct {
	// DevMode selects colored text output at debug level.
	DevMode bool
	// Level is the minimum level in prod mode and for the fluent sink.
	Level slog.Level
	// Output defaults to os.Stdout.
	Output io.Writer
	// Fluent, when set, also receives every record at or above Level.
	Fluent Poster
}

// Setup builds the logger described by opts and installs it as the slog
// default. Dev mode uses tint's human-readable text; prod uses JSON.
func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if opts.DevMode {
		handler = tint.NewHandler(out, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "2006-01-02 15:04:05",
		})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: opts.Level,
		})
	}

	if opts.Fluent != nil {
		handler = newMultiHandler(handler, NewFluentHandler(opts.Fluent, opts.Level))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
