// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/treykane/hkctl/internal/util"
)

// LevelForVerbosity maps the -v count to a log level.
func LevelForVerbosity(v int) log.Level {
	switch {
	case v >= 2:
		return log.DebugLevel
	case v == 1:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// New returns a slog logger writing human-readable lines to w.
func New(w io.Writer, verbosity int) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           LevelForVerbosity(verbosity),
		Prefix:          util.AppName,
		ReportTimestamp: verbosity >= 2,
	})
	return slog.New(handler)
}

// Setup installs the logger as the slog default.
func Setup(w io.Writer, verbosity int) *slog.Logger {
	logger := New(w, verbosity)
	slog.SetDefault(logger)
	return logger
}
