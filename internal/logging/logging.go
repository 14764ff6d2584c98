// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures the rotated log file. An empty Path disables it.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a JSON logger writing to stdout and, when configured, to a
// size-rotated file. The level is read from level on every record so it can
// be changed at runtime. The returned closer releases the log file.
func New(stdout io.Writer, level *slog.LevelVar, file FileOptions) (*slog.Logger, io.Closer) {
	var out io.Writer = stdout
	var closer io.Closer = nopCloser{}

	if file.Path != "" {
		rotated := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
		}
		out = io.MultiWriter(stdout, rotated)
		closer = rotated
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
