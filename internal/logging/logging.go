// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is parsed with slog.Level.UnmarshalText. Unknown values mean info.
	Level string
	// File, when set, receives a copy of every line, rotated by size.
	File string
	// Stdout is the primary destination. Defaults to os.Stdout.
	Stdout io.Writer
}

// New returns a JSON logger and a closer for its rotated file, if any.
// The logger is passed explicitly to every component; nothing here touches
// slog.Default.
func New(opts Options) (*slog.Logger, io.Closer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, rotator)
		closer = rotator
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
