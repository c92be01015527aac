// Package logging builds the process logger: slog text output on stderr,
// optionally teed into a rotated log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level string
	// File, when set, receives a copy of every record and is rotated by size.
	File string
	// MaxSizeMB and MaxBackups default to 10 and 3.
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger and a closer for the rotated file (a no-op without one).
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(os.Stderr, opts, level)
}

func newLogger(stderr io.Writer, opts Options, level slog.Level) (*slog.Logger, io.Closer, error) {
	out := stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if opts.MaxSizeMB <= 0 {
			opts.MaxSizeMB = 10
		}
		if opts.MaxBackups <= 0 {
			opts.MaxBackups = 3
		}
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		out = io.MultiWriter(stderr, rotated)
		closer = rotated
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog level.
// Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
