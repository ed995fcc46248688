// Package logging builds the slog logger used by bnbsolve: a text handler on
// the console plus an optional rotating log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables tuning log rotation.
const (
	EnvMaxSize    = "BNB_LOG_MAX_SIZE"
	EnvMaxBackups = "BNB_LOG_MAX_BACKUPS"
	EnvMaxAge     = "BNB_LOG_MAX_AGE"
)

// Options configures New.
type Options struct {
	Console io.Writer // nil discards console output
	Level   slog.Level
	File    string // empty disables the file sink
	Getenv  func(string) string
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}

	return l, nil
}

// New returns the logger and a closer for the file sink (no-op without one).
// The file sink always records Debug and above.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = io.Discard
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: opts.Level}),
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		rot := rotating(opts.File, getenv)
		handlers = append(handlers, slog.NewTextHandler(rot, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = rot
	}

	return slog.New(&fanout{handlers: handlers}), closer, nil
}

// rotating returns a lumberjack sink; sizes are overridable from the environment.
func rotating(path string, getenv func(string) string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	if n, err := strconv.Atoi(getenv(EnvMaxSize)); err == nil && n > 0 {
		l.MaxSize = n
	}
	if n, err := strconv.Atoi(getenv(EnvMaxBackups)); err == nil && n >= 0 {
		l.MaxBackups = n
	}
	if n, err := strconv.Atoi(getenv(EnvMaxAge)); err == nil && n > 0 {
		l.MaxAge = n
	}

	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout struct {
	handlers []slog.Handler
}

func (h *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, r.Level) {
			if err := hh.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithAttrs(attrs)
	}

	return &fanout{handlers: out}
}

func (h *fanout) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithGroup(name)
	}

	return &fanout{handlers: out}
}
