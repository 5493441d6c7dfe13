// Package logging builds the slog logger used by the demo: records go
// through a charmbracelet/log handler into a size-rotated file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

type Options struct {
	Level slog.Level

	// File defaults to DefaultPath.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Logger is a slog.Logger whose level can change while it is in use.
type Logger struct {
	*slog.Logger

	level *slog.LevelVar
	out   io.Closer
	path  string
}

// DefaultPath returns ~/.config/atmention/atmention.log, or a file in the
// temp dir when the home directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "atmention", "atmention.log")
}

// New opens a rotating log file.
func New(opts Options) (*Logger, error) {
	path := opts.File
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}

	l := newLogger(w, opts.Level, true)
	l.out = w
	l.path = path
	return l, nil
}

// NewWithWriter logs to w without rotation or timestamps.
func NewWithWriter(w io.Writer, level slog.Level) *Logger {
	return newLogger(w, level, false)
}

func newLogger(w io.Writer, level slog.Level, timestamps bool) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	// The charm handler passes everything; filtering happens in
	// levelHandler so that SetLevel reaches derived loggers.
	charm := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.DebugLevel,
		ReportTimestamp: timestamps,
		Prefix:          "atmention",
	})
	return &Logger{
		Logger: slog.New(&levelHandler{inner: charm, level: lv}),
		level:  lv,
	}
}

// SetLevel changes the level for this logger and every logger derived
// from it with With.
func (l *Logger) SetLevel(level slog.Level) { l.level.Set(level) }

func (l *Logger) Level() slog.Level { return l.level.Level() }

// Path is the log file, empty for writer-backed loggers.
func (l *Logger) Path() string { return l.path }

func (l *Logger) Close() error {
	if l.out == nil {
		return nil
	}
	return l.out.Close()
}

// ParseLevel accepts debug, info, warn/warning and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

type levelHandler struct {
	inner slog.Handler
	level *slog.LevelVar
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{inner: h.inner.WithAttrs(attrs), level: h.level}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{inner: h.inner.WithGroup(name), level: h.level}
}
