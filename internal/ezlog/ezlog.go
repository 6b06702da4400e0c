// Package ezlog provides one-stop logging setup.
//
// Setup wires a slog.Logger that writes structured text entries to a
// log file under the XDG data (or cache) home and, at an independent
// level, colored entries to the console. The log file lives at
// <root>/<name>/<name>.log, e.g. ~/.local/share/foo/foo.log for a
// program named foo logging to the data destination.
package ezlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/zmwangx/docpub/internal/xdg"
)

// Destination selects the root directory family for the log file.
type Destination string

const (
	// Data places the log file under $XDG_DATA_HOME (~/.local/share).
	Data Destination = "data"

	// Cache places the log file under $XDG_CACHE_HOME (~/.cache).
	Cache Destination = "cache"
)

// Option configures Setup.
type Option func(*options)

type options struct {
	destination   Destination
	level         slog.Level
	consoleLevel  slog.Level
	console       bool
	consoleWriter io.Writer
}

// WithDestination selects where the log file lives. Default is Data.
func WithDestination(d Destination) Option {
	return func(o *options) { o.destination = d }
}

// WithLevel sets the log file level. Default is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithConsoleLevel sets the console level. Default is slog.LevelWarn.
func WithConsoleLevel(level slog.Level) Option {
	return func(o *options) { o.consoleLevel = level }
}

// WithoutConsole turns off console logging entirely.
func WithoutConsole() Option {
	return func(o *options) { o.console = false }
}

// WithConsoleWriter redirects console output. Default is os.Stderr.
func WithConsoleWriter(w io.Writer) Option {
	return func(o *options) { o.consoleWriter = w }
}

// Setup creates the log directory (mode 0700), opens the log file for
// appending, and returns a logger writing to both the file and the
// console. The file stays open for the life of the process.
func Setup(name string, opts ...Option) (*slog.Logger, error) {
	o := options{
		destination:   Data,
		level:         slog.LevelInfo,
		consoleLevel:  slog.LevelWarn,
		console:       true,
		consoleWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	path, err := Path(name, o.destination)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: o.level})
	if !o.console {
		return slog.New(fileHandler), nil
	}

	consoleHandler := tint.NewHandler(o.consoleWriter, &tint.Options{
		Level:      o.consoleLevel,
		TimeFormat: time.Kitchen,
	})
	return slog.New(fanout{fileHandler, consoleHandler}), nil
}

// Path returns the log file path for a program name and destination
// without creating anything.
func Path(name string, destination Destination) (string, error) {
	var (
		root string
		err  error
	)
	switch destination {
	case Data:
		root, err = xdg.DataHome()
	case Cache:
		root, err = xdg.CacheHome()
	default:
		return "", fmt.Errorf("cannot understand destination %q; should be %q or %q", destination, Data, Cache)
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name, name+".log"), nil
}

// fanout dispatches each record to every handler that is enabled for
// its level. No multiplexing handler exists in the standard library,
// so this minimal one lives here.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
