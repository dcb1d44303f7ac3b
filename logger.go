package hdsprite

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// LevelTrace is below slog.LevelDebug. Per-load decisions and clamped
// override regions are reported at this level.
const LevelTrace = slog.LevelDebug - 4

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by hdsprite. By default the package
// produces no output. Pass nil to restore the silent default.
//
// Levels used:
//   - [LevelTrace]: per-load gate decisions, clamped override regions
//   - [slog.LevelDebug]: composite installation, multi-rule ties
//   - [slog.LevelInfo]: rule registration, invalidation requests
//   - [slog.LevelWarn]: composite failures (served original instead)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
