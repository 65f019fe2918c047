package texconv

import (
	"log/slog"
	"sync/atomic"

	"github.com/gxkit/texconv/glgen"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetDefaultLogger can be called concurrently with logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(glgen.NopLogger())
}

// SetDefaultLogger configures the logger new Encoders inherit when their
// config leaves Logger nil. By default texconv produces no log output.
// Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelError]: uid collisions between generated variants.
//   - [slog.LevelWarn]: best-effort diagnostics that failed (dump writes).
//   - [slog.LevelDebug]: per-variant generation events.
func SetDefaultLogger(l *slog.Logger) {
	if l == nil {
		l = glgen.NopLogger()
	}
	loggerPtr.Store(l)
}

// DefaultLogger returns the logger configured with SetDefaultLogger.
func DefaultLogger() *slog.Logger {
	return loggerPtr.Load()
}
