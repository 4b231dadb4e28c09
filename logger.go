package frameloop

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/frameloop/internal/logging"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the default logger for frameloop and every App
// created without [WithLogger]. By default frameloop produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by frameloop:
//   - [slog.LevelDebug]: per-frame detail (frame presented, event ignored)
//   - [slog.LevelInfo]: lifecycle (adapter selected, surface configured)
//   - [slog.LevelWarn]: recovered surface loss, skipped frames, policy fallbacks
//
// Example:
//
//	frameloop.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current default logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
