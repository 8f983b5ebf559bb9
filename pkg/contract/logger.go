package contract

import (
	"log/slog"
	"sync/atomic"

	"github.com/getmockd/pactcore/pkg/logging"
)

var pkgLog atomic.Pointer[slog.Logger]

func init() {
	pkgLog.Store(logging.Nop())
}

// SetLogger sets the logger used to report skipped rule and generator entries
// while loading documents. A nil logger disables logging.
func SetLogger(log *slog.Logger) {
	pkgLog.Store(logging.Component(log, "contract"))
}

func logger() *slog.Logger {
	return pkgLog.Load()
}
