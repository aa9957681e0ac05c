//go:build debug

package pool

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Built with -tags debug, the pool traces stages and lifecycle events to
// stderr. Each line carries the time elapsed since the package was loaded.
var (
	debugStart  = time.Now()
	debugLogger = log.New(os.Stderr, "mrpool ", log.Lmsgprefix|log.Lshortfile)
)

func debugLog(format string, args ...any) {
	elapsed := time.Since(debugStart).Round(time.Microsecond)
	_ = debugLogger.Output(2, fmt.Sprintf("+%s %s", elapsed, fmt.Sprintf(format, args...)))
}
