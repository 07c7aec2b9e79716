package shapeshifter

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and shape counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime   time.Duration
	renderTime   time.Duration
	shapeCount   int
	activeCount  int
	pendingCount int
}

// debugLog prints timing and shape stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	switch {
	case stats.renderTime > 0:
		_, _ = fmt.Fprintf(os.Stderr,
			"[shapeshifter] render: %v | shapes: %d | active: %d\n",
			stats.renderTime, stats.shapeCount, stats.activeCount)
	default:
		_, _ = fmt.Fprintf(os.Stderr,
			"[shapeshifter] update: %v | shapes: %d | active: %d | pending: %d\n",
			stats.updateTime, stats.shapeCount, stats.activeCount, stats.pendingCount)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed shape
// is used in a registration or tree operation. Only called in debug mode.
func debugCheckDisposed(s *Shape, op string) {
	if s.disposed {
		panic(fmt.Sprintf("shapeshifter debug: %s on disposed shape %q", op, s.Name))
	}
}
