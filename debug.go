package scrolly

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and region metrics.
// Only populated when the registry is in debug mode.
type debugStats struct {
	frameTime   time.Duration
	scrollY     float64
	regions     int
	active      int
	disabled    int
	tweens      int
	horizontals int
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, deep trees print warnings, and per-frame stats are
// printed to stderr.
func (r *Registry) SetDebugMode(enabled bool) {
	r.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set registry debug flag so that node
// operations (which lack a registry pointer) can check it cheaply.
var globalDebug bool

func (r *Registry) collectStats(elapsed time.Duration) debugStats {
	st := debugStats{
		frameTime:   elapsed,
		scrollY:     r.doc.viewport.ScrollY,
		regions:     len(r.regions),
		tweens:      r.tweener.Len(),
		horizontals: len(r.horizontals),
	}
	for _, reg := range r.regions {
		switch reg.state {
		case StateActive:
			st.active++
		case StateDisabled:
			st.disabled++
		}
	}
	return st
}

// debugLog prints frame stats to stderr.
func (r *Registry) debugLog(stats debugStats) {
	if !r.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrolly] frame %d | scroll: %.1f | update: %v\n",
		r.frame, stats.scrollY, stats.frameTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrolly] regions: %d (active %d, disabled %d) | horizontals: %d | tweens: %d\n",
		stats.regions, stats.active, stats.disabled, stats.horizontals, stats.tweens)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scrolly debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[scrolly] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
