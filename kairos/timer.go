package kairos

import "time"

// none marks the absence of a timer index (no parent, no active timer).
const none = -1

// # timer
//
// A single named accumulator in the timer tree. Timers live in the
// profiler's arena and refer to each other by index, so the struct is a
// plain value with no pointers back into the tree.
type timer struct {
	// identity
	name string
	note string

	// accumulated state, seconds
	ncalls   uint64
	cpuAccu  float64
	wallAccu float64
	cpuLast  float64
	wallLast float64

	// running markers; wallStart is zero while stopped
	running   bool
	cpuStart  float64
	wallStart time.Time

	// tree linkage by arena index
	parent   int
	children []int
}

// start begins a timing interval. A timer that is already running is
// stopped first, so a re-entrant start recovers instead of corrupting
// the accumulators.
func (t *timer) start(cpuNow cpuClock, wallNow wallClock) {
	if t.running {
		t.stop(cpuNow, wallNow)
	}
	t.ncalls++
	t.cpuStart = cpuNow()
	t.wallStart = wallNow()
	t.cpuLast = 0
	t.wallLast = 0
	t.running = true
}

// stop ends the current interval and folds it into the accumulators.
// Calling stop on a stopped timer is a no-op.
func (t *timer) stop(cpuNow cpuClock, wallNow wallClock) {
	if !t.running {
		return
	}
	t.cpuLast = clampSeconds(cpuNow() - t.cpuStart)
	t.wallLast = clampSeconds(wallNow().Sub(t.wallStart).Seconds())
	t.cpuAccu += t.cpuLast
	t.wallAccu += t.wallLast
	t.running = false
	t.cpuStart = 0
	t.wallStart = time.Time{}
}

// label returns the display label of the timer: its note when set,
// its name otherwise.
func (t *timer) label() string {
	if t.note == "" {
		return t.name
	}
	return t.note
}

// clampSeconds guards against a clock stepping backwards (or a CPU
// clock read degrading to zero mid-interval): a negative elapsed
// duration is reported as zero rather than propagated.
func clampSeconds(s float64) float64 {
	if s < 0 {
		return 0
	}
	return s
}
