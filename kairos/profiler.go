package kairos

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/exp/slog"
)

// # Profiler
//
// Owns a tree of named timers and the index of the active one. Timers
// are created lazily by [Profiler.Start] and attach as children of the
// active timer, so correctly paired Start/Stop calls reproduce the
// caller's nesting. Stopping the active timer moves the active scope
// back to its parent.
//
// Anomalies never surface as errors: unbalanced Stop calls are absorbed
// and reported through the package logger and the optional
// [WarningFunc]. A Profiler must not be shared between goroutines.
//
// Its zero value has no meaning and should not be used. A Profiler
// should always be instantiated using [New].
type Profiler struct {
	arena []timer
	// roots holds the top-level timers in creation order; current is
	// the arena index of the active timer, none when fully unwound.
	roots   []int
	current int

	indent     int
	sink       io.Writer
	memSampler MemorySampler
	onWarning  WarningFunc

	cpuNow  cpuClock
	wallNow wallClock
}

// New returns a silent Profiler: it tracks timing but performs no I/O
// until a sink is attached with [Profiler.WithSink].
func New() *Profiler {
	return &Profiler{
		current: none,
		indent:  1,
		cpuNow:  processCPUClock(),
		wallNow: time.Now,
	}
}

// WithSink modifies and returns p, attaching the writer that receives
// one timestamped line per Start/Stop call and the output of
// [Profiler.Display]. Write failures are ignored.
func (p *Profiler) WithSink(w io.Writer) *Profiler {
	p.sink = w
	return p
}

// WithMemorySampler modifies and returns p, attaching a sampler whose
// reading is appended to every start/stop log line.
func (p *Profiler) WithMemorySampler(s MemorySampler) *Profiler {
	p.memSampler = s
	return p
}

// WithWarningFunc modifies and returns p, attaching a callback that
// receives every absorbed anomaly as a structured [Warning].
func (p *Profiler) WithWarningFunc(f WarningFunc) *Profiler {
	p.onWarning = f
	return p
}

// WithIndent is the chainable form of [Profiler.SetIndent].
func (p *Profiler) WithIndent(n int) *Profiler {
	p.SetIndent(n)
	return p
}

// SetIndent sets the number of spaces each tree level is indented by in
// rendered reports. The default value is 1.
func (p *Profiler) SetIndent(n int) {
	if n < 0 {
		logger.Error("indent must be >= 0, keeping previous value",
			slog.Int("n", n))
		return
	}
	p.indent = n
}

// Add creates a timer named name and links it as the last child of the
// active timer, or as a new top-level timer when none is active. The
// new timer becomes the active one. Add only allocates and links; it
// does not start timing. The optional note is a display label used in
// reports in place of the name.
func (p *Profiler) Add(name string, note ...string) {
	t := timer{name: name, parent: p.current}
	if len(note) > 0 {
		t.note = note[0]
	}

	idx := len(p.arena)
	p.arena = append(p.arena, t)

	if p.current == none {
		p.roots = append(p.roots, idx)
	} else {
		p.arena[p.current].children = append(p.arena[p.current].children, idx)
	}
	p.current = idx
}

// Start starts the timer named name, creating it first if no timer of
// that name is reachable from the active scope. Resolving an existing
// name moves the active scope to that timer, so a sibling or ancestor
// region can be re-entered by name. The optional note is only applied
// when the timer is created.
func (p *Profiler) Start(name string, note ...string) {
	idx := p.find(name)
	if idx == none {
		p.Add(name, note...)
	} else {
		p.current = idx
	}
	p.logEvent("Timer start: ", name)
	p.arena[p.current].start(p.cpuNow, p.wallNow)
}

// Stop stops the active timer, which must be named name, and moves the
// active scope to its parent. A Stop with no active timer, or with a
// name that does not match the active timer, mutates nothing and is
// reported as a [Warning].
func (p *Profiler) Stop(name string) {
	if p.current == none {
		p.warn(Warning{Kind: WarnNoActiveTimer, Timer: name})
		return
	}
	t := &p.arena[p.current]
	if t.name != name {
		p.warn(Warning{Kind: WarnNameMismatch, Timer: name, Active: t.name})
		return
	}
	t.stop(p.cpuNow, p.wallNow)
	p.current = t.parent
	p.logEvent("Timer stop:  ", name)
}

// GetLastCPUTime returns the CPU seconds consumed during the last
// completed interval of the timer named name, or -1 when no such timer
// is reachable from the active scope. A timer that has never completed
// an interval reads 0.
func (p *Profiler) GetLastCPUTime(name string) float64 {
	if idx := p.find(name); idx != none {
		return p.arena[idx].cpuLast
	}
	return -1
}

// GetLastWallTime returns the wall seconds elapsed during the last
// completed interval of the timer named name, or 0 when no such timer
// is reachable from the active scope.
func (p *Profiler) GetLastWallTime(name string) float64 {
	if idx := p.find(name); idx != none {
		return p.arena[idx].wallLast
	}
	return 0
}

// find resolves name against the active scope: a pre-order search of
// the active timer's subtree, then of its later siblings' subtrees.
// With no active timer the top-level timers are searched in order.
// Most lookups hit the active timer itself, a child being re-entered
// or a previously started sibling, so the common cases resolve in a
// few steps.
func (p *Profiler) find(name string) int {
	for _, idx := range p.scope() {
		if found := p.search(idx, name); found != none {
			return found
		}
	}
	return none
}

// scope returns the subtree roots reachable from the active timer: the
// active timer followed by its later siblings, or every top-level
// timer when none is active.
func (p *Profiler) scope() []int {
	if p.current == none {
		return p.roots
	}
	siblings := p.roots
	if parent := p.arena[p.current].parent; parent != none {
		siblings = p.arena[parent].children
	}
	for i, idx := range siblings {
		if idx == p.current {
			return siblings[i:]
		}
	}
	return []int{p.current}
}

// search performs a pre-order, children-before-siblings search of the
// subtree rooted at idx and returns the first timer named name.
func (p *Profiler) search(idx int, name string) int {
	if p.arena[idx].name == name {
		return idx
	}
	for _, child := range p.arena[idx].children {
		if found := p.search(child, name); found != none {
			return found
		}
	}
	return none
}

// logEvent writes one timestamped line to the sink, appending a free
// memory reading when a sampler is attached. The write is best effort.
func (p *Profiler) logEvent(event, name string) {
	if p.sink == nil {
		return
	}
	ts := p.wallNow().Format("[2006-01-02 15:04:05.000]")
	if p.memSampler == nil {
		fmt.Fprintf(p.sink, "%s %s%s\n", ts, event, name)
		return
	}
	free, err := p.memSampler()
	if err != nil {
		free = 0
	}
	fmt.Fprintf(p.sink, "%s %s%s. Free memory on node [GB]: %g\n", ts, event, name, free)
}

func (p *Profiler) warn(w Warning) {
	switch w.Kind {
	case WarnNoActiveTimer:
		logger.Warn("no timer is currently active",
			slog.String("timer", w.Timer))
	case WarnNameMismatch:
		logger.Warn("attempt to stop a timer that is not the active one",
			slog.String("timer", w.Timer),
			slog.String("active", w.Active))
	}
	if p.onWarning != nil {
		p.onWarning(w)
	}
}
