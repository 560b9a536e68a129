package kairos

// WarningKind classifies the anomalies a profiler absorbs instead of
// failing: instrumentation must never change host program behaviour,
// so unbalanced Stop calls are reported, not raised.
type WarningKind int

const (
	// WarnNoActiveTimer reports a Stop with no timer running.
	WarnNoActiveTimer WarningKind = iota
	// WarnNameMismatch reports a Stop whose name does not match the
	// active timer; the request is dropped and no timer is mutated.
	WarnNameMismatch
)

func (k WarningKind) String() string {
	switch k {
	case WarnNoActiveTimer:
		return "no active timer"
	case WarnNameMismatch:
		return "timer name mismatch"
	}
	return "unknown"
}

// Warning describes one absorbed anomaly. Timer is the name passed to
// Stop; Active is the name of the timer that was running at the time,
// empty for [WarnNoActiveTimer].
type Warning struct {
	Kind   WarningKind
	Timer  string
	Active string
}

// WarningFunc receives structured warnings from a profiler (see
// [Profiler.WithWarningFunc]) so hosts can escalate them if they wish.
type WarningFunc func(Warning)
