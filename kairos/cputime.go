package kairos

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/exp/slog"
)

// cpuClock returns the cumulative CPU seconds (user + system) consumed
// by the process. Its resolution is coarser than the wall clock.
type cpuClock func() float64

// wallClock returns the current wall time. time.Now carries a monotonic
// reading, so deltas between two samples are immune to clock adjustment.
type wallClock func() time.Time

// processCPUClock builds a cpuClock for the current process. If the
// process handle or a later sample cannot be obtained the clock reads
// zero; the timer state machine clamps the resulting delta.
func processCPUClock() cpuClock {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Error("cannot open process for cpu timing",
			slog.Int("pid", os.Getpid()),
			slog.String("error", err.Error()))
		return func() float64 { return 0 }
	}
	return func() float64 {
		times, err := proc.Times()
		if err != nil {
			return 0
		}
		return times.User + times.System
	}
}
