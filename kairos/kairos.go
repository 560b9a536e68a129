// Package kairos provides a hierarchical timer for instrumenting named
// code regions.
//
// Regions are bracketed explicitly with [Profiler.Start] and
// [Profiler.Stop] and must nest like a stack. Each region owns a timer
// node recording its call count and accumulated CPU and wall time, and
// new timers attach as children of whichever timer is currently active.
// An example hierarchy may be:
//
//	 load
//	  ├ parse
//	  └ index
//	      ├ tokenize
//	      └ merge
//
// Accumulated timings are presented in a tabular manner via
// [Profiler.Render] or [Profiler.Print].
//
// A Profiler is not safe for concurrent use: Start, Stop and the tree
// they mutate carry no synchronization. Use one Profiler per goroutine.
package kairos

import (
	"os"

	"golang.org/x/exp/slog"
)

// FullDepth expands every level of the timer tree when passed as the
// verbosity of [Profiler.Render] or [Profiler.Display].
const FullDepth = 99

func init() {
	logLevel = new(slog.LevelVar)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(h)
}

var (
	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// SetLogger sets the logger used by kairos.
// [SetLogLevel] will not be enforced if a custom logger is used.
func SetLogger(newlogger *slog.Logger) {
	logger = newlogger
}

// SetLogLevel sets the level for kairos messages unless [SetLogger] has
// been called. The default log level is the zero value of [slog.LevelVar].
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
