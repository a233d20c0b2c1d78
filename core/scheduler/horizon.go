package scheduler

import (
	"time"

	"github.com/inventree-tools/crewplan/core/model"
)

// horizonDays computes the number of schedulable day indices 0..H-1.
// H covers the latest task target date plus the padding so every task
// keeps at least one feasible day on or after its deadline. Without any
// deadline the horizon is a single day (today) in single-day mode and
// padding+1 days in multi-day mode.
func horizonDays(tasks []model.Task, today time.Time, padding int, mode Mode) int {
	if mode == ModeSingleDay {
		return 1
	}
	var latest time.Time
	found := false
	for _, t := range tasks {
		if d, ok := t.Deadline(); ok && (!found || d.After(latest)) {
			latest = d
			found = true
		}
	}
	if !found {
		return padding + 1
	}
	h := daysBetween(today, latest) + padding + 1
	if h < 1 {
		return 1
	}
	return h
}

// startDay returns the earliest allowed day index for a task: its
// deadline offset from today, clamped into [0, horizon). A deadline past
// the horizon end clamps to the last day, forcing the assignment onto
// the final index even though it is nominally still too early.
func startDay(t model.Task, today time.Time, horizon int) int {
	d, ok := t.Deadline()
	if !ok {
		return 0
	}
	s := daysBetween(today, d)
	if s < 0 {
		return 0
	}
	if s >= horizon {
		return horizon - 1
	}
	return s
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
