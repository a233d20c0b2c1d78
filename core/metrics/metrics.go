// Package metrics defines the sink abstraction for scheduling
// observability. Implementations live under infra/metrics; sinks can be
// combined with a MultiSink and default to NopSink when none is
// configured.
package metrics

import "time"

// ScheduleRun describes one completed (or failed) solver invocation.
type ScheduleRun struct {
	Mode      string        // "single-day" or "multi-day"
	Status    string        // solver status: optimal, feasible, infeasible, unknown
	Tasks     int
	Staff     int
	Horizon   int           // day indices considered
	Objective int           // max load or max assigned day, valid on success
	Duration  time.Duration // wall-clock solve time
	Time      time.Time
}

// Sink records scheduling events.
type Sink interface {
	RecordScheduleRun(ScheduleRun) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordScheduleRun implements Sink.
func (NopSink) RecordScheduleRun(ScheduleRun) error { return nil }
