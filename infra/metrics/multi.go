package metrics

import coremetrics "github.com/inventree-tools/crewplan/core/metrics"

// MultiSink fans schedule runs out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the record to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordScheduleRun(run coremetrics.ScheduleRun) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(run); err != nil {
			return err
		}
	}
	return nil
}
