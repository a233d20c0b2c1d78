package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/inventree-tools/crewplan/core/metrics"
)

func TestPromSinkRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	run := coremetrics.ScheduleRun{
		Mode:     "single-day",
		Status:   "optimal",
		Tasks:    2,
		Staff:    1,
		Horizon:  1,
		Duration: 20 * time.Millisecond,
		Time:     time.Now(),
	}
	require.NoError(t, sink.RecordScheduleRun(run))

	fams, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range fams {
		names[f.GetName()] = true
	}
	assert.True(t, names["schedule_runs_total"])
	assert.True(t, names["schedule_solve_duration_seconds"])
	assert.True(t, names["schedule_tasks"])
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	// second registration reuses existing collectors
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	assert.NoError(t, sink.RecordScheduleRun(coremetrics.ScheduleRun{Mode: "multi-day", Status: "feasible"}))
}

func TestMultiSinkForwards(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSink(reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})
	assert.NoError(t, multi.RecordScheduleRun(coremetrics.ScheduleRun{Mode: "single-day", Status: "optimal"}))
}
