package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/inventree-tools/crewplan/core/metrics"
)

// PromSink records schedule runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tasks    *prometheus.GaugeVec
}

// NewPromSink registers scheduling metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"mode", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Wall-clock time spent in the solver",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	tasks := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_tasks",
		Help: "Task count of the last scheduling run",
	}, []string{"mode"})

	for _, c := range []prometheus.Collector{runs, duration, tasks} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch existing := are.ExistingCollector.(type) {
			case *prometheus.CounterVec:
				runs = existing
			case *prometheus.HistogramVec:
				duration = existing
			case *prometheus.GaugeVec:
				tasks = existing
			}
		}
	}
	return &PromSink{runs: runs, duration: duration, tasks: tasks}, nil
}

// RecordScheduleRun implements the core metrics sink.
func (s *PromSink) RecordScheduleRun(run coremetrics.ScheduleRun) error {
	s.runs.WithLabelValues(run.Mode, run.Status).Inc()
	s.duration.WithLabelValues(run.Mode).Observe(run.Duration.Seconds())
	s.tasks.WithLabelValues(run.Mode).Set(float64(run.Tasks))
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on
// the given address. It runs until the context is canceled. A dedicated
// ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
