// Package app wires configuration, metrics sinks, the solver backend
// and the HTTP surface into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiparts "github.com/inventree-tools/crewplan/api/parts"
	apischedule "github.com/inventree-tools/crewplan/api/schedule"
	"github.com/inventree-tools/crewplan/config"
	coremetrics "github.com/inventree-tools/crewplan/core/metrics"
	"github.com/inventree-tools/crewplan/core/solver"
	"github.com/inventree-tools/crewplan/infra/inventree"
	"github.com/inventree-tools/crewplan/infra/logger"
	"github.com/inventree-tools/crewplan/infra/metrics"
)

// Service hosts the scheduling API.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
}

// New assembles a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{cfg: cfg, log: logg, sink: sink}, nil
}

// Sink exposes the assembled metrics sink.
func (s *Service) Sink() coremetrics.Sink { return s.sink }

// Run serves the HTTP API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/schedule", apischedule.NewHandler(
		s.cfg.Scheduler, solver.NewBranchAndBound(), s.sink, s.log, time.Now))
	if s.cfg.InvenTree.BaseURL != "" {
		client, err := inventree.NewClient(s.cfg.InvenTree)
		if err != nil {
			return fmt.Errorf("inventree client: %w", err)
		}
		mux.Handle("/api/recommend-part", apiparts.NewRecommendHandler(client))
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Infof("serving schedule API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
