package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/evprice/api/estimate"
	"github.com/kilianp07/evprice/app/plugins"
	"github.com/kilianp07/evprice/config"
	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/features"
	coremetrics "github.com/kilianp07/evprice/core/metrics"
	coremon "github.com/kilianp07/evprice/core/monitoring"
	"github.com/kilianp07/evprice/core/prediction"
	"github.com/kilianp07/evprice/core/pricing"
	"github.com/kilianp07/evprice/infra/logger"
	"github.com/kilianp07/evprice/infra/metrics"
	"github.com/kilianp07/evprice/infra/monitoring"
	"github.com/kilianp07/evprice/infra/mqtt"
)

const shutdownTimeout = 5 * time.Second

// Pipeline holds everything needed to price a vehicle.
type Pipeline struct {
	Estimator *pricing.Estimator
	Dataset   *dataset.Dataset
	Sink      coremetrics.MetricsSink
	Monitor   coremon.Monitor
}

// Build loads the reference dataset and the model and assembles the
// Estimator. A model that fails to load does not fail the build: the
// Estimator then reports ErrModelUnavailable, or serves the demo price.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	log := logger.New("pipeline")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	src, err := dataset.NewSource(cfg.Dataset.ModuleConfig)
	if err != nil {
		return nil, fmt.Errorf("dataset source: %w", err)
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	stats, err := features.Build(ds)
	if err != nil {
		return nil, fmt.Errorf("reference statistics: %w", err)
	}
	log.Infof("reference dataset loaded: %d rows, %d features", ds.Len(), len(stats.FeatureNames()))

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	opts := []pricing.Option{
		pricing.WithSink(sink),
		pricing.WithMonitor(mon),
		pricing.WithLogger(logger.New("pricing")),
	}
	var pred prediction.Predictor
	if p, err := plugins.NewPredictor(cfg.Model); err != nil {
		log.Errorf("model unavailable: %v", err)
		mon.CaptureException(err, map[string]string{"module": "model"})
		opts = append(opts, pricing.WithUnavailableReason(err))
		if cfg.Model.DemoFallback {
			log.Warnf("serving demo price %s until a model is available", pricing.FormatPrice(cfg.Model.DemoPrice))
		}
	} else {
		pred = p
		log.Infof("model loaded: %d features", len(p.Features()))
	}

	est, err := pricing.NewEstimator(stats, pred, pricing.Config{
		Limits:       cfg.Validation.Limits(),
		DemoFallback: cfg.Model.DemoFallback,
		DemoPrice:    cfg.Model.DemoPrice,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Estimator: est, Dataset: ds, Sink: sink, Monitor: mon}, nil
}

// Close flushes pending error reports and closes the sinks that hold
// connections.
func (p *Pipeline) Close() {
	closeSink(p.Sink)
	p.Monitor.Flush(2 * time.Second)
}

func closeSink(s coremetrics.MetricsSink) {
	switch v := s.(type) {
	case *coremetrics.MultiSink:
		for _, inner := range v.Sinks {
			closeSink(inner)
		}
	case interface{ Close() }:
		v.Close()
	}
}

// Service serves the Estimator over HTTP and, when configured, MQTT.
type Service struct {
	*Pipeline
	cfg *config.Config
	log logger.Logger
}

// New builds the pipeline for cfg.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	p, err := Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Service{Pipeline: p, cfg: cfg, log: logger.New("service")}, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	return estimate.NewRouter(s.Estimator, logger.New("http"))
}

// Run starts the listeners and blocks until ctx is canceled or one of them
// fails.
func (s *Service) Run(ctx context.Context) error {
	var responder *mqtt.Responder
	if s.cfg.MQTT.Enabled() {
		r, err := mqtt.NewResponder(s.cfg.MQTT, s.Estimator)
		if err != nil {
			return fmt.Errorf("mqtt responder: %w", err)
		}
		responder = r
	}

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout(),
		ReadTimeout:       s.cfg.Server.ReadTimeout(),
		WriteTimeout:      s.cfg.Server.WriteTimeout(),
	}
	g.Go(func() error {
		s.log.Infof("serving API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if port := s.cfg.Metrics.PrometheusPort; port != "" {
		g.Go(func() error { return metrics.StartPromServer(ctx, port) })
	}

	if responder != nil {
		g.Go(func() error {
			<-ctx.Done()
			responder.Close()
			return nil
		})
	}

	err := g.Wait()
	s.log.Infof("service stopped")
	return err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Pipeline.Close()
	return nil
}
