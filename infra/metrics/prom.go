package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/evprice/core/metrics"
)

// PromSink records estimate events in Prometheus metrics.
type PromSink struct {
	estimates  *prometheus.CounterVec
	latency    prometheus.Histogram
	price      prometheus.Histogram
	unknown    *prometheus.CounterVec
	degenerate prometheus.Gauge

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on reg. A nil registerer
// defaults to the global Prometheus registerer. Collectors already
// registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{seen: make(map[string]struct{})}
	var err error
	if s.estimates, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_estimates_total",
		Help: "Number of price estimate requests by outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.latency, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_estimate_latency_seconds",
		Help:    "Time spent validating, encoding and predicting one estimate",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	})); err != nil {
		return nil, err
	}
	if s.price, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_estimate_dollars",
		Help:    "Distribution of returned price estimates",
		Buckets: prometheus.LinearBuckets(0, 10000, 12),
	})); err != nil {
		return nil, err
	}
	if s.unknown, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unknown_category_total",
		Help: "Input categories absent from the reference dataset",
	}, []string{"column"})); err != nil {
		return nil, err
	}
	if s.degenerate, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "degenerate_scaling_columns",
		Help: "Number of feature columns whose scaling falls back to a constant",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordEstimate counts the outcome and observes latency and price.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimates.WithLabelValues(string(ev.Outcome)).Inc()
	s.latency.Observe(ev.Latency.Seconds())
	switch ev.Outcome {
	case coremetrics.OutcomeOK, coremetrics.OutcomeAnomaly, coremetrics.OutcomeDemo:
		s.price.Observe(ev.Price)
	}
	return nil
}

// RecordUnknownCategory increments the per-column counter. Values are not
// used as labels to keep cardinality bounded.
func (s *PromSink) RecordUnknownCategory(ev coremetrics.UnknownCategoryEvent) error {
	s.unknown.WithLabelValues(ev.Column).Inc()
	return nil
}

// RecordDegenerateScaling sets the gauge to the number of distinct columns
// reported so far.
func (s *PromSink) RecordDegenerateScaling(columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range columns {
		s.seen[c] = struct{}{}
	}
	s.degenerate.Set(float64(len(s.seen)))
	return nil
}
