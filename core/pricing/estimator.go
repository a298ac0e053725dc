package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/evprice/core/features"
	"github.com/kilianp07/evprice/core/logger"
	"github.com/kilianp07/evprice/core/metrics"
	"github.com/kilianp07/evprice/core/model"
	"github.com/kilianp07/evprice/core/monitoring"
	"github.com/kilianp07/evprice/core/prediction"
)

// CurrencyScale converts model output (thousands) to currency units.
const CurrencyScale = 1000

// DefaultDemoPrice is the placeholder shown while no model is loaded.
const DefaultDemoPrice = 35750

// Config tunes the Estimator.
type Config struct {
	Limits Limits
	// DemoFallback returns a labeled placeholder instead of
	// ErrModelUnavailable when no model is loaded.
	DemoFallback bool
	DemoPrice    float64
}

// Estimator prices vehicles. Build it once and share it.
type Estimator struct {
	stats       *features.Statistics
	encoder     *features.Encoder
	predictor   prediction.Predictor
	unavailable error
	cfg         Config
	sink        metrics.MetricsSink
	monitor     monitoring.Monitor
	log         logger.Logger
	now         func() time.Time
}

// Option customizes an Estimator.
type Option func(*Estimator)

// WithSink records pipeline events on s.
func WithSink(s metrics.MetricsSink) Option {
	return func(e *Estimator) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithMonitor reports model failures and anomalies to m.
func WithMonitor(m monitoring.Monitor) Option {
	return func(e *Estimator) {
		if m != nil {
			e.monitor = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// WithUnavailableReason records why no predictor was supplied. It is
// included in ErrModelUnavailable errors.
func WithUnavailableReason(err error) Option {
	return func(e *Estimator) { e.unavailable = err }
}

// NewEstimator wires the statistics and an optional predictor. When pred is
// nil every estimate fails with ErrModelUnavailable, or returns the demo
// placeholder if cfg.DemoFallback is set.
func NewEstimator(stats *features.Statistics, pred prediction.Predictor, cfg Config, opts ...Option) (*Estimator, error) {
	e := &Estimator{
		stats:     stats,
		predictor: pred,
		cfg:       cfg,
		sink:      metrics.NopSink{},
		monitor:   monitoring.NopMonitor{},
		log:       logger.NopLogger{},
		now:       time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if e.cfg.DemoPrice <= 0 {
		e.cfg.DemoPrice = DefaultDemoPrice
	}
	if e.cfg.Limits == (Limits{}) {
		e.cfg.Limits = DefaultLimits(e.now())
	}

	var schema features.Schema
	if pred != nil {
		schema = features.Schema(pred.Features())
	}
	enc, err := features.NewEncoder(stats, schema)
	if err != nil {
		return nil, fmt.Errorf("feature encoder: %w", err)
	}
	e.encoder = enc
	if pred != nil {
		if filled := enc.Filled(); len(filled) > 0 {
			e.log.Infof("%d model columns are never produced by the reference data and stay 0", len(filled))
		}
		if dropped := enc.Dropped(); len(dropped) > 0 {
			e.log.Warnf("%d encoded columns are unknown to the model and dropped: %v", len(dropped), dropped)
		}
	}
	if deg := stats.Degenerate(); len(deg) > 0 {
		e.log.Warnf("degenerate scaling for %v, values fall back to 0", deg)
		if rec, ok := e.sink.(metrics.DegenerateScalingRecorder); ok {
			if err := rec.RecordDegenerateScaling(deg); err != nil {
				e.log.Errorf("record degenerate scaling: %v", err)
			}
		}
	}
	return e, nil
}

// Ready reports whether a model is loaded.
func (e *Estimator) Ready() bool { return e.predictor != nil }

// Schema returns the column order of encoded vectors.
func (e *Estimator) Schema() features.Schema { return e.encoder.Schema() }

// Statistics returns the reference statistics. Callers must not modify them.
func (e *Estimator) Statistics() *features.Statistics { return e.stats }

// ModelInfo describes the loaded model, if it can describe itself.
func (e *Estimator) ModelInfo() (prediction.Info, bool) {
	d, ok := e.predictor.(prediction.Describer)
	if !ok {
		return prediction.Info{}, false
	}
	return d.Info(), true
}

// Encode validates in and returns its feature vector without predicting.
func (e *Estimator) Encode(in model.VehicleInput) (features.Result, error) {
	v, err := e.cfg.Limits.Validate(in)
	if err != nil {
		return features.Result{}, err
	}
	return e.encoder.Encode(v), nil
}

// Estimate runs validate, encode, predict and rescale for one vehicle.
func (e *Estimator) Estimate(in model.VehicleInput) (model.Estimate, error) {
	start := e.now()
	ev := metrics.EstimateEvent{Time: start}
	defer func() {
		ev.Latency = e.now().Sub(start)
		if err := e.sink.RecordEstimate(ev); err != nil {
			e.log.Errorf("record estimate: %v", err)
		}
	}()

	v, err := e.cfg.Limits.Validate(in)
	if err != nil {
		ev.Outcome = metrics.OutcomeInvalid
		e.log.Debugf("rejected input: %v", err)
		return model.Estimate{}, err
	}

	enc := e.encoder.Encode(v)
	ev.UnknownCategories = len(enc.Unknown)
	ev.Make = knownMake(v.Make, enc.Unknown)
	e.reportUnknown(enc.Unknown, start)
	warnings := e.rangeWarnings(v, enc.OutOfRange)

	if e.predictor == nil {
		if e.cfg.DemoFallback {
			ev.Outcome = metrics.OutcomeDemo
			ev.Price = e.cfg.DemoPrice
			return model.Estimate{
				Price:             e.cfg.DemoPrice,
				Formatted:         FormatPrice(e.cfg.DemoPrice),
				RawOutput:         e.cfg.DemoPrice / CurrencyScale,
				Demo:              true,
				Warnings:          append(warnings, "model not loaded, this is a demonstration value and not a prediction"),
				UnknownCategories: enc.Unknown,
			}, nil
		}
		ev.Outcome = metrics.OutcomeUnavailable
		err := ErrModelUnavailable
		if e.unavailable != nil {
			err = fmt.Errorf("%w: %v", ErrModelUnavailable, e.unavailable)
		}
		return model.Estimate{}, err
	}

	out, err := e.predictor.Predict(enc.Vector)
	if err == nil && (math.IsNaN(out) || math.IsInf(out, 0)) {
		err = fmt.Errorf("non-finite model output %v", out)
	}
	if err != nil {
		if !errors.Is(err, ErrModelUnavailable) {
			err = fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
		ev.Outcome = metrics.OutcomeUnavailable
		e.log.Errorf("prediction failed: %v", err)
		e.monitor.CaptureException(err, map[string]string{"component": "pricing", "make": v.Make})
		return model.Estimate{}, err
	}

	est := model.Estimate{
		Price:             out * CurrencyScale,
		RawOutput:         out,
		Warnings:          warnings,
		UnknownCategories: enc.Unknown,
	}
	ev.Outcome = metrics.OutcomeOK
	if est.Price < 0 {
		ev.Outcome = metrics.OutcomeAnomaly
		e.log.Warnf("model produced a negative price %.2f for %s %s %d, reporting 0", est.Price, v.Make, v.Model, v.ModelYear)
		e.monitor.CaptureException(fmt.Errorf("negative price estimate %.2f", est.Price),
			map[string]string{"component": "pricing", "make": v.Make, "model": v.Model})
		est.Anomaly = true
		est.Price = 0
		est.Warnings = append(est.Warnings, "the model produced a negative value, the estimate is unreliable")
	}
	est.Formatted = FormatPrice(est.Price)
	ev.Price = est.Price
	ev.RawOutput = out
	return est, nil
}

// knownMake returns mk unless it is missing from the reference vocabulary.
// Sinks use it as a label, so unseen values must not reach them.
func knownMake(mk string, unknown []model.UnknownCategory) string {
	for _, u := range unknown {
		if u.Column == model.ColumnMake {
			return ""
		}
	}
	return mk
}

func (e *Estimator) reportUnknown(unknown []model.UnknownCategory, at time.Time) {
	rec, _ := e.sink.(metrics.UnknownCategoryRecorder)
	for _, u := range unknown {
		e.log.Debugw("unknown category", map[string]any{"column": u.Column, "value": u.Value})
		if rec == nil {
			continue
		}
		if err := rec.RecordUnknownCategory(metrics.UnknownCategoryEvent{Column: u.Column, Value: u.Value, Time: at}); err != nil {
			e.log.Errorf("record unknown category: %v", err)
		}
	}
}

func (e *Estimator) rangeWarnings(v model.Vehicle, columns []string) []string {
	var out []string
	for _, c := range columns {
		p, ok := e.stats.Scale(c)
		if !ok {
			continue
		}
		msg := fmt.Sprintf("%s %g is outside the reference range [%g, %g], the estimate is extrapolated",
			c, v.Number(c), p.Min, p.Max)
		e.log.Warnf("%s", msg)
		out = append(out, msg)
	}
	return out
}
