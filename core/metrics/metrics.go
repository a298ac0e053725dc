package metrics

import "time"

// Outcome classifies how an estimate request ended.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeDemo        Outcome = "demo"
	OutcomeAnomaly     Outcome = "anomaly"
	OutcomeInvalid     Outcome = "invalid_input"
	OutcomeUnavailable Outcome = "model_unavailable"
)

// EstimateEvent describes one pass through the pricing pipeline.
type EstimateEvent struct {
	Outcome Outcome
	// Make is the validated brand when it belongs to the reference
	// vocabulary, empty otherwise.
	Make              string
	Price             float64
	RawOutput         float64
	UnknownCategories int
	Latency           time.Duration
	Time              time.Time
}

// MetricsSink records estimate events.
type MetricsSink interface {
	RecordEstimate(ev EstimateEvent) error
}

// UnknownCategoryEvent records an input category that the reference data
// did not contain. It is informational, the request still succeeds.
type UnknownCategoryEvent struct {
	Column string
	Value  string
	Time   time.Time
}

// UnknownCategoryRecorder records unknown category events.
type UnknownCategoryRecorder interface {
	RecordUnknownCategory(ev UnknownCategoryEvent) error
}

// DegenerateScalingRecorder records the columns whose scaling fell back to a
// constant when the statistics were built.
type DegenerateScalingRecorder interface {
	RecordDegenerateScaling(columns []string) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error               { return nil }
func (NopSink) RecordUnknownCategory(UnknownCategoryEvent) error { return nil }
func (NopSink) RecordDegenerateScaling([]string) error           { return nil }
