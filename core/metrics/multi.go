package metrics

import "errors"

// MultiSink fans events out to several sinks. A failing sink does not keep
// the others from recording.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEstimate forwards the event to all sinks and joins their errors.
func (m *MultiSink) RecordEstimate(ev EstimateEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordEstimate(ev))
	}
	return errors.Join(errs...)
}

// RecordUnknownCategory forwards to sinks implementing UnknownCategoryRecorder.
func (m *MultiSink) RecordUnknownCategory(ev UnknownCategoryEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(UnknownCategoryRecorder); ok {
			errs = append(errs, rec.RecordUnknownCategory(ev))
		}
	}
	return errors.Join(errs...)
}

// RecordDegenerateScaling forwards to sinks implementing DegenerateScalingRecorder.
func (m *MultiSink) RecordDegenerateScaling(columns []string) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(DegenerateScalingRecorder); ok {
			errs = append(errs, rec.RecordDegenerateScaling(columns))
		}
	}
	return errors.Join(errs...)
}
