package prediction

import "fmt"

// MockPredictor returns a configured value, or the sum of the vector scaled
// by Weight when Value is nil. It checks the vector width like a real model.
type MockPredictor struct {
	Columns []string
	Value   *float64
	Weight  float64
	Err     error
}

// Features returns the configured columns.
func (m MockPredictor) Features() []string { return append([]string(nil), m.Columns...) }

// Predict returns the configured output.
func (m MockPredictor) Predict(x []float64) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if len(x) != len(m.Columns) {
		return 0, fmt.Errorf("%w: %w: got %d, want %d", ErrModelUnavailable, ErrShapeMismatch, len(x), len(m.Columns))
	}
	if m.Value != nil {
		return *m.Value, nil
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum * m.Weight, nil
}

// Info describes the mock.
func (m MockPredictor) Info() Info {
	return Info{Version: "mock", Kind: "mock", Features: len(m.Columns)}
}
