package features

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ScalingParameters holds the standardization statistics of a numeric column.
// Std is the population standard deviation.
type ScalingParameters struct {
	Column string
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Count  int
}

func newScalingParameters(column string, values []float64) ScalingParameters {
	p := ScalingParameters{Column: column, Count: len(values)}
	if len(values) == 0 {
		return p
	}
	p.Mean, p.Std = stat.PopMeanStdDev(values, nil)
	p.Min = floats.Min(values)
	p.Max = floats.Max(values)
	return p
}

// Degenerate reports a zero (or undefined) standard deviation.
func (p ScalingParameters) Degenerate() bool {
	return p.Std == 0 || math.IsNaN(p.Std)
}

// Standardize returns (v - mean) / std, or 0 when the column is degenerate.
func (p ScalingParameters) Standardize(v float64) float64 {
	if p.Degenerate() {
		return 0
	}
	return (v - p.Mean) / p.Std
}

// Observed reports whether v lies within the range seen in the reference data.
func (p ScalingParameters) Observed(v float64) bool {
	return p.Count > 0 && v >= p.Min && v <= p.Max
}
