package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

// Evaluation summarizes how well the model reproduces the expected prices of
// the reference dataset. Errors are in model units (thousands).
type Evaluation struct {
	Rows        int     `json:"rows"`
	Skipped     int     `json:"skipped"`
	MSE         float64 `json:"mse"`
	RMSE        float64 `json:"rmse"`
	R2          float64 `json:"r2"`
	MaxAbsError float64 `json:"max_abs_error"`
}

// Evaluate replays every complete row of ds through the encoder and model and
// compares the output with the row's expected price. Rows without an
// expected price or numeric attributes are skipped.
func (e *Estimator) Evaluate(ds *dataset.Dataset) (Evaluation, error) {
	if e.predictor == nil {
		if e.unavailable != nil {
			return Evaluation{}, fmt.Errorf("%w: %v", ErrModelUnavailable, e.unavailable)
		}
		return Evaluation{}, ErrModelUnavailable
	}
	var (
		res       Evaluation
		estimates []float64
		values    []float64
		firstErr  error
	)
	ds.Each(func(_ int, r dataset.Row) {
		if firstErr != nil {
			return
		}
		want := r.Number(model.ColumnExpectedPrice)
		v, ok := r.Vehicle()
		if !ok || math.IsNaN(want) {
			res.Skipped++
			return
		}
		got, err := e.predictor.Predict(e.encoder.Encode(v).Vector)
		if err != nil {
			firstErr = err
			return
		}
		estimates = append(estimates, got)
		values = append(values, want)
	})
	if firstErr != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", firstErr)
	}
	if len(values) == 0 {
		return Evaluation{}, fmt.Errorf("evaluate: no row carries an expected price")
	}
	res.Rows = len(values)
	var sq float64
	for i := range values {
		d := estimates[i] - values[i]
		sq += d * d
		res.MaxAbsError = math.Max(res.MaxAbsError, math.Abs(d))
	}
	res.MSE = sq / float64(len(values))
	res.RMSE = math.Sqrt(res.MSE)
	res.R2 = stat.RSquaredFrom(estimates, values, nil)
	return res, nil
}
