package prediction

import "errors"

// ErrModelUnavailable is returned when no usable model is loaded or the
// model cannot accept the provided vector.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// ErrShapeMismatch is returned, alongside ErrModelUnavailable, when a vector
// does not have the width the model was trained on.
var ErrShapeMismatch = errors.New("feature vector width mismatch")

// Predictor produces a scalar estimate from an encoded feature vector.
type Predictor interface {
	// Predict returns the model output for x.
	Predict(x []float64) (float64, error)
	// Features returns the ordered column names the model expects.
	Features() []string
}

// Info describes a loaded model for display purposes.
type Info struct {
	Version         string             `json:"version"`
	Kind            string             `json:"kind"`
	Kernel          string             `json:"kernel"`
	Features        int                `json:"features"`
	SupportVectors  int                `json:"support_vectors"`
	Hyperparameters map[string]any     `json:"hyperparameters,omitempty"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

// Describer is implemented by predictors able to describe themselves.
type Describer interface {
	Info() Info
}
