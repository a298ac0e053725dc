// Package artifact reads the frozen pricing model exported at training time.
package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/evprice/core/features"
	"github.com/kilianp07/evprice/core/prediction"
)

// KindSVR is the only model kind understood so far.
const KindSVR = "svr"

// Document is the JSON form of a fitted support vector regressor. Features
// is the ordered column list the model was trained on.
type Document struct {
	Version         string             `json:"version"`
	Kind            string             `json:"kind"`
	Kernel          string             `json:"kernel"`
	Gamma           float64            `json:"gamma"`
	Intercept       float64            `json:"intercept"`
	SupportVectors  [][]float64        `json:"support_vectors"`
	DualCoef        []float64          `json:"dual_coef"`
	Features        []string           `json:"features"`
	Hyperparameters map[string]any     `json:"hyperparameters,omitempty"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

// Load reads the artifact at path. Every failure wraps
// prediction.ErrModelUnavailable.
func Load(path string) (*prediction.SVR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prediction.ErrModelUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode parses and validates an artifact.
func Decode(r io.Reader) (*prediction.SVR, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %w", prediction.ErrModelUnavailable, err)
	}
	return doc.Model()
}

// Model validates the document and builds the regressor.
func (d Document) Model() (*prediction.SVR, error) {
	if d.Kind != "" && d.Kind != KindSVR {
		return nil, fmt.Errorf("%w: unsupported model kind %q", prediction.ErrModelUnavailable, d.Kind)
	}
	if err := features.Schema(d.Features).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", prediction.ErrModelUnavailable, err)
	}
	kernel := prediction.Kernel(d.Kernel)
	if kernel == "" {
		kernel = prediction.KernelRBF
	}
	return prediction.NewSVR(prediction.SVRParams{
		Kernel:         kernel,
		Gamma:          d.Gamma,
		Intercept:      d.Intercept,
		SupportVectors: d.SupportVectors,
		DualCoef:       d.DualCoef,
		Features:       d.Features,
		Info: prediction.Info{
			Version:         d.Version,
			Kind:            KindSVR,
			Hyperparameters: d.Hyperparameters,
			Metrics:         d.Metrics,
		},
	})
}

// Write encodes d as indented JSON.
func Write(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
