// Package plugins links the built-in modules into the binary and maps model
// types to predictor loaders.
package plugins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kilianp07/evprice/config"
	"github.com/kilianp07/evprice/core/prediction"
)

// PredictorFactory loads a predictor described by the model section.
type PredictorFactory func(cfg config.ModelConfig) (prediction.Predictor, error)

var predictors = map[string]PredictorFactory{}

// RegisterPredictor makes f available as model type name, replacing any
// previous loader. It is meant to be called from init.
func RegisterPredictor(name string, f PredictorFactory) { predictors[name] = f }

// NewPredictor loads the predictor named by cfg.Type.
func NewPredictor(cfg config.ModelConfig) (prediction.Predictor, error) {
	f, ok := predictors[cfg.Type]
	if !ok {
		names := make([]string, 0, len(predictors))
		for n := range predictors {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: unknown model type %q (known: %s)",
			prediction.ErrModelUnavailable, cfg.Type, strings.Join(names, ", "))
	}
	return f(cfg)
}
