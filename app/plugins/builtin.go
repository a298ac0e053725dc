package plugins

import (
	"fmt"

	"github.com/kilianp07/evprice/config"
	"github.com/kilianp07/evprice/core/prediction"
	"github.com/kilianp07/evprice/infra/artifact"

	// dataset sources and metric sinks register themselves
	_ "github.com/kilianp07/evprice/infra/dataset"
	_ "github.com/kilianp07/evprice/infra/metrics"
)

func init() {
	RegisterPredictor("svr", func(cfg config.ModelConfig) (prediction.Predictor, error) {
		if cfg.ArtifactPath == "" {
			return nil, fmt.Errorf("%w: no artifact_path configured", prediction.ErrModelUnavailable)
		}
		m, err := artifact.Load(cfg.ArtifactPath)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}
