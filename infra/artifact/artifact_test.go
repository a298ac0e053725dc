package artifact

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evprice/core/prediction"
)

func linearDocument() Document {
	return Document{
		Version:        "2024-06-01",
		Kind:           KindSVR,
		Kernel:         "linear",
		Intercept:      30,
		SupportVectors: [][]float64{{1, 0, 0}, {0, 1, 0}},
		DualCoef:       []float64{2, -1},
		Features:       []string{"Model_Year", "Electric_Range", "Make_TESLA"},
		Hyperparameters: map[string]any{
			"C": 100.0, "epsilon": 0.1,
		},
		Metrics: map[string]float64{"r2": 0.91, "rmse": 3.2},
	}
}

func writeArtifact(t *testing.T, d Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	m, err := Load(writeArtifact(t, linearDocument()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Model_Year", "Electric_Range", "Make_TESLA"}, m.Features())
	got, err := m.Predict([]float64{1, 2, 1})
	require.NoError(t, err)
	// 2*(1) - 1*(2) + 30
	assert.InDelta(t, 30, got, 1e-9)

	info := m.Info()
	assert.Equal(t, "2024-06-01", info.Version)
	assert.Equal(t, KindSVR, info.Kind)
	assert.Equal(t, "linear", info.Kernel)
	assert.Equal(t, 3, info.Features)
	assert.Equal(t, 2, info.SupportVectors)
	assert.InDelta(t, 0.91, info.Metrics["r2"], 1e-9)
	assert.Equal(t, 100.0, info.Hyperparameters["C"])
}

func TestLoadRejectsBrokenArtifacts(t *testing.T) {
	cases := map[string]func(d *Document){
		"no features":      func(d *Document) { d.Features = nil },
		"duplicate column": func(d *Document) { d.Features[2] = "Model_Year" },
		"short vector":     func(d *Document) { d.SupportVectors[1] = []float64{0, 1} },
		"coef count":       func(d *Document) { d.DualCoef = []float64{1} },
		"rbf without gamma": func(d *Document) {
			d.Kernel = "rbf"
			d.Gamma = 0
		},
		"unknown kind":   func(d *Document) { d.Kind = "random_forest" },
		"unknown kernel": func(d *Document) { d.Kernel = "poly" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := linearDocument()
			mutate(&d)
			_, err := Load(writeArtifact(t, d))
			require.Error(t, err)
			assert.True(t, errors.Is(err, prediction.ErrModelUnavailable), err.Error())
		})
	}
}

func TestLoadMissingOrMalformed(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.Is(err, prediction.ErrModelUnavailable))

	_, err = Decode(strings.NewReader(`{"features": [`))
	assert.True(t, errors.Is(err, prediction.ErrModelUnavailable))
}

func TestDefaultKernelIsRBF(t *testing.T) {
	d := linearDocument()
	d.Kernel = ""
	d.Gamma = 0.5
	m, err := d.Model()
	require.NoError(t, err)
	assert.Equal(t, string(prediction.KernelRBF), m.Info().Kernel)
}
