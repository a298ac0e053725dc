package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evprice/config"
	"github.com/kilianp07/evprice/core/factory"
	"github.com/kilianp07/evprice/core/features"
	coremetrics "github.com/kilianp07/evprice/core/metrics"
	"github.com/kilianp07/evprice/core/model"
	"github.com/kilianp07/evprice/infra/artifact"
	infradataset "github.com/kilianp07/evprice/infra/dataset"
)

const referenceCSV = "../infra/dataset/testdata/vehicles.csv"

// writeConstantModel stores a linear model whose single support vector is
// zero, so every prediction equals intercept.
func writeConstantModel(t *testing.T, intercept float64) string {
	t.Helper()
	f, err := os.Open(referenceCSV)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	ds, err := infradataset.ReadCSV(context.Background(), f, ',')
	require.NoError(t, err)
	stats, err := features.Build(ds)
	require.NoError(t, err)
	names := stats.FeatureNames()

	path := filepath.Join(t.TempDir(), "model.json")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, artifact.Write(out, artifact.Document{
		Version:        "test",
		Kind:           artifact.KindSVR,
		Kernel:         "linear",
		Intercept:      intercept,
		SupportVectors: [][]float64{make([]float64, len(names))},
		DualCoef:       []float64{1},
		Features:       names,
	}))
	require.NoError(t, out.Close())
	return path
}

func testConfig(artifactPath string, demo bool) *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Address: "127.0.0.1:0"},
		Dataset: config.DatasetConfig{ModuleConfig: factory.ModuleConfig{
			Type: "csv",
			Conf: map[string]any{"path": referenceCSV},
		}},
		Model: config.ModelConfig{ArtifactPath: artifactPath, DemoFallback: demo},
		Metrics: coremetrics.Config{
			Sinks: []factory.ModuleConfig{{Type: "nop"}},
		},
	}
	cfg.SetDefaults()
	return cfg
}

func teslaBody() string {
	year, rng := 2022, 300.0
	in := model.VehicleInput{
		Make:                "TESLA",
		Model:               "MODEL 3",
		ModelYear:           &year,
		EVType:              "Battery Electric Vehicle (BEV)",
		CAFVEligibility:     "Clean Alternative Fuel Vehicle Eligible",
		ElectricRange:       &rng,
		County:              "King",
		ElectricUtility:     "CITY OF SEATTLE - (WA)|CITY OF TACOMA - (WA)",
		LegislativeDistrict: "43",
		City:                "Seattle",
	}
	b, _ := json.Marshal(in)
	return string(b)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
	h.ServeHTTP(rec, req)
	return rec
}

func TestServiceServesModel(t *testing.T) {
	svc, err := New(context.Background(), testConfig(writeConstantModel(t, 30), false))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	assert.True(t, svc.Estimator.Ready())
	assert.Equal(t, 4, svc.Dataset.Len())

	rec := post(t, svc.Handler(), teslaBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var est model.Estimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.InDelta(t, 30000.0, est.Price, 1e-6)
	assert.Equal(t, "$30,000.00", est.Formatted)
	assert.False(t, est.Demo)

	rec = httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServiceDemoFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	svc, err := New(context.Background(), testConfig(missing, true))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	assert.False(t, svc.Estimator.Ready())
	rec := post(t, svc.Handler(), teslaBody())
	require.Equal(t, http.StatusOK, rec.Code)
	var est model.Estimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.True(t, est.Demo)
	assert.Equal(t, "$35,750.00", est.Formatted)

	rec = httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServiceWithoutModel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	svc, err := New(context.Background(), testConfig(missing, false))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	rec := post(t, svc.Handler(), teslaBody())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "model_unavailable")
}

func TestBuildErrors(t *testing.T) {
	cfg := testConfig("", true)
	cfg.Dataset.Type = "excel"
	_, err := Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "dataset source")

	cfg = testConfig("", true)
	cfg.Dataset.Conf = map[string]any{"path": filepath.Join(t.TempDir(), "none.csv")}
	_, err = Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "load dataset")

	cfg = testConfig("", true)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "graphite"}}
	_, err = Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "metrics sink")
}

func TestRunStopsOnCancel(t *testing.T) {
	svc, err := New(context.Background(), testConfig("", true))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
