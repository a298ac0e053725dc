package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evprice/infra/mqtt"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  address: ":9000"
dataset:
  type: csv
  conf:
    path: "Electric_cars_dataset.csv"
model:
  artifact_path: "svr_model.json"
validation:
  max_electric_range: 600
metrics:
  prometheus_port: ":9100"
  sinks:
    - type: "nop"
mqtt:
  broker: "tcp://localhost:1883"
  username: "user"
  qos:
    response: 1
sentry:
  dsn: ""
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.read_timeout", cfg.Server.ReadTimeout(), 10 * time.Second},
		{"dataset.type", cfg.Dataset.Type, "csv"},
		{"dataset.conf.path", cfg.Dataset.Conf["path"], "Electric_cars_dataset.csv"},
		{"model.artifact_path", cfg.Model.ArtifactPath, "svr_model.json"},
		{"model.demo_price", cfg.Model.DemoPrice, 35750.0},
		{"validation.min_model_year", cfg.Validation.MinModelYear, 1997},
		{"validation.max_model_year", cfg.Validation.MaxModelYear, time.Now().Year() + 1},
		{"validation.max_electric_range", cfg.Validation.MaxElectricRange, 600.0},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"metrics.sinks", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.request_topic", cfg.MQTT.RequestTopic, mqtt.DefaultRequestTopic},
		{"mqtt.qos.response", cfg.MQTT.QoS["response"], byte(1)},
		{"sentry.enabled", cfg.Sentry.Enabled(), false},
		{"logging.level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "dataset": {"type": "sqlite", "conf": {"path": "ev.db"}},
  "model": {"artifact_path": "a.json"}
}`)
	t.Setenv("K_MODEL__ARTIFACT_PATH", "b.json")
	t.Setenv("K_MODEL__DEMO_FALLBACK", "true")
	t.Setenv("K_SERVER__ADDRESS", "127.0.0.1:8081")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.json", cfg.Model.ArtifactPath)
	assert.True(t, cfg.Model.DemoFallback)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Dataset.Type)
}

func TestLoadEnvFile(t *testing.T) {
	envPath := writeConfig(t, ".env", "K_MODEL__ARTIFACT_PATH=from-env-file.json\n")
	require.NoError(t, LoadEnvFile(envPath))
	t.Cleanup(func() { _ = os.Unsetenv("K_MODEL__ARTIFACT_PATH") })

	path := writeConfig(t, "config.yaml", "dataset:\n  type: csv\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file.json", cfg.Model.ArtifactPath)

	assert.NoError(t, LoadEnvFile(""))
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"no dataset":     "model:\n  artifact_path: m.json\n",
		"no model":       "dataset:\n  type: csv\n",
		"bad years":      "dataset:\n  type: csv\nmodel:\n  demo_fallback: true\nvalidation:\n  min_model_year: 2030\n  max_model_year: 2020\n",
		"bad log level":  "dataset:\n  type: csv\nmodel:\n  demo_fallback: true\nlogging:\n  level: loud\n",
		"bad address":    "dataset:\n  type: csv\nmodel:\n  demo_fallback: true\nserver:\n  address: localhost\n",
		"mqtt needs tls": "dataset:\n  type: csv\nmodel:\n  demo_fallback: true\nmqtt:\n  broker: tcp://b:1883\n  use_tls: true\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}

	_, err := Load(writeConfig(t, "config.toml", ""))
	assert.Error(t, err)
}
