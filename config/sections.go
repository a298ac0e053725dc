package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/evprice/core/factory"
	"github.com/kilianp07/evprice/core/pricing"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address             string `json:"address"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if !strings.Contains(c.Address, ":") {
		return fmt.Errorf("address %q must be host:port", c.Address)
	}
	return nil
}

// ReadTimeout is the read timeout as a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout is the write timeout as a duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// DatasetConfig selects the reference dataset source, e.g.
// {type: csv, conf: {path: Electric_cars_dataset.csv}}.
type DatasetConfig struct {
	factory.ModuleConfig `json:",squash"`
}

// Validate checks that a source type is named.
func (c DatasetConfig) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("type is required (csv, sqlite or postgres)")
	}
	return nil
}

// ModelConfig locates the frozen model.
type ModelConfig struct {
	// Type selects the predictor loader, "svr" by default.
	Type         string `json:"type"`
	ArtifactPath string `json:"artifact_path"`
	// DemoFallback serves a labeled placeholder price while no model can
	// be loaded instead of failing requests.
	DemoFallback bool    `json:"demo_fallback"`
	DemoPrice    float64 `json:"demo_price"`
}

// SetDefaults applies sane defaults.
func (c *ModelConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = "svr"
	}
	if c.DemoPrice <= 0 {
		c.DemoPrice = pricing.DefaultDemoPrice
	}
}

// Validate rejects a configuration that can never price anything.
func (c ModelConfig) Validate() error {
	if c.ArtifactPath == "" && !c.DemoFallback {
		return fmt.Errorf("artifact_path is required unless demo_fallback is enabled")
	}
	return nil
}

// ValidationConfig bounds the accepted numeric inputs.
type ValidationConfig struct {
	MinModelYear     int     `json:"min_model_year"`
	MaxModelYear     int     `json:"max_model_year"`
	MaxElectricRange float64 `json:"max_electric_range"`
}

// SetDefaults fills unset bounds from pricing.DefaultLimits.
func (c *ValidationConfig) SetDefaults() {
	d := pricing.DefaultLimits(time.Now())
	if c.MinModelYear == 0 {
		c.MinModelYear = d.MinModelYear
	}
	if c.MaxModelYear == 0 {
		c.MaxModelYear = d.MaxModelYear
	}
	if c.MaxElectricRange == 0 {
		c.MaxElectricRange = d.MaxElectricRange
	}
}

// Validate checks the bounds are ordered.
func (c ValidationConfig) Validate() error {
	if c.MinModelYear > c.MaxModelYear {
		return fmt.Errorf("min_model_year %d is after max_model_year %d", c.MinModelYear, c.MaxModelYear)
	}
	if c.MaxElectricRange <= 0 {
		return fmt.Errorf("max_electric_range must be positive")
	}
	return nil
}

// Limits converts the section for the Estimator.
func (c ValidationConfig) Limits() pricing.Limits {
	return pricing.Limits{
		MinModelYear:     c.MinModelYear,
		MaxModelYear:     c.MaxModelYear,
		MaxElectricRange: c.MaxElectricRange,
	}
}

// LoggingConfig sets the minimum log level.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level name.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	}
	return fmt.Errorf("unknown level %q", c.Level)
}

// SentryConfig configures error reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
}

// Enabled reports whether a DSN is configured.
func (c SentryConfig) Enabled() bool { return c.DSN != "" }
