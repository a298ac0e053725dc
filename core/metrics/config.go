package metrics

import "github.com/kilianp07/evprice/core/factory"

// Config defines the metric sinks and the Prometheus listener.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusPort is the listen address of the /metrics endpoint, e.g. ":9100".
	// Empty disables the endpoint.
	PrometheusPort string `json:"prometheus_port"`
}
