// Package metrics defines the observability events emitted by the pricing
// pipeline and the sink interfaces that record them. Sinks such as the
// Prometheus and InfluxDB implementations in infra/metrics are built from
// configuration through NewMetricsSink; several configured sinks are combined
// into a MultiSink. Optional recorder interfaces are detected with type
// assertions so a sink only implements what it cares about.
package metrics
