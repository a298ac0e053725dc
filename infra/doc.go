// Package infra holds the adapters behind the core interfaces: dataset
// sources, the model artifact reader, metric sinks, error reporting and
// the MQTT responder. Core packages never import infra.
package infra
