// Package instrumentation wires OpenTelemetry metrics with a Prometheus
// exporter.
//
// The server runs over stdio, so metrics are exposed on a dedicated HTTP
// port rather than the transport itself. When instrumentation is disabled
// the Provider and its Metrics recorder degrade to no-ops, letting callers
// record unconditionally.
package instrumentation
