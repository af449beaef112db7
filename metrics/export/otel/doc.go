// Package otel provides OpenTelemetry metric exporter bindings for gateway
// counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// gateway metric and Int64ObservableGauge per histogram bucket. A single
// callback reads [edgegate.Gateway.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate gateway state.
package otel
