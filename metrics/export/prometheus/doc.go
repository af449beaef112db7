// Package prometheus provides Prometheus collectors for gateway metrics.
//
// [NewPrometheusExporter] accepts an [edgegate.Gateway] and exposes an
// [net/http.Handler] that renders all gateway counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// edgegate_*_total; the single histogram is edgegate_verify_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate gateway state.
package prometheus
