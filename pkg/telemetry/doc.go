// Package telemetry records renderer and tracker activity as Prometheus
// metrics and names the OpenTelemetry tracer used for engine spans.
//
// A *Metrics is safe to share between a vdom.Renderer (WithMetrics) and a
// reactive.Tracker (WithObserver). All methods accept a nil receiver, so
// callers never need to check whether metrics are enabled.
package telemetry
