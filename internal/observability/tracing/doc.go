// Package tracing provides the OpenTelemetry tracer and HTTP server spans.
//
// The tracer is read from the global provider on every call, so installing a
// provider with otel.SetTracerProvider takes effect immediately. Without one
// spans are no-ops.
package tracing
