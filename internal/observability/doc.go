// Package observability groups logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus business and store metrics
//   - tracing: OpenTelemetry tracer and HTTP server spans
package observability
