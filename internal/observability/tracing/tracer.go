package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of every span the service emits.
const TracerName = "signal-feed"

// GetTracer returns the service tracer from the current global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "keyset.page")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
