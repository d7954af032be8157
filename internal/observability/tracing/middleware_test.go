package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

/* ───────── ヘルパ ───────── */

func installExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})
	return exporter
}

func attrsOf(s tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes {
		out[kv.Key] = kv.Value
	}
	return out
}

/* ───────── テスト ───────── */

func TestMiddleware_CreatesSpanNamedByRoute(t *testing.T) {
	exporter := installExporter(t)

	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/briefs/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/briefs/go-1-25", nil))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /briefs/{slug}" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "GET /briefs/{slug}")
	}
	attrs := attrsOf(spans[0])
	if attrs["http.route"].AsString() != "/briefs/{slug}" {
		t.Errorf("http.route = %q", attrs["http.route"].AsString())
	}
	if attrs["http.status_code"].AsInt64() != 200 {
		t.Errorf("http.status_code = %d", attrs["http.status_code"].AsInt64())
	}
	if attrs["http.method"].AsString() != http.MethodGet {
		t.Errorf("http.method = %q", attrs["http.method"].AsString())
	}
}

func TestMiddleware_WithoutRouterUsesPath(t *testing.T) {
	exporter := installExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "GET /health" {
		t.Fatalf("spans = %+v", spans)
	}
	if attrsOf(spans[0])["http.status_code"].AsInt64() != 200 {
		t.Error("implicit 200 not recorded")
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	installExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tags", nil))

	if traceID := rr.Header().Get(TraceIDHeader); len(traceID) != 32 {
		t.Errorf("expected 32 hex trace id, got %q", traceID)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := installExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s", got)
	}
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantError bool
	}{
		{name: "5xx marks error", status: http.StatusServiceUnavailable, wantError: true},
		{name: "4xx is not an error", status: http.StatusNotFound, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := installExporter(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			_, hasError := attrsOf(spans[0])["error"]
			if hasError != tt.wantError {
				t.Errorf("error attribute present = %v, want %v", hasError, tt.wantError)
			}
			if tt.wantError && spans[0].Status.Code != codes.Error {
				t.Errorf("status code = %v, want Error", spans[0].Status.Code)
			}
		})
	}
}
