package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingSpanFeedsTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := gin.New()
	r.Use(Tracing("feedformly-test", TracingOptions{TracerProvider: tp}))
	r.Use(EnrichContext())
	r.GET("/api/get-messages", func(c *gin.Context) {
		c.String(http.StatusOK, GetTraceID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/get-messages", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	want := spans[0].SpanContext().TraceID().String()
	if got := w.Body.String(); got != want {
		t.Fatalf("expected trace id %q from span, got %q", want, got)
	}
	if got := w.Header().Get(TraceIDHeader); got != want {
		t.Fatalf("expected %s header %q, got %q", TraceIDHeader, want, got)
	}
}

func TestTracingWithoutProviderFallsBackToGeneratedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Tracing("", TracingOptions{}))
	r.Use(EnrichContext())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, GetTraceID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("expected a trace id")
	}
}
