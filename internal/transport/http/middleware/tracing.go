package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingOptions customises the tracing middleware behaviour.
type TracingOptions struct {
	TracerProvider trace.TracerProvider
	Propagators    propagation.TextMapPropagator
	Additional     []otelgin.Option
}

// Tracing starts a server span per request. Unset options fall back to the global provider
// and propagator, so the middleware is a no-op until tracing is configured.
func Tracing(service string, opts TracingOptions) gin.HandlerFunc {
	options := make([]otelgin.Option, 0, len(opts.Additional)+2)
	if opts.TracerProvider != nil {
		options = append(options, otelgin.WithTracerProvider(opts.TracerProvider))
	}
	if opts.Propagators != nil {
		options = append(options, otelgin.WithPropagators(opts.Propagators))
	}
	options = append(options, opts.Additional...)

	if service == "" {
		service = "feedformly"
	}
	return otelgin.Middleware(service, options...)
}
