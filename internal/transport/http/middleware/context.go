package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

const (
	// TraceIDHeader is the HTTP header name for trace ID
	TraceIDHeader = "X-Trace-ID"
	// TraceIDKey is the gin context key for trace ID
	TraceIDKey = "trace_id"

	principalKey = "principal"
)

// EnrichContext assigns a trace id to each request. An active OpenTelemetry span wins over the
// header so logs and spans correlate.
func EnrichContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := ""
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			traceID = sc.TraceID().String()
		}
		if traceID == "" {
			traceID = c.GetHeader(TraceIDHeader)
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID retrieves the trace ID from the context
func GetTraceID(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}

// SetPrincipal attaches the signed-in owner to the request.
func SetPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalKey, principal)
}

// CurrentPrincipal returns the owner attached by RequireOwner.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	if !ok || principal.IsZero() {
		return domain.Principal{}, false
	}
	return principal, true
}
