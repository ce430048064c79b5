package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appLogger "github.com/Amlan029/FeedFormly/internal/infra/logger"
)

// Logger emits one access log line per request. Client IPs are masked; query strings are
// dropped because check-username-unique carries user input there.
func Logger(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := []zap.Field{
			zap.String("trace_id", GetTraceID(c)),
			zap.String("request_id", requestIDFromContext(c.Request.Context())),
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", appLogger.MaskIP(c.ClientIP())),
		}

		if principal, ok := CurrentPrincipal(c); ok {
			fields = append(fields, zap.String("account_id", principal.AccountID))
		}

		switch {
		case len(c.Errors) > 0:
			log.Error("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
		case c.Writer.Status() >= 500:
			log.Warn("request completed with server error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
