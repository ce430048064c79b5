package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Amlan029/FeedFormly/internal/infra/logger"
)

const requestIDHeader = "X-Request-ID"

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID propagates X-Request-ID into the request context, generating one when the caller
// sent nothing usable.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if !validRequestID.MatchString(reqID) {
			reqID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, reqID)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey{}, reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(logger.RequestIDKey{}).(string); ok {
		return id
	}
	return ""
}
