package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/logger"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves err against known cases. Anything unmapped is logged and
// answered with the fallback status and message so store details never leak.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	for _, cs := range cases {
		if cs.Err != nil && errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	_ = c.Error(err)
	logger.WithContext(c.Request.Context()).Error(fallbackMessage,
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
