// Package notify delivers verification codes to account owners.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/logger"
)

// LoggingNotifier records verification dispatches instead of delivering them.
// With revealCodes set the plain code is logged so local sign-ups can be completed without SMTP.
type LoggingNotifier struct {
	logger      *zap.Logger
	revealCodes bool
}

func NewLoggingNotifier(log *zap.Logger, revealCodes bool) *LoggingNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingNotifier{logger: log, revealCodes: revealCodes}
}

func (n *LoggingNotifier) SendVerificationCode(_ context.Context, notice domain.VerificationNotice) error {
	code := logger.MaskCode(notice.Code)
	if n.revealCodes {
		code = notice.Code
	}

	n.logger.Info("dispatch verification code",
		zap.String("username", notice.Username),
		zap.String("email", logger.MaskEmail(notice.Email)),
		zap.String("code", code),
		zap.Time("expires_at", notice.ExpiresAt),
	)
	return nil
}

var _ port.VerificationNotifier = (*LoggingNotifier)(nil)
