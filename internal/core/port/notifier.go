package port

import (
	"context"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

// VerificationNotifier delivers verification codes to account owners.
type VerificationNotifier interface {
	SendVerificationCode(ctx context.Context, notice domain.VerificationNotice) error
}
