package port

import (
	"context"
	"time"
)

// RateLimitStore keeps per-key attempt timestamps for sliding-window limits. Keys have the
// form "<rule>:<client ip>".
type RateLimitStore interface {
	TrimWindow(ctx context.Context, key string, window time.Duration, reference time.Time) error
	CountAttempts(ctx context.Context, key string, window time.Duration, reference time.Time) (int, error)
	RecordAttempt(ctx context.Context, key string, at time.Time) error
	OldestAttempt(ctx context.Context, key string, window time.Duration, reference time.Time) (time.Time, bool, error)
}
