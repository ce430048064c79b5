package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/Amlan029/FeedFormly/internal/core/port"
)

const defaultRateLimitPrefix = "ratelimit"

var errNonPositiveWindow = errors.New("window must be positive")

// SlidingWindowConfig defines configuration for the sliding window limiter.
type SlidingWindowConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// RateLimitRepository persists rate-limit attempts in Redis sorted sets.
type RateLimitRepository struct {
	client *red.Client
	cfg    SlidingWindowConfig
	seq    atomic.Uint64
}

// NewRateLimitRepository constructs a repository using the provided Redis client and config.
func NewRateLimitRepository(client *red.Client, cfg SlidingWindowConfig) *RateLimitRepository {
	if strings.TrimSpace(cfg.KeyPrefix) == "" {
		cfg.KeyPrefix = defaultRateLimitPrefix
	}
	return &RateLimitRepository{client: client, cfg: cfg}
}

// RecordAttempt stores the attempt and refreshes the key TTL in one round trip.
// Members carry a sequence suffix so two attempts in the same nanosecond are both counted.
func (r *RateLimitRepository) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := r.key(identifier)
	member := fmt.Sprintf("%d-%d", at.UnixNano(), r.seq.Add(1))

	_, err := r.client.TxPipelined(ctx, func(pipe red.Pipeliner) error {
		pipe.ZAdd(ctx, key, red.Z{Score: float64(at.UnixNano()), Member: member})
		if r.cfg.TTL > 0 {
			pipe.Expire(ctx, key, r.cfg.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record attempt: %w", err)
	}
	return nil
}

// CountAttempts returns how many attempts occurred within the window ending at reference time.
func (r *RateLimitRepository) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errNonPositiveWindow
	}

	min, max := scoreRange(window, reference)
	count, err := r.client.ZCount(ctx, r.key(identifier), min, max).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcount: %w", err)
	}

	return int(count), nil
}

// TrimWindow removes attempts older than the provided window relative to reference time.
func (r *RateLimitRepository) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errNonPositiveWindow
	}

	threshold := "(" + strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	if err := r.client.ZRemRangeByScore(ctx, r.key(identifier), "-inf", threshold).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyscore: %w", err)
	}

	return nil
}

// OldestAttempt returns the oldest attempt remaining inside the active window.
func (r *RateLimitRepository) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errNonPositiveWindow
	}

	min, max := scoreRange(window, reference)
	values, err := r.client.ZRangeByScoreWithScores(ctx, r.key(identifier), &red.ZRangeBy{
		Min:   min,
		Max:   max,
		Count: 1,
	}).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis zrangebyscore: %w", err)
	}

	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	return time.Unix(0, int64(values[0].Score)), true, nil
}

func (r *RateLimitRepository) key(identifier string) string {
	return r.cfg.KeyPrefix + ":" + identifier
}

func scoreRange(window time.Duration, reference time.Time) (string, string) {
	return strconv.FormatInt(reference.Add(-window).UnixNano(), 10),
		strconv.FormatInt(reference.UnixNano(), 10)
}

var _ port.RateLimitStore = (*RateLimitRepository)(nil)
