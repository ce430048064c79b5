package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/port"
	appLogger "github.com/Amlan029/FeedFormly/internal/infra/logger"
)

// RateLimitRule configures a sliding-window limit for one route family.
type RateLimitRule struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter enforces sliding-window limits per client IP, backed by a port.RateLimitStore.
type RateLimiter struct {
	store  port.RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

type ruleResult struct {
	allowed    bool
	remaining  int
	reset      time.Time
	retryAfter time.Duration
}

// NewRateLimiter builds a reusable rate limiter middleware helper.
func NewRateLimiter(store port.RateLimitStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the limiter clock.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// PerClientIP is a rule limiting one route family per client IP.
func PerClientIP(name string, limit int, window time.Duration) RateLimitRule {
	return RateLimitRule{Name: name, Limit: limit, Window: window}
}

// RateLimit returns a Gin middleware enforcing rule under the key "<rule>:<client ip>".
// Store failures fail open.
func (rl *RateLimiter) RateLimit(rule RateLimitRule) gin.HandlerFunc {
	if rule.Name == "" {
		rule.Name = "default"
	}
	disabled := rule.Limit <= 0 || rule.Window <= 0 || rl.store == nil

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if disabled || ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rule.Name, ip)
		res, err := rl.evaluate(c, rule, key, rl.now())
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("rule", rule.Name),
				zap.String("identifier", appLogger.MaskIP(ip)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		rl.applyHeaders(c, rule, res)
		if !res.allowed {
			rl.logger.Info("rate limit exceeded",
				zap.String("rule", rule.Name),
				zap.String("identifier", appLogger.MaskIP(ip)),
				zap.Duration("retry_after", res.retryAfter),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Success: false,
				Message: fmt.Sprintf("Too many requests. Try again in %d seconds.", retrySeconds(res.retryAfter)),
				TraceID: GetTraceID(c),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) evaluate(c *gin.Context, rule RateLimitRule, key string, now time.Time) (ruleResult, error) {
	ctx := c.Request.Context()

	if err := rl.store.TrimWindow(ctx, key, rule.Window, now); err != nil {
		return ruleResult{}, err
	}

	count, err := rl.store.CountAttempts(ctx, key, rule.Window, now)
	if err != nil {
		return ruleResult{}, err
	}

	oldest, hasAttempts, err := rl.store.OldestAttempt(ctx, key, rule.Window, now)
	if err != nil {
		return ruleResult{}, err
	}

	result := ruleResult{allowed: true, reset: now.Add(rule.Window)}
	if hasAttempts {
		result.reset = oldest.Add(rule.Window)
	}
	result.retryAfter = max(result.reset.Sub(now), 0)

	if count >= rule.Limit {
		result.allowed = false
		return result, nil
	}

	if err := rl.store.RecordAttempt(ctx, key, now); err != nil {
		return ruleResult{}, err
	}
	result.remaining = max(rule.Limit-count-1, 0)

	return result, nil
}

func (rl *RateLimiter) applyHeaders(c *gin.Context, rule RateLimitRule, res ruleResult) {
	headers := c.Writer.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(res.remaining))
	headers.Set("X-RateLimit-Reset", strconv.FormatInt(res.reset.Unix(), 10))

	if !res.allowed {
		headers.Set("Retry-After", strconv.Itoa(retrySeconds(res.retryAfter)))
	}
}

func retrySeconds(d time.Duration) int {
	return max(int(math.Ceil(d.Seconds())), 0)
}
