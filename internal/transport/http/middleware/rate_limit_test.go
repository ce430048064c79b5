package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type fakeRateLimitStore struct {
	trimErr   error
	count     int
	countErr  error
	oldest    time.Time
	hasOldest bool
	oldestErr error
	recordErr error

	trimmedKeys []string
	countedKeys []string
	recordedKey string
	recordCalls int
}

func (f *fakeRateLimitStore) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	f.trimmedKeys = append(f.trimmedKeys, identifier)
	return f.trimErr
}

func (f *fakeRateLimitStore) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	f.countedKeys = append(f.countedKeys, identifier)
	return f.count, f.countErr
}

func (f *fakeRateLimitStore) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	f.recordedKey = identifier
	f.recordCalls++
	return f.recordErr
}

func (f *fakeRateLimitStore) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	return f.oldest, f.hasOldest, f.oldestErr
}

func TestRateLimiterAllowsWhenBelowLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	oldest := now.Add(-30 * time.Second)

	store := &fakeRateLimitStore{
		count:     2,
		oldest:    oldest,
		hasOldest: true,
	}

	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := gin.New()
	router.Use(limiter.RateLimit(PerClientIP("sign-in", 5, time.Minute)))
	router.POST("/api/sign-in", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sign-in", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if store.recordCalls != 1 {
		t.Fatalf("expected record attempt to be called once, got %d", store.recordCalls)
	}

	if got := rr.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Fatalf("expected limit header 5, got %q", got)
	}

	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Fatalf("expected remaining header 2, got %q", got)
	}

	expectedReset := oldest.Add(time.Minute).Unix()
	if got := rr.Header().Get("X-RateLimit-Reset"); got != strconv.FormatInt(expectedReset, 10) {
		t.Fatalf("expected reset header %d, got %q", expectedReset, got)
	}

	if got := rr.Header().Get("Retry-After"); got != "" {
		t.Fatalf("expected no retry-after header, got %q", got)
	}
}

func TestRateLimiterBlocksWhenLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	oldest := now.Add(-30 * time.Second)

	store := &fakeRateLimitStore{
		count:     5,
		oldest:    oldest,
		hasOldest: true,
	}

	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := gin.New()
	router.Use(limiter.RateLimit(PerClientIP("sign-in", 5, time.Minute)))
	router.POST("/api/sign-in", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sign-in", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}

	if store.recordCalls != 0 {
		t.Fatalf("expected no record attempt when blocked, got %d", store.recordCalls)
	}

	if got := rr.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected retry-after 30, got %q", got)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.Success || resp.Message != "Too many requests. Try again in 30 seconds." {
		t.Fatalf("unexpected rate limit response %+v", resp)
	}

	if store.countedKeys[0] != "sign-in:192.0.2.1" {
		t.Fatalf("unexpected storage key %q", store.countedKeys[0])
	}
}

func TestRateLimiterKeysByRuleAndClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeRateLimitStore{}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t))

	router := gin.New()
	router.POST("/sign-up", limiter.RateLimit(PerClientIP("sign-up", 5, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/sign-up", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if store.recordedKey != "sign-up:198.51.100.7" {
		t.Fatalf("unexpected storage key %q", store.recordedKey)
	}
}

func TestRateLimiterFailsOpenOnStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)

	store := &fakeRateLimitStore{
		trimErr: errors.New("redis down"),
	}

	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := gin.New()
	router.Use(limiter.RateLimit(PerClientIP("sign-in", 5, time.Minute)))
	router.POST("/api/sign-in", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sign-in", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 when failing open, got %d", rr.Code)
	}

	if store.recordCalls != 0 {
		t.Fatalf("expected no record attempt on failure, got %d", store.recordCalls)
	}
}

func TestRateLimiterDisabledRuleSkipsStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeRateLimitStore{count: 100}
	limiter := NewRateLimiter(store, zaptest.NewLogger(t))

	router := gin.New()
	router.POST("/api/sign-in", limiter.RateLimit(PerClientIP("sign-in", 0, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sign-in", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(store.trimmedKeys) != 0 || store.recordCalls != 0 {
		t.Fatalf("disabled rule must not touch the store")
	}
}
