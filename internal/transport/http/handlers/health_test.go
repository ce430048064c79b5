package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		opts   []HealthOption
		status int
		checks map[string]string
	}{
		{
			name:   "no checks",
			status: http.StatusOK,
			checks: map[string]string{},
		},
		{
			name: "all healthy",
			opts: []HealthOption{
				WithReadinessCheck("database", func(context.Context) error { return nil }),
				WithReadinessCheck("redis", func(context.Context) error { return nil }),
			},
			status: http.StatusOK,
			checks: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name: "redis down",
			opts: []HealthOption{
				WithReadinessCheck("database", func(context.Context) error { return nil }),
				WithReadinessCheck("redis", func(context.Context) error { return errors.New("connection refused") }),
			},
			status: http.StatusServiceUnavailable,
			checks: map[string]string{"database": "ok", "redis": "unavailable"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.opts...)
			r := gin.New()
			r.GET("/readyz", h.Readiness)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			var resp ReadinessResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Checks) != len(tc.checks) {
				t.Fatalf("expected checks %v, got %v", tc.checks, resp.Checks)
			}
			for name, want := range tc.checks {
				if resp.Checks[name] != want {
					t.Fatalf("check %s: expected %q, got %q", name, want, resp.Checks[name])
				}
			}
		})
	}
}

func TestStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler()
	r := gin.New()
	r.GET("/healthz", h.Status)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || resp.Status != "ok" || resp.StartedAt.IsZero() {
		t.Fatalf("unexpected health response %d %+v", w.Code, resp)
	}
}
