package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

func newTestManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(config.SessionSettings{
		Secret:     secret,
		CookieName: "ff_test",
		MaxAge:     time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	return m
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m := newTestManager(t, "0123456789abcdef0123456789abcdef")
	principal := domain.Principal{AccountID: "acc-1", Username: "alice"}

	rec := httptest.NewRecorder()
	if err := m.Save(rec, httptest.NewRequest(http.MethodPost, "/api/sign-in", nil), principal); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	cookie := cookieFrom(t, rec, "ff_test")
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/get-messages", nil)
	req.AddCookie(cookie)

	got, ok := m.Load(req)
	if !ok {
		t.Fatalf("expected session to load")
	}
	if got != principal {
		t.Fatalf("unexpected principal %+v", got)
	}
}

func TestLoadRejectsForeignCookie(t *testing.T) {
	ours := newTestManager(t, "0123456789abcdef0123456789abcdef")
	theirs := newTestManager(t, "fedcba9876543210fedcba9876543210")

	rec := httptest.NewRecorder()
	if err := theirs.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), domain.Principal{AccountID: "x", Username: "mallory"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookieFrom(t, rec, "ff_test"))

	if _, ok := ours.Load(req); ok {
		t.Fatalf("cookie signed with another secret must not load")
	}
}

func TestLoadWithoutCookie(t *testing.T) {
	m := newTestManager(t, "secret")
	if _, ok := m.Load(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("expected no session")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	m := newTestManager(t, "secret")

	rec := httptest.NewRecorder()
	if err := m.Clear(rec, httptest.NewRequest(http.MethodPost, "/api/sign-out", nil)); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	cookie := cookieFrom(t, rec, "ff_test")
	if cookie.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got MaxAge %d", cookie.MaxAge)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(config.SessionSettings{}); err == nil {
		t.Fatalf("expected error without secret")
	}
}
