package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

type fakeSessions struct {
	principal domain.Principal
	ok        bool
}

func (f fakeSessions) Load(*http.Request) (domain.Principal, bool) {
	return f.principal, f.ok
}

type fakeTokens struct {
	principal domain.Principal
	err       error
	lastRaw   string
}

func (f *fakeTokens) Authenticate(raw string) (domain.Principal, error) {
	f.lastRaw = raw
	return f.principal, f.err
}

func ownerRouter(sessions SessionLoader, tokens TokenAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(EnrichContext())
	router.GET("/inbox", RequireOwner(sessions, tokens), func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, principal.AccountID)
	})
	return router
}

func TestRequireOwnerFromSession(t *testing.T) {
	tokens := &fakeTokens{err: errors.New("should not be called")}
	router := ownerRouter(fakeSessions{principal: domain.Principal{AccountID: "acc-1"}, ok: true}, tokens)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/inbox", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "acc-1" {
		t.Fatalf("expected 200 acc-1, got %d %q", rr.Code, rr.Body.String())
	}
	if tokens.lastRaw != "" {
		t.Fatalf("token path should not run when the session is valid")
	}
}

func TestRequireOwnerFromBearer(t *testing.T) {
	tokens := &fakeTokens{principal: domain.Principal{AccountID: "acc-2"}}
	router := ownerRouter(fakeSessions{}, tokens)

	req := httptest.NewRequest(http.MethodGet, "/inbox", nil)
	req.Header.Set("Authorization", "bearer  abc.def.ghi ")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "acc-2" {
		t.Fatalf("expected 200 acc-2, got %d %q", rr.Code, rr.Body.String())
	}
	if tokens.lastRaw != "abc.def.ghi" {
		t.Fatalf("unexpected raw token %q", tokens.lastRaw)
	}
}

func TestRequireOwnerRejectsAnonymous(t *testing.T) {
	cases := map[string]string{
		"no header":      "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty token":    "Bearer   ",
		"rejected token": "Bearer forged",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			router := ownerRouter(fakeSessions{}, &fakeTokens{err: errors.New("invalid")})

			req := httptest.NewRequest(http.MethodGet, "/inbox", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Message != "Not Authenticated" || body.TraceID == "" {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
