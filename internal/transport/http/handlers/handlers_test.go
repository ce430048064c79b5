package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/repository/memory"
	"github.com/Amlan029/FeedFormly/internal/transport/http/middleware"
	"github.com/Amlan029/FeedFormly/internal/usecase"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "plain:"+password, nil
}

type stubTokens struct{}

func (stubTokens) Issue(p domain.Principal) (string, time.Time, error) {
	return "token-" + p.AccountID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (stubTokens) Parse(raw string) (domain.Principal, error) {
	return domain.Principal{}, errors.New("not supported")
}

type codeNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (n *codeNotifier) SendVerificationCode(_ context.Context, notice domain.VerificationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	if n.codes == nil {
		n.codes = make(map[string]string)
	}
	n.codes[notice.Username] = notice.Code
	return nil
}

type fakeGenerator struct {
	text string
	err  error
}

func (g fakeGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

type fixture struct {
	store        *memory.AccountRepository
	notifier     *codeNotifier
	registration *usecase.RegistrationService
	verification *usecase.VerificationService
	intake       *usecase.IntakeService
	inbox        *usecase.InboxService
	auth         *usecase.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators returned error: %v", err)
	}

	store := memory.NewAccountRepository()
	notifier := &codeNotifier{}
	verification := usecase.NewVerificationService(store, nil, nil, config.VerificationSettings{}, nil)
	return &fixture{
		store:        store,
		notifier:     notifier,
		registration: usecase.NewRegistrationService(store, plainHasher{}, verification, notifier, nil, nil, nil),
		verification: verification,
		intake:       usecase.NewIntakeService(store, nil, nil, nil),
		inbox:        usecase.NewInboxService(store, nil),
		auth:         usecase.NewAuthService(store, plainHasher{}, stubTokens{}),
	}
}

// seedVerified stores a verified, accepting account for username.
func (f *fixture) seedVerified(t *testing.T, id, username string) domain.Account {
	t.Helper()
	account := domain.Account{
		ID:                  id,
		Username:            username,
		Email:               username + "@x.com",
		PasswordHash:        "plain:secret1",
		IsVerified:          true,
		IsAcceptingMessages: true,
		CreatedAt:           time.Now().UTC(),
	}
	if err := f.store.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return account
}

// asOwner attaches principal the way RequireOwner does.
func asOwner(principal domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !principal.IsZero() {
			middleware.SetPrincipal(c, principal)
		}
		c.Next()
	}
}

func performJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func expectResponse(t *testing.T, w *httptest.ResponseRecorder, status int, success bool, message string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Success != success || resp.Message != message {
		t.Fatalf("expected {success:%v message:%q}, got %+v", success, message, resp)
	}
}
