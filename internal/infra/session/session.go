// Package session keeps signed-in owners in an encrypted gorilla/sessions cookie.
package session

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

const (
	keyAccountID = "account_id"
	keyUsername  = "username"
)

// Manager reads and writes the owner session cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

func NewManager(cfg config.SessionSettings) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("session: secret is required")
	}

	// 32 byte derived key selects AES-256 for the cookie payload
	blockKey := sha256.Sum256([]byte("feedformly-session-encryption:" + cfg.Secret))
	store := sessions.NewCookieStore([]byte(cfg.Secret), blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	}
	store.MaxAge(store.Options.MaxAge)

	name := cfg.CookieName
	if name == "" {
		name = "feedformly_session"
	}

	return &Manager{store: store, name: name}, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.name
}

// Save writes principal into the session cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, principal domain.Principal) error {
	// a tampered or stale cookie yields a fresh session, which is what sign-in wants
	sess, _ := m.store.Get(r, m.name)
	sess.Values[keyAccountID] = principal.AccountID
	sess.Values[keyUsername] = principal.Username
	sess.Options.MaxAge = m.store.Options.MaxAge

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the principal stored in the request's session cookie, if any.
func (m *Manager) Load(r *http.Request) (domain.Principal, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil || sess.IsNew {
		return domain.Principal{}, false
	}

	accountID, ok1 := sess.Values[keyAccountID].(string)
	username, ok2 := sess.Values[keyUsername].(string)
	if !ok1 || !ok2 || accountID == "" {
		return domain.Principal{}, false
	}

	return domain.Principal{AccountID: accountID, Username: username}, true
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
