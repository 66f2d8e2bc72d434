package session

import (
	"net/http"

	"github.com/google/uuid"
)

const cookieName = "bv_session"

// Manager mints and resolves the session cookie. The token doubles as
// the customer id on persisted order rows, so it has to be unique per
// visitor; a UUID rules out cross-session collisions.
type Manager struct {
	store Store
}

// NewManager creates a session manager over the given cart store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Store returns the underlying cart store.
func (m *Manager) Store() Store {
	return m.store
}

// Token returns the visitor's session token, minting one (and setting
// the cookie) when the request carries none.
func (m *Manager) Token(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
