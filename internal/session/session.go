// Package session holds the cookie-keyed login session: a denormalized
// copy of user id, email and role captured at login and kept until logout
// or expiry. Role changes made directly in storage are not reflected
// until the next login.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the browser cookie carrying the session.
	CookieName = "tunedeck_session"

	// maxAge bounds both the cookie and the server-side record.
	maxAge = 7 * 24 * 60 * 60
)

// ContextKey is where the guards place the session data for handlers.
const ContextKey = "session_user"

// Data is the login state stored in a session.
type Data struct {
	UserID string
	Email  string
	Role   string
}

// FromContext returns the session data a guard stored on the request.
func FromContext(c echo.Context) (*Data, bool) {
	data, ok := c.Get(ContextKey).(*Data)
	return data, ok
}

// Manager wraps a gorilla session store behind the three lifecycle
// operations the handlers need.
type Manager struct {
	store sessions.Store
}

// NewManager creates a manager over the given store.
func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// Create establishes a session for the given login and writes the cookie.
func (m *Manager) Create(c echo.Context, data Data) error {
	sess, err := m.store.New(c.Request(), CookieName)
	if err != nil {
		return err
	}
	sess.Values["user_id"] = data.UserID
	sess.Values["email"] = data.Email
	sess.Values["role"] = data.Role
	return sess.Save(c.Request(), c.Response())
}

// User returns the current session's login state, or false when no valid
// session is present.
func (m *Manager) User(c echo.Context) (*Data, bool) {
	sess, err := m.store.Get(c.Request(), CookieName)
	if err != nil {
		return nil, false
	}
	id, ok := sess.Values["user_id"].(string)
	if !ok || id == "" {
		return nil, false
	}
	email, _ := sess.Values["email"].(string)
	role, _ := sess.Values["role"].(string)
	return &Data{UserID: id, Email: email, Role: role}, true
}

// Clear drops the session and expires the cookie.
func (m *Manager) Clear(c echo.Context) error {
	sess, err := m.store.Get(c.Request(), CookieName)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// Flash queues a one-shot message for the next rendered page.
func (m *Manager) Flash(c echo.Context, message string) error {
	sess, err := m.store.Get(c.Request(), CookieName)
	if err != nil {
		return err
	}
	sess.AddFlash(message)
	return sess.Save(c.Request(), c.Response())
}

// Flashes returns and consumes the queued messages.
func (m *Manager) Flashes(c echo.Context) []string {
	sess, err := m.store.Get(c.Request(), CookieName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// NewCookieStore builds a client-side signed cookie store. Used when no
// redis address is configured.
func NewCookieStore(secret string) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
