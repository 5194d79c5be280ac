// Package session persists the bearer token and the cached user record.
//
// A Session is a thin view over a Backend: the CLI uses a FileBackend with the
// bare keys "token" and "user", the portal uses a Redis or memory backend
// with one namespace per browser cookie.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions(), backend, bus))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	token := sess.Token(r.Context())
//	var u models.User
//	ok, _ := sess.User(r.Context(), &u)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/farmxchain/farmx/pkg/event"
	"github.com/farmxchain/farmx/pkg/logger"
)

// Storage keys.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Backend is the key/value store under a Session.
type Backend interface {
	// Get returns the stored value. A missing key is ("", false, nil).
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Session is the token + cached user pair of one signed-in client.
// Writers are expected to be serialised by the caller (one request or
// command at a time per session); readers may run concurrently.
type Session struct {
	id      string
	backend Backend
	bus     *event.Bus
}

// New binds a session to backend. An empty id uses the bare storage keys.
// bus may be nil when nobody listens for auth changes.
func New(id string, backend Backend, bus *event.Bus) *Session {
	return &Session{id: id, backend: backend, bus: bus}
}

// ID returns the session ID ("" for the CLI session).
func (s *Session) ID() string { return s.id }

func (s *Session) key(name string) string {
	if s.id == "" {
		return name
	}
	return "farmx:session:" + s.id + ":" + name
}

// Token returns the stored bearer token or "". Backend failures are logged
// and reported as "no token" so callers fall through to the login path.
func (s *Session) Token(ctx context.Context) string {
	tok, _, err := s.backend.Get(ctx, s.key(TokenKey))
	if err != nil {
		logger.WithCtx(ctx).Warn("session: read token", "error", err)
		return ""
	}
	return tok
}

// User decodes the cached user record into dest.
// It reports false when nothing is cached or the record is unreadable.
func (s *Session) User(ctx context.Context, dest any) (bool, error) {
	raw, ok, err := s.backend.Get(ctx, s.key(UserKey))
	if err != nil {
		return false, fmt.Errorf("session: read user: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("session: decode user: %w", err)
	}
	return true, nil
}

// Set stores both the token and the user record, then announces the change.
func (s *Session) Set(ctx context.Context, token string, user any) error {
	if err := s.backend.Set(ctx, s.key(TokenKey), token); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	if err := s.writeUser(ctx, user); err != nil {
		return err
	}
	s.bus.Fire(event.AuthChanged, s.id)
	return nil
}

// SetUser overwrites only the cached user record, then announces the change.
func (s *Session) SetUser(ctx context.Context, user any) error {
	if err := s.writeUser(ctx, user); err != nil {
		return err
	}
	s.bus.Fire(event.AuthChanged, s.id)
	return nil
}

func (s *Session) writeUser(ctx context.Context, user any) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.backend.Set(ctx, s.key(UserKey), string(raw)); err != nil {
		return fmt.Errorf("session: write user: %w", err)
	}
	return nil
}

// Clear removes both keys and announces the change. Clearing an empty
// session still announces it.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.backend.Del(ctx, s.key(TokenKey), s.key(UserKey)); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.bus.Fire(event.AuthChanged, s.id)
	return nil
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
