package session

import (
	"context"
	"net/http"
	"time"

	"github.com/farmxchain/farmx/pkg/event"
)

// ------------------- Options -------------------

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "farmx_session",
		TTL:        24 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Middleware -------------------

type ctxKey struct{}

// Middleware loads (or mints) the session cookie for every request and
// injects the bound *Session into the request context. Handlers call
// session.FromCtx(r) to access it.
func Middleware(opts Options, backend Backend, bus *event.Bus) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(opts.CookieName); err == nil && validID(cookie.Value) {
				id = cookie.Value
			} else {
				fresh, err := newID()
				if err != nil {
					http.Error(w, "session unavailable", http.StatusInternalServerError)
					return
				}
				id = fresh
			}

			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    id,
				Path:     opts.Path,
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: opts.HTTPOnly,
				Secure:   opts.Secure,
				SameSite: opts.SameSite,
			})

			sess := New(id, backend, bus)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext retrieves the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// FromCtx retrieves the session from the request context.
// Returns an empty throwaway session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := FromContext(r.Context()); ok {
		return s
	}
	id, _ := newID()
	return New(id, NewMemoryBackend(), nil)
}

// validID accepts only IDs minted by newID so a crafted cookie cannot
// address arbitrary backend keys.
func validID(id string) bool {
	if len(id) != 64 {
		return false
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
