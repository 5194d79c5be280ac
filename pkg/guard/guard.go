// Package guard decides whether a navigation may proceed, given the current
// session. It is evaluated on every page load and every CLI command:
//
//  1. not authenticated                    → RedirectLogin (/login)
//  2. a role is required and it differs    → RedirectHome  (/dashboard)
//  3. otherwise                            → Allow
//
// Decisions are advisory; the backend enforces authorisation on every call.
package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Redirect targets.
const (
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// Decision is the outcome of Check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect:login"
	case RedirectHome:
		return "redirect:home"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// Location is the redirect target, or "" for Allow.
func (d Decision) Location() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	}
	return ""
}

// Principal is the read side of the auth client.
type Principal interface {
	IsAuthenticated(ctx context.Context) bool
	Role(ctx context.Context) string
}

// Check evaluates the guard for a target requiring role ("" means any signed-in user).
func Check(ctx context.Context, p Principal, role string) Decision {
	if p == nil || !p.IsAuthenticated(ctx) {
		return RedirectLogin
	}
	if role != "" && p.Role(ctx) != role {
		return RedirectHome
	}
	return Allow
}

// ErrNotLoggedIn is the CLI rendering of RedirectLogin.
var ErrNotLoggedIn = errors.New("not logged in: run `farmx login` first")

// RoleError is the CLI rendering of RedirectHome.
type RoleError struct {
	Required string
	Actual   string
}

func (e *RoleError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("this command requires role %s", e.Required)
	}
	return fmt.Sprintf("this command requires role %s (you are %s)", e.Required, e.Actual)
}

// Err converts a decision into an error for non-HTTP callers.
func Err(ctx context.Context, p Principal, role string) error {
	switch Check(ctx, p, role) {
	case RedirectLogin:
		return ErrNotLoggedIn
	case RedirectHome:
		return &RoleError{Required: role, Actual: p.Role(ctx)}
	}
	return nil
}

// Resolver finds the principal for a request, typically from its session.
type Resolver func(r *http.Request) Principal

// Require returns middleware that redirects per Check. role may be "".
// Redirects to /login carry the original path in ?next= so the login form
// can send the user back.
func Require(resolve Resolver, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Check(r.Context(), resolve(r), role)
			switch d {
			case Allow:
				next.ServeHTTP(w, r)
			case RedirectLogin:
				target := LoginPath
				if r.Method == http.MethodGet && r.URL.Path != HomePath {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				http.Redirect(w, r, target, http.StatusFound)
			default:
				http.Redirect(w, r, d.Location(), http.StatusFound)
			}
		})
	}
}

// Guest returns middleware that sends already-authenticated visitors away
// from the login and register pages.
func Guest(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := resolve(r); p != nil && p.IsAuthenticated(r.Context()) {
				http.Redirect(w, r, HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SafeNext returns next when it is a local path, else HomePath. Used after
// login so ?next= cannot bounce the user to another site. Browsers drop tab,
// CR and LF before parsing, so any control character is refused outright.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' {
		return HomePath
	}
	for _, r := range next {
		if r < 0x20 || r == 0x7f {
			return HomePath
		}
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return HomePath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	return next
}
