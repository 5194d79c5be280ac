package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmxchain/farmx/pkg/guard"
)

type principal struct {
	authed bool
	role   string
}

func (p principal) IsAuthenticated(context.Context) bool { return p.authed }
func (p principal) Role(context.Context) string          { return p.role }

func TestCheck(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		p        guard.Principal
		required string
		want     guard.Decision
	}{
		{"anonymous on dashboard", principal{}, "", guard.RedirectLogin},
		{"nil principal", nil, "", guard.RedirectLogin},
		{"anonymous on farmer page", principal{}, "FARMER", guard.RedirectLogin},
		{"consumer on farmer page", principal{true, "CONSUMER"}, "FARMER", guard.RedirectHome},
		{"farmer on farmer page", principal{true, "FARMER"}, "FARMER", guard.Allow},
		{"any role on open page", principal{true, "RETAILER"}, "", guard.Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, guard.Check(ctx, tc.p, tc.required))
		})
	}
}

func TestRequireRedirects(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	run := func(p guard.Principal, role, path string) *httptest.ResponseRecorder {
		h := guard.Require(func(*http.Request) guard.Principal { return p }, role)(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := run(principal{}, "", "/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = run(principal{}, "", "/orders")
	assert.Equal(t, "/login?next=%2Forders", rec.Header().Get("Location"))

	rec = run(principal{true, "CONSUMER"}, "FARMER", "/farmer-profile")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = run(principal{true, "FARMER"}, "FARMER", "/farmer-profile")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuest(t *testing.T) {
	h := guard.Guest(func(*http.Request) guard.Principal { return principal{true, "ADMIN"} })(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestErr(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, guard.Err(ctx, principal{}, ""), guard.ErrNotLoggedIn)
	assert.EqualError(t, guard.Err(ctx, principal{true, "CONSUMER"}, "ADMIN"),
		"this command requires role ADMIN (you are CONSUMER)")
	assert.NoError(t, guard.Err(ctx, principal{true, "ADMIN"}, "ADMIN"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/orders?tab=past", guard.SafeNext("/orders?tab=past"))
	assert.Equal(t, "/dashboard", guard.SafeNext("//evil.example"))
	assert.Equal(t, "/dashboard", guard.SafeNext("https://evil.example"))
	assert.Equal(t, "/dashboard", guard.SafeNext(""))
	assert.Equal(t, "/dashboard", guard.SafeNext("/\\evil.example"))
	assert.Equal(t, "/dashboard", guard.SafeNext("/\t/evil.com"))
	assert.Equal(t, "/dashboard", guard.SafeNext("/\n/evil.com"))
	assert.Equal(t, "/dashboard", guard.SafeNext("/\r/evil.com"))
}
