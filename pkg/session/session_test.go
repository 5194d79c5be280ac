package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/pkg/event"
	"github.com/farmxchain/farmx/pkg/session"
)

type user struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func TestSetThenReadBack(t *testing.T) {
	ctx := context.Background()
	s := session.New("", session.NewMemoryBackend(), nil)

	require.NoError(t, s.Set(ctx, "tok", user{ID: 1, Email: "a@b.c", Role: "FARMER"}))

	assert.Equal(t, "tok", s.Token(ctx))
	var u user
	ok, err := s.User(ctx, &u)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "FARMER", u.Role)
}

func TestClearRemovesBothKeysAndAnnounces(t *testing.T) {
	ctx := context.Background()
	bus := event.NewBus()
	backend := session.NewMemoryBackend()
	s := session.New("abc", backend, bus)

	var fired []any
	bus.Listen(event.AuthChanged, func(p any) { fired = append(fired, p) })

	require.NoError(t, s.Set(ctx, "tok", user{ID: 1}))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Token(ctx))
	var u user
	ok, err := s.User(ctx, &u)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []any{"abc", "abc"}, fired)

	_, present, _ := backend.Get(ctx, "farmx:session:abc:token")
	assert.False(t, present)
}

func TestSetUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	s := session.New("", session.NewMemoryBackend(), nil)

	require.NoError(t, s.Set(ctx, "tok", user{ID: 1, Email: "old@x.y"}))
	require.NoError(t, s.SetUser(ctx, user{ID: 1, Email: "new@x.y"}))

	var u user
	_, _ = s.User(ctx, &u)
	assert.Equal(t, "new@x.y", u.Email)
	assert.Equal(t, "tok", s.Token(ctx))
}

func TestUserReportsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	backend := session.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, session.UserKey, "{broken"))

	var u user
	ok, err := session.New("", backend, nil).User(ctx, &u)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := session.New("", session.NewFileBackend(path), nil)
	require.NoError(t, first.Set(ctx, "tok", user{ID: 9}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := session.New("", session.NewFileBackend(path), nil)
	assert.Equal(t, "tok", second.Token(ctx))

	require.NoError(t, second.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMiddlewareReusesValidCookie(t *testing.T) {
	backend := session.NewMemoryBackend()
	opts := session.DefaultOptions()

	var firstID string
	h := session.Middleware(opts, backend, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstID = session.FromCtx(r).ID()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, firstID, 64)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	var secondID string
	h2 := session.Middleware(opts, backend, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondID = session.FromCtx(r).ID()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	h2.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, firstID, secondID)
}

func TestMiddlewareRejectsForgedCookie(t *testing.T) {
	var id string
	h := session.Middleware(session.DefaultOptions(), session.NewMemoryBackend(), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { id = session.FromCtx(r).ID() }))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "farmx_session", Value: "x:token"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEqual(t, "x:token", id)
	assert.Len(t, id, 64)
}

func TestSealedFileKeepsSecretsOffDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	backend, err := session.SealWithKey(session.NewFileBackend(path), "s3cret")
	require.NoError(t, err)
	s := session.New("", backend, nil)
	require.NoError(t, s.Set(ctx, "eyJ.bearer", user{ID: 7, Email: "asha@farmx.test", Role: "FARMER"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "eyJ.bearer")
	assert.NotContains(t, string(raw), "asha@farmx.test")
	assert.Contains(t, string(raw), session.TokenKey)

	assert.Equal(t, "eyJ.bearer", s.Token(ctx))
	var u user
	ok, err := s.User(ctx, &u)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), u.ID)

	// A different key cannot read the values and reports the session empty.
	other, err := session.SealWithKey(session.NewFileBackend(path), "rotated")
	require.NoError(t, err)
	assert.Empty(t, session.New("", other, nil).Token(ctx))
}

func TestSealWithoutKeyIsPassthrough(t *testing.T) {
	inner := session.NewMemoryBackend()
	backend, err := session.SealWithKey(inner, "")
	require.NoError(t, err)
	assert.Same(t, inner, backend)
}
