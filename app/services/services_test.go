package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/pkg/event"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/session"
	"github.com/farmxchain/farmx/pkg/testkit"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *services.Services
	sess    *session.Session
	backend *session.MemoryBackend
	mt      *testkit.MockTransport
	changes *int
}

func newFixture(t *testing.T, steps ...testkit.MockStep) *fixture {
	t.Helper()

	bus := event.NewBus()
	changes := 0
	bus.Listen(event.AuthChanged, func(any) { changes++ })

	backend := session.NewMemoryBackend()
	sess := session.New("", backend, bus)
	mt := testkit.NewMockTransport("/api/v1", steps...)
	api := fxhttp.NewClient("http://backend/api/v1", fxhttp.WithHTTPClient(mt.Client()))

	return &fixture{
		svc: services.New(api, sess,
			services.WithClock(func() time.Time { return now }),
			services.WithUploadLimits(1<<20, []string{"image/jpeg", "image/png", "image/jpg", "image/gif", "image/webp"}),
		),
		sess:    sess,
		backend: backend,
		mt:      mt,
		changes: &changes,
	}
}

// signIn stores a token valid for an hour after now, without a cached user.
func (f *fixture) signIn(t *testing.T, role string) string {
	t.Helper()
	tok := testkit.Token(t, "user@farmx.test", role, 21, now.Add(time.Hour))
	if err := f.backend.Set(context.Background(), session.TokenKey, tok); err != nil {
		t.Fatal(err)
	}
	return tok
}
