package testkit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// Harness is the portal under test.
type Harness struct {
	Handler http.Handler

	// APIBase is the path prefix of backend URLs, stripped before step matching.
	APIBase string

	// Seed stores a session and returns the cookie that selects it.
	// It is only called for scenarios with a session.
	Seed func(t *testing.T, seed *SessionSeed) *http.Cookie
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes a single scenario file against h.
//
// Lifecycle:
//  1. Load the scenario JSON file.
//  2. Install the backend mock on the shared HTTP client.
//  3. Seed the browser session, if any.
//  4. Fire the request through h.Handler.
//  5. Assert status, redirect target and body.
//  6. Verify every backend step was used.
//  7. Restore the real transport.
func Run(t *testing.T, h Harness, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, h, s)
	})
}

// RunDir runs every scenario in dir as a subtest.
func RunDir(t *testing.T, h Harness, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}
	if len(scenarios) == 0 {
		t.Fatalf("testkit: no runnable scenarios in %q", dir)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, h, s)
		})
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, h Harness, s *Scenario) {
	t.Helper()

	mt := NewScenarioTransport(h.APIBase, s)
	original := fxhttp.DefaultClient.Transport
	fxhttp.DefaultClient.Transport = mt
	defer func() { fxhttp.DefaultClient.Transport = original }()

	var cookie *http.Cookie
	if s.Session != nil {
		if h.Seed == nil {
			t.Fatalf("[%s] scenario has a session but the harness cannot seed one", s.Name)
		}
		cookie = h.Seed(t, s.Session)
	}

	req := newRequest(s)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	h.Handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertLocation(t, s, rec.Header().Get("Location"))
	AssertBody(t, s, rec.Body.String())

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, rec.Body.Bytes())
		}
	}

	AssertMocksAllCalled(t, s, mt)
}

func newRequest(s *Scenario) *http.Request {
	var req *http.Request
	if len(s.Form) > 0 {
		form := url.Values{}
		for k, v := range s.Form {
			form.Set(k, v)
		}
		req = httptest.NewRequest(s.RequestMethod, s.RequestURL, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(s.RequestMethod, s.RequestURL, nil)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
	return req
}
