// Package testkit drives portal tests from JSON scenario files and fakes the
// FarmXChain backend.
//
// Each scenario describes:
//   - the browser request to fire (method, URL, form fields, headers)
//   - the session the browser already holds (role, expired token, cached user)
//   - the backend calls the page makes and their canned responses
//   - the expected status code, redirect target and page content
//
// Scenario files live next to the *_test.go files:
//
//	testdata/
//	  dashboard_farmer.json
//	  login_success.json
//	  crops_page_res.json        ← optional expected JSON body
//
// Example _test.go:
//
//	func TestPortal(t *testing.T) {
//	    testkit.RunDir(t, harness, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single portal test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod string            `json:"requestMethod"` // GET or POST
	RequestURL    string            `json:"requestUrl"`    // e.g. /crops/new
	Form          map[string]string `json:"form"`          // urlencoded body for POST
	Headers       map[string]string `json:"headers"`

	// Session held by the browser before the request. Nil means signed out.
	Session *SessionSeed `json:"session"`

	// Response assertions
	ExpectedCode     int      `json:"expectedCode"`
	ExpectedLocation string   `json:"expectedLocation"` // Location header on redirects
	BodyContains     []string `json:"bodyContains"`
	BodyExcludes     []string `json:"bodyExcludes"`
	ResponseFileName string   `json:"responseFileName"` // expected JSON body, relative to the scenario

	// IsMockRequired fails the scenario on a backend call with no matching step.
	IsMockRequired bool `json:"isMockRequired"`

	// Backend lists the canned backend responses, matched in order.
	Backend []MockStep `json:"backend"`

	dir string
}

// SessionSeed is the session state a scenario starts from.
type SessionSeed struct {
	Role    string          `json:"role"`
	UserID  int64           `json:"userId"`
	Email   string          `json:"email"`
	Expired bool            `json:"expired"` // mint a token that is already past exp
	User    json.RawMessage `json:"user"`    // cached user record; omitted means none
}

// MockStep is one canned backend response.
type MockStep struct {
	// Method is the HTTP method to match. Empty matches any method.
	Method string `json:"method"`

	// Path is matched against the request path after the API base, e.g.
	// "/crops/farmer". A trailing "*" makes it a prefix match.
	Path string `json:"path"`

	// Query, when set, must be a subset of the request's query parameters.
	Query map[string]string `json:"query"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic backend response for a step.
type MockReturnData struct {
	StatusCode int `json:"statusCode"` // defaults to 200

	// Data is wrapped in the backend envelope {success, message, data, statusCode}.
	Data json.RawMessage `json:"data"`

	Message string `json:"message"`

	// Raw, when set, is sent verbatim instead of an envelope.
	Raw string `json:"raw"`
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	for i, step := range s.Backend {
		if step.Path == "" {
			return fmt.Errorf("backend[%d].path is required", i)
		}
	}
	return nil
}

// ResponseBodyPath returns the absolute path to the expected response file,
// or "" when none is set.
func (s *Scenario) ResponseBodyPath() string {
	if s.ResponseFileName == "" {
		return ""
	}
	if filepath.IsAbs(s.ResponseFileName) {
		return s.ResponseFileName
	}
	return filepath.Join(s.dir, s.ResponseFileName)
}

// LoadAllFromDir loads every *.json scenario in dir, skipping files whose
// name ends in _res.json. Files that fail to parse are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if strings.HasSuffix(path, "_res.json") {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("testkit: load %q: %w", path, err))
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
