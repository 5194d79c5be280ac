package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockTransport implements http.RoundTripper and plays the backend.
// It matches outgoing requests against MockSteps and records every call.
//
//	mt := testkit.NewMockTransport("/api/v1",
//	    testkit.Step("GET", "/crops/all", 200, crops),
//	)
//	api := fxhttp.NewClient("http://backend/api/v1", fxhttp.WithHTTPClient(mt.Client()))
type MockTransport struct {
	mu      sync.Mutex
	base    string
	steps   []httpMockEntry
	require bool
	calls   []Call
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// Call is one recorded outgoing request.
type Call struct {
	Method string
	Path   string // with the base prefix removed
	Query  map[string]string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into dest.
func (c Call) JSON(dest any) error { return json.Unmarshal(c.Body, dest) }

// NewMockTransport builds a transport answering the given steps. base is the
// path prefix of the API (for example "/api/v1") stripped before matching.
func NewMockTransport(base string, steps ...MockStep) *MockTransport {
	mt := &MockTransport{base: strings.TrimRight(base, "/")}
	for _, s := range steps {
		mt.steps = append(mt.steps, httpMockEntry{step: s})
	}
	return mt
}

// NewScenarioTransport builds a transport from a scenario's backend steps.
func NewScenarioTransport(base string, s *Scenario) *MockTransport {
	mt := NewMockTransport(base, s.Backend...)
	mt.require = s.IsMockRequired
	return mt
}

// Step is a shorthand for a successful or failing enveloped response.
// data is marshalled as the envelope's data field.
func Step(method, path string, status int, data any) MockStep {
	raw, _ := json.Marshal(data)
	return MockStep{
		Method:     method,
		Path:       path,
		ReturnData: MockReturnData{StatusCode: status, Data: raw},
	}
}

// Fail is a shorthand for an enveloped error response carrying message.
func Fail(method, path string, status int, message string) MockStep {
	return MockStep{
		Method:     method,
		Path:       path,
		ReturnData: MockReturnData{StatusCode: status, Message: message},
	}
}

// Client wraps the transport in an *http.Client.
func (mt *MockTransport) Client() *http.Client { return &http.Client{Transport: mt} }

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	path := strings.TrimPrefix(req.URL.Path, mt.base)
	query := map[string]string{}
	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, Call{
		Method: req.Method,
		Path:   path,
		Query:  query,
		Header: req.Header.Clone(),
		Body:   body,
	})

	for i := range mt.steps {
		entry := &mt.steps[i]
		if !entry.step.matches(req.Method, path, query) {
			continue
		}
		entry.callCount++
		return buildHTTPResponse(req, entry.step.ReturnData)
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected backend call %s %s: no matching mock step", req.Method, path)
	}

	return buildHTTPResponse(req, MockReturnData{
		StatusCode: http.StatusNotFound,
		Message:    "no mock configured for " + req.Method + " " + path,
	})
}

// Calls returns a copy of the recorded requests.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]Call, len(mt.calls))
	copy(out, mt.calls)
	return out
}

// CallsTo returns the recorded requests for method and path.
func (mt *MockTransport) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range mt.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// AssertAllCalled reports every step that was never triggered.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		if e.callCount == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock step %s %s was never called", e.step.Method, e.step.Path))
		}
	}
	return errs
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func (s MockStep) matches(method, path string, query map[string]string) bool {
	if s.Method != "" && !strings.EqualFold(s.Method, method) {
		return false
	}
	if prefix, ok := strings.CutSuffix(s.Path, "*"); ok {
		if !strings.HasPrefix(path, prefix) {
			return false
		}
	} else if s.Path != path {
		return false
	}
	for k, v := range s.Query {
		if query[k] != v {
			return false
		}
	}
	return true
}

func buildHTTPResponse(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	var body []byte
	if rd.Raw != "" {
		body = []byte(rd.Raw)
	} else {
		env := map[string]any{
			"success":    code < 300,
			"message":    rd.Message,
			"statusCode": code,
		}
		if len(rd.Data) > 0 {
			env["data"] = rd.Data
		}
		var err error
		if body, err = json.Marshal(env); err != nil {
			return nil, fmt.Errorf("testkit: encode mock body: %w", err)
		}
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}
