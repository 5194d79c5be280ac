package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertLocation checks the redirect target when the scenario names one.
func AssertLocation(t *testing.T, scenario *Scenario, got string) {
	t.Helper()
	if scenario.ExpectedLocation == "" {
		return
	}
	assert.Equal(t, scenario.ExpectedLocation, got,
		"[%s] redirect location mismatch", scenario.Name)
}

// AssertBody checks the bodyContains and bodyExcludes fragments.
func AssertBody(t *testing.T, scenario *Scenario, body string) {
	t.Helper()
	for _, want := range scenario.BodyContains {
		assert.Contains(t, body, want, "[%s] body is missing %q", scenario.Name, want)
	}
	for _, unwanted := range scenario.BodyExcludes {
		assert.NotContains(t, body, unwanted, "[%s] body should not contain %q", scenario.Name, unwanted)
	}
}

// AssertJSONBody deep-compares actual response bytes against the expected file
// contents after normalising both through JSON unmarshal, so key order and
// whitespace never matter.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal interface{}

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	assert.Equal(t, expVal, actVal,
		"[%s] response body mismatch", scenario.Name)
}

// AssertMocksAllCalled fails the test if any backend step was never triggered.
func AssertMocksAllCalled(t *testing.T, scenario *Scenario, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err, "[%s]", scenario.Name)
	}
}
