package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/pkg/response"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]bool{"authenticated": true})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestErrorEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusTooManyRequests, "Too Many Requests")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"statusCode":429,"message":"Too Many Requests"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.NotFound(rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Not found"`)
}
