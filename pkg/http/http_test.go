package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/reqid"
)

type crop struct {
	ID       int64  `json:"id"`
	CropName string `json:"cropName"`
}

func envelope(w gohttp.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    status < 300,
		"message":    message,
		"data":       data,
		"statusCode": status,
	})
}

func TestFetchUnwrapsEnvelopeAndSendsBearer(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, "/api/v1/crops/all", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "rid-9", r.Header.Get(reqid.Header))
		envelope(w, 200, []crop{{ID: 1, CropName: "Wheat"}}, "ok")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL+"/api/v1/", fxhttp.WithHTTPClient(srv.Client())).
		WithTokenSource(func(context.Context) string { return "tok-1" })

	ctx := reqid.WithValue(context.Background(), "rid-9")
	crops, err := fxhttp.Fetch[[]crop](api.Get(ctx, "/crops/all"))
	require.NoError(t, err)
	require.Len(t, crops, 1)
	assert.Equal(t, "Wheat", crops[0].CropName)
}

func TestNoBearerWithoutToken(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		envelope(w, 200, nil, "")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client())).
		WithTokenSource(func(context.Context) string { return "" })
	require.NoError(t, fxhttp.Exec(api.Get(context.Background(), "/auth/validate")))
}

func TestNon2xxBecomesAPIErrorWithBackendMessage(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		envelope(w, gohttp.StatusBadRequest, nil, "Insufficient balance")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()))
	_, err := fxhttp.Fetch[crop](api.Post(context.Background(), "/orders").Body(map[string]int{"cropId": 1}))

	var apiErr *fxhttp.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, gohttp.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Insufficient balance", apiErr.Error())
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.WriteHeader(gohttp.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()))
	err := fxhttp.Exec(api.Get(context.Background(), "/crops/all"))
	assert.EqualError(t, err, "request failed with status 502")
	assert.Equal(t, 502, fxhttp.StatusCode(err))
}

func TestSuccessFalseOn200IsAnError(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"Crop not found","statusCode":404}`)
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()))
	_, err := fxhttp.Fetch[crop](api.Get(context.Background(), "/crops/9"))
	assert.True(t, fxhttp.IsNotFound(err))
	assert.EqualError(t, err, "Crop not found")
}

func TestQueryParameters(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, gohttp.MethodPatch, r.Method)
		assert.Equal(t, "ACCEPTED", r.URL.Query().Get("status"))
		_, present := r.URL.Query()["empty"]
		assert.False(t, present)
		envelope(w, 200, map[string]string{"status": "ACCEPTED"}, "")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()))
	out, err := fxhttp.Fetch[map[string]string](api.Patch(context.Background(), "/orders/5/status").
		Query("status", "ACCEPTED").Query("empty", ""))
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", out["status"])
}

func TestMultipartFile(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)

		assert.Equal(t, "leaf.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "PNGDATA", string(body))
		envelope(w, 200, "http://cdn/leaf.png", "")
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()))
	url, err := fxhttp.Fetch[string](api.Post(context.Background(), "/upload").
		File("file", "leaf.png", "image/png", []byte("PNGDATA")))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/leaf.png", url)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	api := fxhttp.NewClient(srv.URL, fxhttp.WithHTTPClient(srv.Client()), fxhttp.WithTimeout(50*time.Millisecond))
	err := fxhttp.Exec(api.Get(context.Background(), "/crops/all"))
	require.Error(t, err)
	assert.Equal(t, 0, fxhttp.StatusCode(err))
}

func TestTransportFailureIsNotRetried(t *testing.T) {
	var calls int32
	rt := roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("connection reset")
	})

	api := fxhttp.NewClient("http://backend", fxhttp.WithHTTPClient(&gohttp.Client{Transport: rt}))
	_, err := fxhttp.Fetch[int](api.Get(context.Background(), "/admin/stats/users"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http: send")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDefaultClientTransportSwap(t *testing.T) {
	fxhttp.DefaultClient.Transport = roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		return &gohttp.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"success":true,"data":"pong"}`)),
			Header:     gohttp.Header{},
		}, nil
	})
	defer fxhttp.ResetTransport()

	out, err := fxhttp.Fetch[string](fxhttp.NewClient("http://backend").Get(context.Background(), "/ping"))
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }
