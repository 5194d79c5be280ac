package sse_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/pkg/sse"
)

func TestSendWritesNamedEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil)

	s := sse.New(rec, req)
	require.NotNil(t, s)
	require.NoError(t, s.Send("authChange", map[string]bool{"authenticated": true}))
	s.Comment("ping")

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: authChange\ndata: {\"authenticated\":true}\n\n")
	assert.Contains(t, rec.Body.String(), ": ping\n\n")
}

func TestClosedStreamIsSilent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)

	s := sse.New(rec, req)
	require.NotNil(t, s)
	cancel()

	<-s.Done()
	assert.True(t, s.IsClosed())
	before := rec.Body.Len()
	require.NoError(t, s.Send("authChange", nil))
	assert.Equal(t, before, rec.Body.Len())

	var nilStream *sse.Stream
	assert.True(t, nilStream.IsClosed())
}
