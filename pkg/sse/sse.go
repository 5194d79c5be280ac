// Package sse writes Server-Sent Events to one browser tab.
//
// The portal keeps a stream open on /events and pushes "authChange" whenever
// the tab's session is written or cleared, so other tabs re-render their
// navigation.
//
//	stream := sse.New(w, r)
//	if stream == nil {
//	    return
//	}
//	for {
//	    select {
//	    case <-stream.Done():
//	        return
//	    case <-changed:
//	        stream.Send("authChange", payload)
//	    }
//	}
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Stream represents an active SSE connection to one client.
// Send and Comment may be called from several goroutines.
type Stream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
}

// New creates an SSE stream, sets the required headers and flushes them.
// Returns nil if the ResponseWriter does not support flushing.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named SSE event with a JSON-encoded data payload.
func (s *Stream) Send(event string, data any) error {
	if s.IsClosed() {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("sse: write: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Comment writes an SSE comment. Used as a keepalive heartbeat.
func (s *Stream) Comment(msg string) {
	if s.IsClosed() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flusher.Flush()
}

// Done is closed when the client disconnects.
func (s *Stream) Done() <-chan struct{} { return s.r.Context().Done() }

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	select {
	case <-s.r.Context().Done():
		return true
	default:
		return false
	}
}
