package controllers

import (
	"net/http"
	"time"

	"github.com/farmxchain/farmx/pkg/event"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/session"
	"github.com/farmxchain/farmx/pkg/sse"
)

// KeepAlive is how often an idle /events stream gets a comment line.
var KeepAlive = 25 * time.Second

// Events GET /events streams "authChange" whenever this browser's session is
// written or cleared, so other open tabs can re-render.
func (c *Controller) Events(w http.ResponseWriter, r *http.Request) {
	sid := session.FromCtx(r).ID()

	changed := make(chan struct{}, 1)
	stop := c.bus.Listen(event.AuthChanged, func(payload any) {
		if id, _ := payload.(string); id != sid {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer stop()

	stream := sse.New(w, r)
	if stream == nil {
		return
	}
	metrics.EventStreams.Inc()
	defer metrics.EventStreams.Dec()

	ticker := time.NewTicker(KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-stream.Done():
			return
		case <-ticker.C:
			stream.Comment("keep-alive")
		case <-changed:
			auth := c.services(r).Auth
			err := stream.Send("authChange", map[string]any{
				"authenticated": auth.IsAuthenticated(r.Context()),
				"role":          auth.Role(r.Context()),
			})
			if err != nil {
				logger.WithCtx(r.Context()).Debug("event stream closed", "error", err)
				return
			}
		}
	}
}
