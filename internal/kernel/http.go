// Package kernel assembles the portal: session backend, backend client,
// controllers, middleware stack and route table.
package kernel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/farmxchain/farmx/app/controllers"
	"github.com/farmxchain/farmx/app/routes"
	"github.com/farmxchain/farmx/config"
	"github.com/farmxchain/farmx/pkg/cache"
	"github.com/farmxchain/farmx/pkg/event"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/middleware"
	"github.com/farmxchain/farmx/pkg/reqid"
	"github.com/farmxchain/farmx/pkg/router"
	"github.com/farmxchain/farmx/pkg/session"
	"github.com/farmxchain/farmx/pkg/storage"
)

// HTTPKernel is a wired portal.
type HTTPKernel struct {
	Router  *router.Router
	Bus     *event.Bus
	Backend session.Backend
}

// Handler returns the root handler to serve.
func (k *HTTPKernel) Handler() http.Handler { return k.Router.Handler() }

// Close releases the connections Boot opened. Safe when none were.
func (k *HTTPKernel) Close() error {
	if err := cache.Close(); err != nil {
		return fmt.Errorf("kernel: close redis: %w", err)
	}
	return nil
}

// Boot connects the configured session backend and upload disks, then
// builds the kernel. Redis is only dialled when SESSION_DRIVER=redis.
func Boot(ctx context.Context) (*HTTPKernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("kernel: load config: %w", err)
	}

	backend, err := sessionBackend(ctx)
	if err != nil {
		return nil, err
	}
	if err := storage.Connect(ctx); err != nil {
		return nil, fmt.Errorf("kernel: storage: %w", err)
	}

	api := fxhttp.NewClient(config.APIBaseURL(), fxhttp.WithTimeout(config.APITimeout()))
	return New(api, backend, event.NewBus()), nil
}

func sessionBackend(ctx context.Context) (session.Backend, error) {
	var backend session.Backend
	switch config.SessionDriver() {
	case "redis":
		if err := cache.Connect(ctx); err != nil {
			return nil, fmt.Errorf("kernel: redis session store: %w", err)
		}
		backend = session.NewRedisBackend(config.SessionTTL())
	case "file":
		backend = session.NewFileBackend(config.SessionFile())
	default:
		logger.Info("sessions kept in memory; they will not survive a restart")
		backend = session.NewMemoryBackend()
	}
	return session.SealWithKey(backend, config.SessionKey())
}

// New builds the kernel around an existing client and session backend.
//
// Global middleware, outermost first:
//  1. metrics   - total latency including everything below
//  2. reqid     - every log line and backend call carries the request ID
//  3. recovery  - a panicking handler becomes a 500 quoting that ID
//  4. logger
//  5. CORS
//  6. session   - binds the browser's session into the request context
func New(api *fxhttp.Client, backend session.Backend, bus *event.Bus) *HTTPKernel {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(corsOptions()),
		session.Middleware(sessionOptions(), backend, bus),
	)

	c := controllers.New(api, bus)
	routes.RegisterAPI(r, c)
	routes.RegisterWeb(r, c)

	return &HTTPKernel{Router: r, Bus: bus, Backend: backend}
}

func corsOptions() middleware.CORSOptions {
	opts := middleware.DefaultCORSOptions()
	opts.AllowedOrigins = config.CORSAllowedOrigins()
	opts.AllowCredentials = len(opts.AllowedOrigins) > 0 && opts.AllowedOrigins[0] != "*"
	return opts
}

func sessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.CookieName = config.SessionCookie()
	opts.TTL = config.SessionTTL()
	opts.Secure = config.SessionSecure()
	return opts
}
