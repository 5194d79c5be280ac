// Package controllers serves the FarmXChain web portal. Each handler builds a
// per-request service set bound to the browser's session, calls the backend
// and renders an html/template page.
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/event"
	"github.com/farmxchain/farmx/pkg/guard"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/session"
)

// Controller holds what every portal handler shares.
type Controller struct {
	api   *fxhttp.Client
	bus   *event.Bus
	opts  []services.Option
	pages *pageSet
}

// New returns a controller calling the backend through api. bus feeds the
// /events stream and may be nil.
func New(api *fxhttp.Client, bus *event.Bus, opts ...services.Option) *Controller {
	return &Controller{
		api:   api,
		bus:   bus,
		opts:  opts,
		pages: mustParsePages(),
	}
}

// services binds the backend clients to the request's session.
func (c *Controller) services(r *http.Request) *services.Services {
	return services.New(c.api, session.FromCtx(r), c.opts...)
}

// Principal resolves the signed-in identity for the route guard.
func (c *Controller) Principal(r *http.Request) guard.Principal {
	return c.services(r).Auth
}

// page starts a page for the current user and consumes any pending flash.
func (c *Controller) page(w http.ResponseWriter, r *http.Request, title string) *views.Page {
	p := views.NewPage(title, c.services(r).Auth.CurrentUser(r.Context()))
	p.Success, p.Error = takeFlash(w, r)
	return p
}

// refreshProfile re-fetches the user after a balance-changing action so the
// navigation shows the new wallet. Failures only cost a stale balance.
func (c *Controller) refreshProfile(ctx context.Context, s *services.Services) {
	if _, err := s.Auth.Profile(ctx); err != nil {
		logger.WithCtx(ctx).Warn("refresh profile failed", "error", err)
	}
}

func currentRole(ctx context.Context, s *services.Services) models.Role {
	return models.Role(s.Auth.Role(ctx))
}

func urlParam(r *http.Request, key string) string { return chi.URLParam(r, key) }

func asAPIError(err error) *fxhttp.APIError {
	var apiErr *fxhttp.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
