package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/auth"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/session"
)

// ErrNoToken is returned by Login when the backend accepts the credentials
// but sends no token.
var ErrNoToken = errors.New("services: login response carried no token")

// AuthService signs users in and out and answers identity questions from
// the session. It satisfies guard.Principal.
type AuthService struct {
	api  *fxhttp.Client
	sess *session.Session
	now  func() time.Time
}

// Login posts the credentials and, on success, stores the token and user.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	resp, err := fxhttp.Fetch[models.LoginResponse](s.api.Post(ctx, "/auth/login").Body(req))
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	if err := s.sess.Set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	metrics.AuthChanges.WithLabelValues("login").Inc()
	logger.WithCtx(ctx).Info("signed in", "email", req.Email)
	return &resp, nil
}

// Register creates an account. It does not sign the user in; new accounts
// wait for administrator approval.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	u, err := fxhttp.Fetch[models.User](s.api.Post(ctx, "/auth/register").Body(req))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Validate asks the backend whether the stored token is still accepted.
// Any failure, including having no token, is false.
func (s *AuthService) Validate(ctx context.Context) bool {
	if s.sess.Token(ctx) == "" {
		return false
	}
	return fxhttp.Exec(s.api.Get(ctx, "/auth/validate")) == nil
}

// IsAuthenticated reports whether a stored token exists and its exp claim
// is in the future. It never calls the backend.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return auth.Valid(s.sess.Token(ctx), s.now())
}

// CurrentUser returns the cached user, else an identity decoded from the
// token (id, email and role only), else nil.
func (s *AuthService) CurrentUser(ctx context.Context) *models.User {
	var u models.User
	ok, err := s.sess.User(ctx, &u)
	if err != nil {
		logger.WithCtx(ctx).Warn("session: cached user unreadable", "error", err)
	}
	if ok {
		return &u
	}

	claims, err := auth.Decode(s.sess.Token(ctx))
	if err != nil {
		return nil
	}
	return &models.User{
		ID:    claims.UserID,
		Email: claims.Email(),
		Role:  models.Role(claims.Role),
	}
}

// Role is the current user's role, or "".
func (s *AuthService) Role(ctx context.Context) string {
	if u := s.CurrentUser(ctx); u != nil {
		return string(u.Role)
	}
	return ""
}

// Profile fetches the signed-in user's record and replaces the cached copy.
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	u, err := fxhttp.Fetch[models.User](s.api.Get(ctx, "/users/profile"))
	if err != nil {
		return nil, err
	}
	if err := s.sess.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("services: cache profile: %w", err)
	}
	metrics.AuthChanges.WithLabelValues("refresh").Inc()
	return &u, nil
}

// Logout forgets the token and the cached user.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sess.Clear(ctx); err != nil {
		return err
	}
	metrics.AuthChanges.WithLabelValues("logout").Inc()
	return nil
}

// Token is the stored bearer, or "".
func (s *AuthService) Token(ctx context.Context) string { return s.sess.Token(ctx) }
