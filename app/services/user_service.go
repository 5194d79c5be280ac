package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/session"
)

// UserService reads accounts and tops up the wallet.
type UserService struct {
	api  *fxhttp.Client
	sess *session.Session
}

// Profile fetches the signed-in user's record without touching the session.
func (s *UserService) Profile(ctx context.Context) (*models.User, error) {
	return s.one(s.api.Get(ctx, "/users/profile"))
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, userID int64) (*models.User, error) {
	return s.one(s.api.Get(ctx, "/users/"+id(userID)))
}

// ByEmail fetches a user by email address.
func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.one(s.api.Get(ctx, "/users/email/"+url.PathEscape(email)))
}

// ByRole lists users with role.
// The marketplace roles have dedicated listings; anything else goes through
// the generic role filter.
func (s *UserService) ByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	switch role {
	case models.RoleFarmer:
		return s.Farmers(ctx)
	case models.RoleDistributor:
		return s.Distributors(ctx)
	case models.RoleRetailer:
		return s.Retailers(ctx)
	case models.RoleConsumer:
		return s.Consumers(ctx)
	}
	return s.list(s.api.Get(ctx, "/users/role/"+string(role)))
}

// All lists every user.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.list(s.api.Get(ctx, "/users"))
}

// Farmers lists users with the FARMER role.
func (s *UserService) Farmers(ctx context.Context) ([]models.User, error) {
	return s.list(s.api.Get(ctx, "/users/farmers/all"))
}

// Distributors lists users with the DISTRIBUTOR role.
func (s *UserService) Distributors(ctx context.Context) ([]models.User, error) {
	return s.list(s.api.Get(ctx, "/users/distributors/all"))
}

// Retailers lists users with the RETAILER role.
func (s *UserService) Retailers(ctx context.Context) ([]models.User, error) {
	return s.list(s.api.Get(ctx, "/users/retailers/all"))
}

// Consumers lists users with the CONSUMER role.
func (s *UserService) Consumers(ctx context.Context) ([]models.User, error) {
	return s.list(s.api.Get(ctx, "/users/consumers/all"))
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return fxhttp.Exec(s.api.Delete(ctx, "/users/"+id(userID)))
}

// TopUp adds amount to the signed-in user's wallet and caches the updated
// user, which announces the new balance to every open view.
func (s *UserService) TopUp(ctx context.Context, amount decimal.Decimal) (*models.User, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("services: top-up amount must be positive, got %s", amount)
	}
	u, err := s.one(s.api.Post(ctx, "/users/top-up").Query("amount", amount.String()))
	if err != nil {
		return nil, err
	}
	if err := s.sess.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("services: cache user: %w", err)
	}
	metrics.AuthChanges.WithLabelValues("refresh").Inc()
	return u, nil
}

func (s *UserService) one(r *fxhttp.Request) (*models.User, error) {
	u, err := fxhttp.Fetch[models.User](r)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) list(r *fxhttp.Request) ([]models.User, error) {
	return fxhttp.Fetch[[]models.User](r)
}
