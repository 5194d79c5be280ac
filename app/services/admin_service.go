package services

import (
	"context"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// UserAction is an administrator's decision on an account.
type UserAction string

const (
	ActionVerify   UserAction = "verify"
	ActionReject   UserAction = "reject"
	ActionSuspend  UserAction = "suspend"
	ActionActivate UserAction = "activate"
)

// Valid reports whether a is one of the known actions.
func (a UserAction) Valid() bool {
	switch a {
	case ActionVerify, ActionReject, ActionSuspend, ActionActivate:
		return true
	}
	return false
}

// AdminService is the administrator's view of users, farmers and orders.
type AdminService struct {
	api *fxhttp.Client
}

// Users lists every account.
func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return fxhttp.Fetch[[]models.User](s.api.Get(ctx, "/admin/users"))
}

// PendingUsers lists accounts awaiting approval.
func (s *AdminService) PendingUsers(ctx context.Context) ([]models.User, error) {
	return fxhttp.Fetch[[]models.User](s.api.Get(ctx, "/admin/users/pending"))
}

// UserAction applies action to an account.
func (s *AdminService) UserAction(ctx context.Context, userID int64, action UserAction) (*models.User, error) {
	u, err := fxhttp.Fetch[models.User](s.api.Post(ctx, "/admin/users/"+id(userID)+"/"+string(action)))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PendingFarmers lists farmer profiles awaiting verification.
func (s *AdminService) PendingFarmers(ctx context.Context) ([]models.Farmer, error) {
	return fxhttp.Fetch[[]models.Farmer](s.api.Get(ctx, "/admin/farmers/pending"))
}

// FarmersByStatus lists farmer profiles in status.
func (s *AdminService) FarmersByStatus(ctx context.Context, status models.VerificationStatus) ([]models.Farmer, error) {
	return fxhttp.Fetch[[]models.Farmer](s.api.Get(ctx, "/admin/farmers/status/"+string(status)))
}

// Farmer fetches a farmer profile.
func (s *AdminService) Farmer(ctx context.Context, farmerID int64) (*models.Farmer, error) {
	f, err := fxhttp.Fetch[models.Farmer](s.api.Get(ctx, "/admin/farmers/"+id(farmerID)))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteFarmer removes a farmer profile.
func (s *AdminService) DeleteFarmer(ctx context.Context, farmerID int64) error {
	return fxhttp.Exec(s.api.Delete(ctx, "/admin/farmers/"+id(farmerID)))
}

// VerifyFarmer marks a farmer profile verified.
func (s *AdminService) VerifyFarmer(ctx context.Context, farmerID int64) (*models.Farmer, error) {
	f, err := fxhttp.Fetch[models.Farmer](s.api.Post(ctx, "/admin/farmers/"+id(farmerID)+"/verify"))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RejectFarmer rejects a farmer profile with a reason shown to the farmer.
func (s *AdminService) RejectFarmer(ctx context.Context, farmerID int64, reason string) (*models.Farmer, error) {
	f, err := fxhttp.Fetch[models.Farmer](s.api.Post(ctx, "/admin/farmers/"+id(farmerID)+"/reject").
		Body(models.RejectFarmerRequest{RejectionReason: reason}))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FarmerCount is the number of farmer profiles.
func (s *AdminService) FarmerCount(ctx context.Context) (int64, error) {
	return fxhttp.Fetch[int64](s.api.Get(ctx, "/admin/stats/farmers"))
}

// UserCount is the number of accounts.
func (s *AdminService) UserCount(ctx context.Context) (int64, error) {
	return fxhttp.Fetch[int64](s.api.Get(ctx, "/admin/stats/users"))
}

// Orders lists every order on the platform.
func (s *AdminService) Orders(ctx context.Context) ([]models.Order, error) {
	return fxhttp.Fetch[[]models.Order](s.api.Get(ctx, "/admin/orders"))
}

// AssignDistributor hands an order to a distributor on the farmer's behalf.
func (s *AdminService) AssignDistributor(ctx context.Context, orderID, distributorID int64) (*models.Order, error) {
	o, err := fxhttp.Fetch[models.Order](s.api.Post(ctx, "/admin/orders/"+id(orderID)+"/assign-distributor").
		Query("distributorId", id(distributorID)))
	if err != nil {
		return nil, err
	}
	return &o, nil
}
