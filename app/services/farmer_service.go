package services

import (
	"context"
	"net/url"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// FarmerService manages farmer profiles and the farmer's side of order
// fulfilment.
type FarmerService struct {
	api *fxhttp.Client
}

// Profile fetches the signed-in farmer's profile. A farmer without one gets
// a 404 *http.APIError; callers show an empty state.
func (s *FarmerService) Profile(ctx context.Context) (*models.Farmer, error) {
	return s.one(s.api.Get(ctx, "/farmers/profile"))
}

// CreateProfile creates the signed-in farmer's profile.
func (s *FarmerService) CreateProfile(ctx context.Context, req models.FarmerProfileRequest) (*models.Farmer, error) {
	return s.one(s.api.Post(ctx, "/farmers/profile").Body(req))
}

// UpdateProfile replaces the signed-in farmer's profile. Editing resets the
// verification status to pending on the backend.
func (s *FarmerService) UpdateProfile(ctx context.Context, req models.FarmerProfileRequest) (*models.Farmer, error) {
	return s.one(s.api.Put(ctx, "/farmers/profile").Body(req))
}

// Get fetches a farmer by profile id.
func (s *FarmerService) Get(ctx context.Context, farmerID int64) (*models.Farmer, error) {
	return s.one(s.api.Get(ctx, "/farmers/"+id(farmerID)))
}

// ByCrop lists farmers growing cropType.
func (s *FarmerService) ByCrop(ctx context.Context, cropType string) ([]models.Farmer, error) {
	return fxhttp.Fetch[[]models.Farmer](s.api.Get(ctx, "/farmers/crop/"+url.PathEscape(cropType)))
}

// All lists every farmer.
func (s *FarmerService) All(ctx context.Context) ([]models.Farmer, error) {
	return fxhttp.Fetch[[]models.Farmer](s.api.Get(ctx, "/farmers/all"))
}

// Distributors lists the distributors a farmer can hand orders to.
func (s *FarmerService) Distributors(ctx context.Context) ([]models.User, error) {
	return fxhttp.Fetch[[]models.User](s.api.Get(ctx, "/farmers/distributors"))
}

// AssignDistributor hands an accepted order to a distributor.
func (s *FarmerService) AssignDistributor(ctx context.Context, orderID, distributorID int64) (*models.Order, error) {
	o, err := fxhttp.Fetch[models.Order](s.api.Post(ctx, "/farmers/orders/"+id(orderID)+"/assign-distributor").
		Query("distributorId", id(distributorID)))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *FarmerService) one(r *fxhttp.Request) (*models.Farmer, error) {
	f, err := fxhttp.Fetch[models.Farmer](r)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
