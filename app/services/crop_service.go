package services

import (
	"context"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// CropService manages crop listings.
type CropService struct {
	api *fxhttp.Client
}

// Add lists a new crop for the signed-in farmer.
func (s *CropService) Add(ctx context.Context, req models.CropRequest) (*models.Crop, error) {
	c, err := fxhttp.Fetch[models.Crop](s.api.Post(ctx, "/crops/add").Body(req))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Mine lists the signed-in farmer's crops.
func (s *CropService) Mine(ctx context.Context) ([]models.Crop, error) {
	return fxhttp.Fetch[[]models.Crop](s.api.Get(ctx, "/crops/my-crops"))
}

// Get fetches one crop.
func (s *CropService) Get(ctx context.Context, cropID int64) (*models.Crop, error) {
	c, err := fxhttp.Fetch[models.Crop](s.api.Get(ctx, "/crops/"+id(cropID)))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// All lists every crop on the marketplace.
func (s *CropService) All(ctx context.Context) ([]models.Crop, error) {
	return fxhttp.Fetch[[]models.Crop](s.api.Get(ctx, "/crops/all"))
}

// BlockchainRecords lists crops that carry ledger references.
func (s *CropService) BlockchainRecords(ctx context.Context) ([]models.Crop, error) {
	return fxhttp.Fetch[[]models.Crop](s.api.Get(ctx, "/crops/blockchain-records"))
}

// VerifyBlockchain asks the backend to recompute and compare a crop's hash.
func (s *CropService) VerifyBlockchain(ctx context.Context, cropID int64) (*models.BlockchainVerification, error) {
	v, err := fxhttp.Fetch[models.BlockchainVerification](s.api.Get(ctx, "/crops/"+id(cropID)+"/verify-blockchain"))
	if err != nil {
		return nil, err
	}
	return &v, nil
}
