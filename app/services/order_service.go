package services

import (
	"context"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// OrderService places and moves orders.
type OrderService struct {
	api *fxhttp.Client
}

// Place buys part of a crop listing. The price is charged to the buyer's wallet.
func (s *OrderService) Place(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	o, err := fxhttp.Fetch[models.Order](s.api.Post(ctx, "/orders").Body(req))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Purchases lists orders the signed-in user placed.
func (s *OrderService) Purchases(ctx context.Context) ([]models.Order, error) {
	return fxhttp.Fetch[[]models.Order](s.api.Get(ctx, "/orders/buyer"))
}

// Sales lists orders placed on the signed-in farmer's crops.
func (s *OrderService) Sales(ctx context.Context) ([]models.Order, error) {
	return fxhttp.Fetch[[]models.Order](s.api.Get(ctx, "/orders/farmer"))
}

// UpdateStatus moves an order to status.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	o, err := fxhttp.Fetch[models.Order](s.api.Patch(ctx, "/orders/"+id(orderID)+"/status").
		Query("status", string(status)))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ForRole lists the orders relevant to role: sales for farmers, purchases
// for everyone else.
func (s *OrderService) ForRole(ctx context.Context, role models.Role) ([]models.Order, error) {
	if role == models.RoleFarmer {
		return s.Sales(ctx)
	}
	return s.Purchases(ctx)
}
