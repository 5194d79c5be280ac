package services

import (
	"context"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// LogisticsService tracks shipments by order.
type LogisticsService struct {
	api *fxhttp.Client
}

// Start opens a shipment for an order.
func (s *LogisticsService) Start(ctx context.Context, orderID int64) (*models.Shipment, error) {
	return s.one(s.api.Post(ctx, "/logistics/order/"+id(orderID)))
}

// Update records the shipment's location, conditions or status.
func (s *LogisticsService) Update(ctx context.Context, shipmentID int64, req models.LogisticsUpdateRequest) (*models.Shipment, error) {
	return s.one(s.api.Patch(ctx, "/logistics/"+id(shipmentID)).Body(req))
}

// ByOrder fetches the shipment of an order, logs included. An order that has
// not shipped yet is a 404 *http.APIError.
func (s *LogisticsService) ByOrder(ctx context.Context, orderID int64) (*models.Shipment, error) {
	return s.one(s.api.Get(ctx, "/logistics/order/"+id(orderID)))
}

func (s *LogisticsService) one(r *fxhttp.Request) (*models.Shipment, error) {
	sh, err := fxhttp.Fetch[models.Shipment](r)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}
