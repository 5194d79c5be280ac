package services

import (
	"context"

	"github.com/farmxchain/farmx/app/models"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// DistributorService is the distributor's delivery workflow.
type DistributorService struct {
	api *fxhttp.Client
}

// AssignedOrders lists orders assigned to the signed-in distributor,
// optionally filtered by status ("" for all).
func (s *DistributorService) AssignedOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return fxhttp.Fetch[[]models.Order](s.api.Get(ctx, "/distributor/orders").Query("status", string(status)))
}

// CreateShipment starts a shipment for an assigned order.
func (s *DistributorService) CreateShipment(ctx context.Context, req models.ShipmentRequest) (*models.Shipment, error) {
	sh, err := fxhttp.Fetch[models.Shipment](s.api.Post(ctx, "/distributor/shipments").Body(req))
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// UpdateShipmentStatus records a status change with the current conditions.
func (s *DistributorService) UpdateShipmentStatus(ctx context.Context, shipmentID int64, req models.ShipmentStatusUpdateRequest) (*models.Shipment, error) {
	sh, err := fxhttp.Fetch[models.Shipment](s.api.Put(ctx, "/distributor/shipments/"+id(shipmentID)+"/status").Body(req))
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// ConfirmDelivery closes a shipment and returns its custody references.
func (s *DistributorService) ConfirmDelivery(ctx context.Context, req models.DeliveryConfirmationRequest) (*models.DeliveryConfirmation, error) {
	c, err := fxhttp.Fetch[models.DeliveryConfirmation](s.api.Post(ctx, "/distributor/shipments/deliver").Body(req))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ShipmentLogs lists a shipment's custody trail.
func (s *DistributorService) ShipmentLogs(ctx context.Context, shipmentID int64) ([]models.ShipmentLog, error) {
	return fxhttp.Fetch[[]models.ShipmentLog](s.api.Get(ctx, "/distributor/shipments/"+id(shipmentID)+"/logs"))
}
