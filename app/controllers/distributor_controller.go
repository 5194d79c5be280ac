package controllers

import (
	"fmt"
	"net/http"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/validate"
)

type deliveriesData struct {
	Tab      views.DistributorTab
	Tabs     []views.Tab
	Rows     []deliveryRow
	Modes    []models.TransportMode
	Statuses []models.ShipmentStatus
}

type deliveryRow struct {
	models.Order
	Actions []views.DeliveryAction
}

var transportModes = []models.TransportMode{
	models.TransportTruck, models.TransportTrain, models.TransportShip, models.TransportAir, models.TransportOther,
}

// Deliveries GET /distributor?tab=
func (c *Controller) Deliveries(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Distributor Dashboard")

	orders, err := c.services(r).Distributor.AssignedOrders(r.Context(), "")
	if err != nil {
		p.Fail(err, "Failed to load assigned orders")
	}

	tab := views.ParseDistributorTab(r.URL.Query().Get("tab"))
	data := deliveriesData{
		Tab:      tab,
		Tabs:     views.DistributorTabs(orders),
		Modes:    transportModes,
		Statuses: shipmentStatuses,
	}
	for _, o := range views.FilterDistributorOrders(orders, tab) {
		data.Rows = append(data.Rows, deliveryRow{Order: o, Actions: views.DeliveryActions(o)})
	}

	p.Data = data
	c.render(w, r, http.StatusOK, "distributor", p)
}

// CreateShipment POST /distributor/orders/{id}/shipment
func (c *Controller) CreateShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	req := models.ShipmentRequest{
		OrderID:       id,
		Origin:        formString(r, "origin"),
		Destination:   formString(r, "destination"),
		TransportMode: models.TransportMode(formString(r, "transportMode")),
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		redirectErr(w, r, "/distributor", validate.First(errs))
		return
	}
	if _, err := c.services(r).Distributor.CreateShipment(r.Context(), req); err != nil {
		redirectErr(w, r, "/distributor", views.ErrorMessage(err, "Failed to create shipment"))
		return
	}
	redirectOK(w, r, "/distributor?tab=in-transit", "Shipment created successfully!")
}

// shipmentFor finds the shipment of an order row, which the deliveries page
// only knows by order id.
func (c *Controller) shipmentFor(r *http.Request, orderID int64) (*models.Shipment, error) {
	return c.services(r).Logistics.ByOrder(r.Context(), orderID)
}

// UpdateShipment POST /distributor/orders/{id}/status
func (c *Controller) UpdateShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	req := models.ShipmentStatusUpdateRequest{
		Status:          models.ShipmentStatus(formString(r, "status")),
		CurrentLocation: formString(r, "currentLocation"),
		Temperature:     formFloat(r, "temperature"),
		Humidity:        formFloat(r, "humidity"),
		Notes:           formString(r, "notes"),
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		redirectErr(w, r, "/distributor?tab=in-transit", validate.First(errs))
		return
	}

	sh, err := c.shipmentFor(r, id)
	if err != nil {
		redirectErr(w, r, "/distributor?tab=in-transit", views.ErrorMessage(err, "Failed to fetch shipment details"))
		return
	}
	if _, err := c.services(r).Distributor.UpdateShipmentStatus(r.Context(), sh.ID, req); err != nil {
		redirectErr(w, r, "/distributor?tab=in-transit", views.ErrorMessage(err, "Failed to update shipment status"))
		return
	}
	redirectOK(w, r, "/distributor?tab=in-transit", "Shipment status updated successfully!")
}

// ConfirmDelivery POST /distributor/orders/{id}/deliver
func (c *Controller) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	sh, err := c.shipmentFor(r, id)
	if err != nil {
		redirectErr(w, r, "/distributor?tab=in-transit", views.ErrorMessage(err, "Failed to fetch shipment details"))
		return
	}

	s := c.services(r)
	conf, err := s.Distributor.ConfirmDelivery(r.Context(), models.DeliveryConfirmationRequest{
		ShipmentID:    sh.ID,
		DeliveryNotes: formString(r, "deliveryNotes"),
	})
	if err != nil {
		redirectErr(w, r, "/distributor?tab=in-transit", views.ErrorMessage(err, "Failed to confirm delivery"))
		return
	}
	c.refreshProfile(r.Context(), s)
	redirectOK(w, r, "/distributor?tab=delivered", "Delivery confirmed! Custody Hash: "+conf.CustodyHash)
}

type logsData struct {
	OrderID  int64
	Shipment *models.Shipment
	Logs     []models.ShipmentLog
}

// ShipmentLogs GET /distributor/orders/{id}/logs
func (c *Controller) ShipmentLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := c.page(w, r, fmt.Sprintf("Shipment Logs for Order #%d", id))
	data := logsData{OrderID: id}

	sh, err := c.shipmentFor(r, id)
	sh, err = views.Optional(sh, err)
	switch {
	case err != nil:
		p.Fail(err, "Failed to fetch shipment details")
	case sh != nil:
		data.Shipment = sh
		if data.Logs, err = c.services(r).Distributor.ShipmentLogs(r.Context(), sh.ID); err != nil {
			p.Fail(err, "Failed to fetch shipment logs")
		}
	}

	p.Data = data
	c.render(w, r, http.StatusOK, "shipment_logs", p)
}

// Earnings GET /earnings
func (c *Controller) Earnings(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Earnings History")
	orders, err := c.services(r).Distributor.AssignedOrders(r.Context(), "")
	if err != nil {
		p.Fail(err, "Failed to load earnings history")
	}
	p.Data = views.ComputeEarnings(orders)
	c.render(w, r, http.StatusOK, "earnings", p)
}
