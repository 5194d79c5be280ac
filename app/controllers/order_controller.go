package controllers

import (
	"fmt"
	"net/http"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/validate"
)

type ordersData struct {
	Tab          views.OrderTab
	Subtitle     string
	Rows         []orderRow
	ActiveCount  int
	PastCount    int
	Distributors []models.User
}

type orderRow struct {
	models.Order
	Actions []views.OrderAction
}

// Orders GET /orders?tab=active|past. Farmers see their sales, everyone else
// their purchases.
func (c *Controller) Orders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := c.services(r)
	role := currentRole(ctx, s)
	p := c.page(w, r, "Orders")

	orders, err := s.Orders.ForRole(ctx, role)
	if err != nil {
		p.Fail(err, "Failed to load orders")
	}

	tab := views.ParseOrderTab(r.URL.Query().Get("tab"))
	data := ordersData{
		Tab:         tab,
		Subtitle:    views.OrdersSubtitle(role),
		ActiveCount: len(views.FilterOrders(orders, views.TabActive)),
		PastCount:   len(views.FilterOrders(orders, views.TabPast)),
	}
	needsDistributors := false
	for _, o := range views.FilterOrders(orders, tab) {
		row := orderRow{Order: o, Actions: views.OrderActions(o, role)}
		needsDistributors = needsDistributors || views.HasAction(o, role, views.ActionAssign)
		data.Rows = append(data.Rows, row)
	}

	if needsDistributors {
		ds, err := s.Farmers.Distributors(ctx)
		if err != nil {
			logger.WithCtx(ctx).Warn("load distributors failed", "error", err)
		}
		data.Distributors = ds
	}

	p.Data = data
	c.render(w, r, http.StatusOK, "orders", p)
}

// UpdateOrderStatus POST /orders/{id}/status with action=accept|reject|confirm-receipt.
// The backend decides whether the viewer may make the transition.
func (c *Controller) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	action := views.OrderAction(formString(r, "action"))
	status := action.Status()
	if status == "" {
		redirectErr(w, r, "/orders", "Unknown order action")
		return
	}

	s := c.services(r)
	if _, err := s.Orders.UpdateStatus(ctx, id, status); err != nil {
		redirectErr(w, r, "/orders", views.ErrorMessage(err, "Failed to update status"))
		return
	}
	c.refreshProfile(ctx, s)
	redirectOK(w, r, "/orders", views.StatusUpdatedMessage(status))
}

// AssignDistributor POST /orders/{id}/assign
func (c *Controller) AssignDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	distributorID := formInt64(r, "distributorId")
	if distributorID <= 0 {
		redirectErr(w, r, "/orders", "Please select a distributor")
		return
	}

	if _, err := c.services(r).Farmers.AssignDistributor(r.Context(), id, distributorID); err != nil {
		redirectErr(w, r, "/orders", views.ErrorMessage(err, "Failed to assign distributor"))
		return
	}
	redirectOK(w, r, "/orders", "Distributor assigned successfully! Order is now ASSIGNED.")
}

type trackingData struct {
	OrderID  int64
	Shipment *models.Shipment
	Statuses []models.ShipmentStatus
}

var shipmentStatuses = []models.ShipmentStatus{
	models.ShipmentAssigned, models.ShipmentPickedUp, models.ShipmentInTransit, models.ShipmentDelivered,
}

// Tracking GET /tracking/{orderId}. No shipment yet is an empty state.
func (c *Controller) Tracking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := c.page(w, r, fmt.Sprintf("Tracking Order #%d", id))

	sh, err := c.services(r).Logistics.ByOrder(r.Context(), id)
	sh, err = views.Optional(sh, err)
	if err != nil {
		p.Fail(err, "Failed to load shipment")
	}

	p.Data = trackingData{OrderID: id, Shipment: sh, Statuses: shipmentStatuses}
	c.render(w, r, http.StatusOK, "tracking", p)
}

// UpdateTracking POST /tracking/{orderId} records a location or sensor update.
func (c *Controller) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := fmt.Sprintf("/tracking/%d", orderID)
	shipmentID := formInt64(r, "shipmentId")
	if shipmentID <= 0 {
		redirectErr(w, r, back, "Shipment tracking information not found.")
		return
	}

	req := models.LogisticsUpdateRequest{
		Location:    formString(r, "location"),
		Temperature: formFloat(r, "temperature"),
		Humidity:    formFloat(r, "humidity"),
		Status:      models.ShipmentStatus(formString(r, "status")),
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		redirectErr(w, r, back, validate.First(errs))
		return
	}
	if _, err := c.services(r).Logistics.Update(r.Context(), shipmentID, req); err != nil {
		redirectErr(w, r, back, views.ErrorMessage(err, "Failed to update shipment"))
		return
	}
	redirectOK(w, r, back, "Shipment updated successfully")
}
