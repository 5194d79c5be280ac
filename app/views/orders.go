// Package views holds the render-state logic behind the portal pages and the
// CLI tables: which orders land in which tab, which actions a row offers,
// how earnings add up, and how errors turn into banners. Nothing here talks
// to the network except LoadStatistics.
package views

import (
	"strconv"
	"strings"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/collection"
)

// OrderTab selects a slice of the orders page.
type OrderTab string

const (
	TabActive OrderTab = "active"
	TabPast   OrderTab = "past"
)

// ParseOrderTab maps a query value to a tab, defaulting to TabActive.
func ParseOrderTab(s string) OrderTab {
	if OrderTab(s) == TabPast {
		return TabPast
	}
	return TabActive
}

// FilterOrders returns the orders that belong on tab, in input order.
func FilterOrders(orders []models.Order, tab OrderTab) []models.Order {
	if tab == TabPast {
		return collection.Filter(orders, func(o models.Order) bool { return o.Status.Past() })
	}
	return collection.Filter(orders, func(o models.Order) bool { return o.Status.Active() })
}

// OrderAction is something a viewer can do to an order row.
type OrderAction string

const (
	ActionAccept         OrderAction = "accept"
	ActionReject         OrderAction = "reject"
	ActionAssign         OrderAction = "assign"
	ActionTrackingInfo   OrderAction = "tracking-info"
	ActionTrack          OrderAction = "track"
	ActionConfirmReceipt OrderAction = "confirm-receipt"
)

// Status is the order status an action moves the order to, or "" for
// actions that do not change the status directly.
func (a OrderAction) Status() models.OrderStatus {
	switch a {
	case ActionAccept:
		return models.OrderAccepted
	case ActionReject:
		return models.OrderRejected
	case ActionConfirmReceipt:
		return models.OrderCompleted
	}
	return ""
}

// OrderActions lists the actions role may take on o, in display order.
func OrderActions(o models.Order, role models.Role) []OrderAction {
	farmer := role == models.RoleFarmer
	var out []OrderAction

	switch {
	case farmer && o.Status == models.OrderPending:
		out = append(out, ActionAccept, ActionReject)
	case farmer && o.Status == models.OrderAccepted:
		out = append(out, ActionAssign)
	case farmer && (o.Status == models.OrderAssigned || o.Status == models.OrderInTransit):
		out = append(out, ActionTrackingInfo)
	}

	switch o.Status {
	case models.OrderInTransit, models.OrderShipped, models.OrderDelivered:
		out = append(out, ActionTrack)
	}

	if !farmer && o.Status == models.OrderDelivered {
		out = append(out, ActionConfirmReceipt)
	}
	return out
}

// HasAction reports whether role may take a on o.
func HasAction(o models.Order, role models.Role, a OrderAction) bool {
	return collection.Contains(OrderActions(o, role), func(x OrderAction) bool { return x == a })
}

// StatusUpdatedMessage is the success banner after an order status change.
func StatusUpdatedMessage(status models.OrderStatus) string {
	switch status {
	case models.OrderAccepted:
		return "Order approved successfully"
	case models.OrderRejected:
		return "Order rejected successfully"
	}
	return "Order finalized successfully"
}

// OrdersSubtitle is the orders page subtitle for role.
func OrdersSubtitle(role models.Role) string {
	if role == models.RoleFarmer {
		return "Manage your incoming orders and assign distributors."
	}
	return "Track your crop purchases and deliveries."
}

// SearchOrders keeps orders whose id or farmer id contains q, or whose buyer
// or crop name contains q ignoring case. An empty q matches everything.
func SearchOrders(orders []models.Order, q string) []models.Order {
	if q == "" {
		return orders
	}
	return collection.Filter(orders, func(o models.Order) bool {
		return strings.Contains(strconv.FormatInt(o.ID, 10), q) ||
			strings.Contains(strconv.FormatInt(o.FarmerID, 10), q) ||
			containsFold(o.BuyerName, q) ||
			containsFold(o.CropName, q)
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
