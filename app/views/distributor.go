package views

import (
	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/collection"
)

// DistributorTab keys the tabs of the deliveries page.
type DistributorTab string

const (
	TabAssigned  DistributorTab = "assigned"
	TabInTransit DistributorTab = "in-transit"
	TabDelivered DistributorTab = "delivered"
	TabAll       DistributorTab = "all"
)

// Tab is one tab header with its row count.
type Tab struct {
	Key   DistributorTab
	Label string
	Count int
}

type tabDef struct {
	key    DistributorTab
	label  string
	status models.OrderStatus
}

var distributorTabs = []tabDef{
	{TabAssigned, "Assigned", models.OrderAssigned},
	{TabInTransit, "In Transit", models.OrderInTransit},
	{TabDelivered, "Delivered", models.OrderDelivered},
	{TabAll, "All Orders", ""},
}

// DistributorTabs returns the tab headers with counts over orders.
func DistributorTabs(orders []models.Order) []Tab {
	return collection.Map(distributorTabs, func(t tabDef) Tab {
		return Tab{Key: t.key, Label: t.label, Count: len(FilterDistributorOrders(orders, t.key))}
	})
}

// ParseDistributorTab maps a query value to a tab, defaulting to TabAssigned.
func ParseDistributorTab(s string) DistributorTab {
	for _, t := range distributorTabs {
		if string(t.key) == s {
			return t.key
		}
	}
	return TabAssigned
}

// FilterDistributorOrders returns the orders shown under tab.
func FilterDistributorOrders(orders []models.Order, tab DistributorTab) []models.Order {
	for _, t := range distributorTabs {
		if t.key != tab || t.status == "" {
			continue
		}
		return collection.Filter(orders, func(o models.Order) bool { return o.Status == t.status })
	}
	return orders
}

// DeliveryAction is something a distributor can do to an assigned order.
type DeliveryAction string

const (
	DeliveryCreateShipment DeliveryAction = "create-shipment"
	DeliveryUpdate         DeliveryAction = "update"
	DeliveryConfirm        DeliveryAction = "deliver"
	DeliveryLogs           DeliveryAction = "logs"
)

// DeliveryActions lists the distributor actions for o.
func DeliveryActions(o models.Order) []DeliveryAction {
	switch o.Status {
	case models.OrderAssigned:
		return []DeliveryAction{DeliveryCreateShipment}
	case models.OrderInTransit:
		return []DeliveryAction{DeliveryUpdate, DeliveryConfirm, DeliveryLogs}
	case models.OrderDelivered:
		return []DeliveryAction{DeliveryLogs}
	}
	return nil
}
