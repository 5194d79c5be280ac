package models

// Role is a user's marketplace role.
type Role string

const (
	RoleFarmer      Role = "FARMER"
	RoleDistributor Role = "DISTRIBUTOR"
	RoleRetailer    Role = "RETAILER"
	RoleConsumer    Role = "CONSUMER"
	RoleAdmin       Role = "ADMIN"
)

// Roles lists every role in display order.
var Roles = []Role{RoleFarmer, RoleDistributor, RoleRetailer, RoleConsumer, RoleAdmin}

// Buyer reports whether the role purchases crops on the marketplace.
func (r Role) Buyer() bool {
	return r == RoleDistributor || r == RoleRetailer || r == RoleConsumer
}

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	UserPending   UserStatus = "PENDING"
	UserVerified  UserStatus = "VERIFIED"
	UserActive    UserStatus = "ACTIVE"
	UserRejected  UserStatus = "REJECTED"
	UserSuspended UserStatus = "SUSPENDED"
)

// VerificationStatus is a farmer profile's review state.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// OrderStatus is an order's lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderRejected  OrderStatus = "REJECTED"
	OrderAssigned  OrderStatus = "ASSIGNED"
	OrderInTransit OrderStatus = "IN_TRANSIT"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Active reports whether the order still needs attention.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderAssigned, OrderInTransit, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Past reports whether the order reached a final state.
func (s OrderStatus) Past() bool {
	switch s {
	case OrderCompleted, OrderRejected, OrderCancelled:
		return true
	}
	return false
}

// Trackable reports whether a shipment may exist for the order.
func (s OrderStatus) Trackable() bool {
	switch s {
	case OrderAssigned, OrderInTransit, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// ShipmentStatus is the state of a shipment.
type ShipmentStatus string

const (
	ShipmentAssigned  ShipmentStatus = "ASSIGNED"
	ShipmentPickedUp  ShipmentStatus = "PICKED_UP"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
)

// ShipmentAction is the kind of a shipment log entry.
type ShipmentAction string

const (
	ActionPickedUp       ShipmentAction = "PICKED_UP"
	ActionLocationUpdate ShipmentAction = "LOCATION_UPDATE"
	ActionStatusUpdate   ShipmentAction = "STATUS_UPDATE"
	ActionDelivered      ShipmentAction = "DELIVERED"
)

// TransportMode is how a shipment travels.
type TransportMode string

const (
	TransportTruck TransportMode = "TRUCK"
	TransportTrain TransportMode = "TRAIN"
	TransportShip  TransportMode = "SHIP"
	TransportAir   TransportMode = "AIR"
	TransportOther TransportMode = "OTHER"
)
