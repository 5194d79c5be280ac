package models

// Shipment is the physical movement of one order. CustodyHash and
// BlockchainTxHash are opaque ledger references.
type Shipment struct {
	ID               int64          `json:"id"`
	OrderID          int64          `json:"orderId"`
	DistributorID    int64          `json:"distributorId"`
	DistributorName  string         `json:"distributorName,omitempty"`
	Origin           string         `json:"origin"`
	Destination      string         `json:"destination"`
	TransportMode    TransportMode  `json:"transportMode"`
	CurrentLocation  string         `json:"currentLocation,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	Humidity         *float64       `json:"humidity,omitempty"`
	Status           ShipmentStatus `json:"status"`
	LastUpdated      Timestamp      `json:"lastUpdated"`
	BlockchainTxHash string         `json:"blockchainTxHash,omitempty"`
	CustodyHash      string         `json:"custodyHash,omitempty"`
	Logs             []ShipmentLog  `json:"logs,omitempty"`
}

// ShipmentLog is one entry in a shipment's custody trail.
type ShipmentLog struct {
	ID               int64          `json:"id"`
	ShipmentID       int64          `json:"shipmentId"`
	Action           ShipmentAction `json:"action"`
	Location         string         `json:"location,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	CreatedAt        Timestamp      `json:"createdAt"`
	BlockchainTxHash string         `json:"blockchainTxHash,omitempty"`
}

// ShipmentRequest is the body of POST /distributor/shipments.
type ShipmentRequest struct {
	OrderID       int64         `json:"orderId"       validate:"required,gt=0"`
	Origin        string        `json:"origin"        validate:"required"`
	Destination   string        `json:"destination"   validate:"required"`
	TransportMode TransportMode `json:"transportMode" validate:"required,oneof=TRUCK TRAIN SHIP AIR OTHER"`
}

// ShipmentStatusUpdateRequest is the body of PUT /distributor/shipments/{id}/status.
type ShipmentStatusUpdateRequest struct {
	Status          ShipmentStatus `json:"status"                    validate:"required,oneof=ASSIGNED PICKED_UP IN_TRANSIT DELIVERED"`
	CurrentLocation string         `json:"currentLocation,omitempty"`
	Temperature     *float64       `json:"temperature,omitempty"     validate:"omitempty,gte=-50,lte=80"`
	Humidity        *float64       `json:"humidity,omitempty"        validate:"omitempty,gte=0,lte=100"`
	Notes           string         `json:"notes,omitempty"`
}

// DeliveryConfirmationRequest is the body of POST /distributor/shipments/deliver.
type DeliveryConfirmationRequest struct {
	ShipmentID    int64  `json:"shipmentId"              validate:"required,gt=0"`
	DeliveryNotes string `json:"deliveryNotes,omitempty"`
}

// DeliveryConfirmation is the data of a confirmed delivery.
type DeliveryConfirmation struct {
	OrderID          int64  `json:"orderId"`
	ShipmentID       int64  `json:"shipmentId"`
	CustodyHash      string `json:"custodyHash,omitempty"`
	BlockchainTxHash string `json:"blockchainTxHash,omitempty"`
	Message          string `json:"message,omitempty"`
}

// LogisticsUpdateRequest is the body of PATCH /logistics/{id}.
type LogisticsUpdateRequest struct {
	Location    string         `json:"location,omitempty"`
	Temperature *float64       `json:"temperature,omitempty" validate:"omitempty,gte=-50,lte=80"`
	Humidity    *float64       `json:"humidity,omitempty"    validate:"omitempty,gte=0,lte=100"`
	Status      ShipmentStatus `json:"status,omitempty"      validate:"omitempty,oneof=ASSIGNED PICKED_UP IN_TRANSIT DELIVERED"`
}
