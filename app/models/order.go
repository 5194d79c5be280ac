package models

import "github.com/shopspring/decimal"

// Order is a purchase of part of a crop listing.
type Order struct {
	ID               int64               `json:"id"`
	BuyerID          int64               `json:"buyerId"`
	BuyerName        string              `json:"buyerName"`
	BuyerRole        Role                `json:"buyerRole,omitempty"`
	FarmerID         int64               `json:"farmerId"`
	FarmName         string              `json:"farmName"`
	CropID           int64               `json:"cropId"`
	CropName         string              `json:"cropName"`
	Quantity         decimal.Decimal     `json:"quantity"`
	TotalPrice       decimal.Decimal     `json:"totalPrice"`
	Status           OrderStatus         `json:"status"`
	DistributorID    *int64              `json:"distributorId,omitempty"`
	DistributorName  string              `json:"distributorName,omitempty"`
	BlockchainTxHash string              `json:"blockchainTxHash,omitempty"`
	DeliveryAddress  string              `json:"deliveryAddress,omitempty"`
	DeliveryFee      decimal.NullDecimal `json:"deliveryFee"`
	CreatedAt        Timestamp           `json:"createdAt"`
	UpdatedAt        Timestamp           `json:"updatedAt"`
}

// LastActivity is UpdatedAt, or CreatedAt for orders never updated.
func (o *Order) LastActivity() Timestamp {
	if o.UpdatedAt.IsZero() {
		return o.CreatedAt
	}
	return o.UpdatedAt
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	CropID          int64           `json:"cropId"          validate:"required,gt=0"`
	Quantity        decimal.Decimal `json:"quantity"        validate:"required,dgt=0"`
	DeliveryAddress string          `json:"deliveryAddress" validate:"required,min=5"`
}
