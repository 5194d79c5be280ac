package models

import "github.com/shopspring/decimal"

// Crop is a listing on the marketplace. BlockchainHash and BlockchainTxHash
// are opaque ledger references.
type Crop struct {
	ID                    int64           `json:"id"`
	Farmer                *Farmer         `json:"farmer,omitempty"`
	CropName              string          `json:"cropName"`
	QuantityKg            decimal.Decimal `json:"quantityKg"`
	PricePerKg            decimal.Decimal `json:"pricePerKg"`
	HarvestDate           Timestamp       `json:"harvestDate"`
	QualityCertificateURL string          `json:"qualityCertificateUrl,omitempty"`
	BlockchainHash        string          `json:"blockchainHash,omitempty"`
	BlockchainTxHash      string          `json:"blockchainTxHash,omitempty"`
	OriginLocation        string          `json:"originLocation,omitempty"`
	QualityData           string          `json:"qualityData,omitempty"`
	SoilType              string          `json:"soilType,omitempty"`
	PesticidesUsed        string          `json:"pesticidesUsed,omitempty"`
	ImageURL              string          `json:"imageUrl,omitempty"`
	CreatedAt             Timestamp       `json:"createdAt"`
	UpdatedAt             Timestamp       `json:"updatedAt"`
}

// FarmName is the listing farmer's farm, or "" when not embedded.
func (c *Crop) FarmName() string {
	if c.Farmer == nil {
		return ""
	}
	return c.Farmer.FarmName
}

// OnChain reports whether the crop has been recorded on the ledger.
func (c *Crop) OnChain() bool { return c.BlockchainHash != "" || c.BlockchainTxHash != "" }

// CropRequest is the body of POST /crops/add.
type CropRequest struct {
	CropName              string          `json:"cropName"                        validate:"required"`
	QuantityKg            decimal.Decimal `json:"quantityKg"                      validate:"required,dgt=0"`
	PricePerKg            decimal.Decimal `json:"pricePerKg"                      validate:"required,dgt=0"`
	HarvestDate           Timestamp       `json:"harvestDate"                     validate:"required"`
	QualityCertificateURL string          `json:"qualityCertificateUrl,omitempty" validate:"omitempty,url"`
	OriginLocation        string          `json:"originLocation,omitempty"`
	QualityData           string          `json:"qualityData,omitempty"`
	SoilType              string          `json:"soilType,omitempty"`
	PesticidesUsed        string          `json:"pesticidesUsed,omitempty"`
	ImageURL              string          `json:"imageUrl,omitempty"              validate:"omitempty,url"`
}

// BlockchainVerification is the data of GET /crops/{id}/verify-blockchain.
type BlockchainVerification struct {
	CropID       int64  `json:"cropId"`
	Verified     bool   `json:"verified"`
	StoredHash   string `json:"storedHash,omitempty"`
	ComputedHash string `json:"computedHash,omitempty"`
	TxHash       string `json:"txHash,omitempty"`
	Message      string `json:"message,omitempty"`
}
