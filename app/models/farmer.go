package models

import "github.com/shopspring/decimal"

// Farmer is a farmer's profile, created at registration with defaults and
// completed by the farmer before an administrator verifies it.
type Farmer struct {
	ID                 int64               `json:"id"`
	User               *User               `json:"user,omitempty"`
	FarmName           string              `json:"farmName"`
	FarmLocation       string              `json:"farmLocation"`
	Latitude           *float64            `json:"latitude,omitempty"`
	Longitude          *float64            `json:"longitude,omitempty"`
	FarmSizeAcres      decimal.NullDecimal `json:"farmSizeAcres"`
	CropType           string              `json:"cropType"`
	CropVarieties      string              `json:"cropVarieties,omitempty"`
	FarmingMethod      string              `json:"farmingMethod,omitempty"`
	LicenseNumber      string              `json:"licenseNumber,omitempty"`
	AadharNumber       string              `json:"aadharNumber,omitempty"`
	BankAccountHolder  string              `json:"bankAccountHolder,omitempty"`
	BankAccountNumber  string              `json:"bankAccountNumber,omitempty"`
	BankIFSCCode       string              `json:"bankIfscCode,omitempty"`
	BankName           string              `json:"bankName,omitempty"`
	UPIID              string              `json:"upiId,omitempty"`
	VerificationStatus VerificationStatus  `json:"verificationStatus"`
	VerifiedAt         Timestamp           `json:"verifiedAt"`
	RejectionReason    string              `json:"rejectionReason,omitempty"`
	CreatedAt          Timestamp           `json:"createdAt"`
	UpdatedAt          Timestamp           `json:"updatedAt"`
	TotalProduceKg     decimal.NullDecimal `json:"totalProduceKg"`
	ExperienceYears    *int                `json:"experienceYears,omitempty"`
	Certification      string              `json:"certification,omitempty"`
}

// OwnerName is the farmer's account name, or "" when the user is not embedded.
func (f *Farmer) OwnerName() string {
	if f.User == nil {
		return ""
	}
	return f.User.DisplayName()
}

// FarmerProfileRequest is the body of POST and PUT /farmers/profile.
type FarmerProfileRequest struct {
	FarmName          string              `json:"farmName"                    validate:"required"`
	FarmLocation      string              `json:"farmLocation"                validate:"required"`
	Latitude          *float64            `json:"latitude,omitempty"          validate:"omitempty,latitude"`
	Longitude         *float64            `json:"longitude,omitempty"         validate:"omitempty,longitude"`
	FarmSizeAcres     decimal.NullDecimal `json:"farmSizeAcres"               validate:"omitempty,dgte=0"`
	CropType          string              `json:"cropType"                    validate:"required"`
	CropVarieties     string              `json:"cropVarieties,omitempty"`
	FarmingMethod     string              `json:"farmingMethod,omitempty"`
	LicenseNumber     string              `json:"licenseNumber,omitempty"`
	AadharNumber      string              `json:"aadharNumber,omitempty"      validate:"omitempty,len=12,numeric"`
	BankAccountHolder string              `json:"bankAccountHolder,omitempty"`
	BankAccountNumber string              `json:"bankAccountNumber,omitempty" validate:"omitempty,numeric"`
	BankIFSCCode      string              `json:"bankIfscCode,omitempty"      validate:"omitempty,len=11,alphanum"`
	BankName          string              `json:"bankName,omitempty"`
	UPIID             string              `json:"upiId,omitempty"`
	ExperienceYears   *int                `json:"experienceYears,omitempty"   validate:"omitempty,gte=0,lte=100"`
	Certification     string              `json:"certification,omitempty"`
}

// ProfileRequest copies the editable fields of f into a request body.
func (f *Farmer) ProfileRequest() FarmerProfileRequest {
	return FarmerProfileRequest{
		FarmName:          f.FarmName,
		FarmLocation:      f.FarmLocation,
		Latitude:          f.Latitude,
		Longitude:         f.Longitude,
		FarmSizeAcres:     f.FarmSizeAcres,
		CropType:          f.CropType,
		CropVarieties:     f.CropVarieties,
		FarmingMethod:     f.FarmingMethod,
		LicenseNumber:     f.LicenseNumber,
		AadharNumber:      f.AadharNumber,
		BankAccountHolder: f.BankAccountHolder,
		BankAccountNumber: f.BankAccountNumber,
		BankIFSCCode:      f.BankIFSCCode,
		BankName:          f.BankName,
		UPIID:             f.UPIID,
		ExperienceYears:   f.ExperienceYears,
		Certification:     f.Certification,
	}
}

// RejectFarmerRequest is the body of POST /admin/farmers/{id}/reject.
type RejectFarmerRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
}
