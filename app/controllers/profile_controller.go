package controllers

import (
	"net/http"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/validate"
)

// Dashboard GET /dashboard
func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Dashboard")
	c.render(w, r, http.StatusOK, "dashboard", p)
}

// Profile GET /profile refreshes the cached user from the backend.
func (c *Controller) Profile(w http.ResponseWriter, r *http.Request) {
	s := c.services(r)
	p := c.page(w, r, "My Profile")

	u, err := s.Auth.Profile(r.Context())
	if err != nil {
		p.Fail(err, "Failed to load profile")
	} else {
		p.User = u
	}
	c.render(w, r, http.StatusOK, "profile", p)
}

type topUpForm struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

// TopUp POST /profile/top-up
func (c *Controller) TopUp(w http.ResponseWriter, r *http.Request) {
	form := topUpForm{Amount: formString(r, "amount")}
	if errs := validate.Struct(form); validate.HasErrors(errs) {
		redirectErr(w, r, "/profile", validate.First(errs))
		return
	}

	u, err := c.services(r).Users.TopUp(r.Context(), formDecimal(r, "amount"))
	if err != nil {
		redirectErr(w, r, "/profile", views.ErrorMessage(err, "Top-up failed"))
		return
	}
	redirectOK(w, r, "/profile", "Wallet topped up. New balance: "+u.Balance.StringFixed(2))
}

type farmerProfileData struct {
	Farmer  *models.Farmer
	Form    models.FarmerProfileRequest
	Exists  bool
	Methods []string
}

var farmingMethods = []string{"Organic", "Conventional", "Hydroponic", "Mixed"}

// FarmerProfile GET /farmer-profile. A missing profile is an empty form,
// not an error.
func (c *Controller) FarmerProfile(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Farmer Profile")
	data := farmerProfileData{Methods: farmingMethods}

	f, err := c.services(r).Farmers.Profile(r.Context())
	f, err = views.Optional(f, err)
	switch {
	case err != nil:
		p.Fail(err, "Failed to load farmer profile")
	case f != nil:
		data.Farmer, data.Form, data.Exists = f, f.ProfileRequest(), true
	}

	p.Data = data
	c.render(w, r, http.StatusOK, "farmer_profile", p)
}

// SaveFarmerProfile POST /farmer-profile creates the profile on first save
// and updates it afterwards.
func (c *Controller) SaveFarmerProfile(w http.ResponseWriter, r *http.Request) {
	req := models.FarmerProfileRequest{
		FarmName:          formString(r, "farmName"),
		FarmLocation:      formString(r, "farmLocation"),
		Latitude:          formFloat(r, "latitude"),
		Longitude:         formFloat(r, "longitude"),
		FarmSizeAcres:     formNullDecimal(r, "farmSizeAcres"),
		CropType:          formString(r, "cropType"),
		CropVarieties:     formString(r, "cropVarieties"),
		FarmingMethod:     formString(r, "farmingMethod"),
		LicenseNumber:     formString(r, "licenseNumber"),
		AadharNumber:      formString(r, "aadharNumber"),
		BankAccountHolder: formString(r, "bankAccountHolder"),
		BankAccountNumber: formString(r, "bankAccountNumber"),
		BankIFSCCode:      formString(r, "bankIfscCode"),
		BankName:          formString(r, "bankName"),
		UPIID:             formString(r, "upiId"),
		ExperienceYears:   formInt(r, "experienceYears"),
		Certification:     formString(r, "certification"),
	}
	exists := r.FormValue("exists") == "1"

	if errs := validate.Struct(req); validate.HasErrors(errs) {
		p := c.page(w, r, "Farmer Profile")
		p.Data = farmerProfileData{Form: req, Exists: exists, Methods: farmingMethods}
		c.render(w, r, http.StatusUnprocessableEntity, "farmer_profile", p.Invalid(errs, old(r)))
		return
	}

	farmers := c.services(r).Farmers
	var err error
	msg := "Profile created successfully!"
	if exists {
		_, err = farmers.UpdateProfile(r.Context(), req)
		msg = "Profile updated successfully!"
	} else {
		_, err = farmers.CreateProfile(r.Context(), req)
	}
	if err != nil {
		redirectErr(w, r, "/farmer-profile", views.ErrorMessage(err, "Failed to save profile"))
		return
	}
	redirectOK(w, r, "/farmer-profile", msg)
}
