package controllers

import (
	"net/http"
	"strings"

	"github.com/farmxchain/farmx/app/models"
)

type farmerListData struct {
	Farmers []models.Farmer
	Crop    string
}

// FarmerList GET /farmer-list?crop=
func (c *Controller) FarmerList(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Farmers")
	crop := strings.TrimSpace(r.URL.Query().Get("crop"))
	farmers := c.services(r).Farmers

	var (
		list []models.Farmer
		err  error
	)
	if crop != "" {
		list, err = farmers.ByCrop(r.Context(), crop)
	} else {
		list, err = farmers.All(r.Context())
	}
	if err != nil {
		p.Fail(err, "Failed to load farmers")
	}

	p.Data = farmerListData{Farmers: list, Crop: crop}
	c.render(w, r, http.StatusOK, "farmer_list", p)
}

// FarmerDetails GET /farmers/{id}
func (c *Controller) FarmerDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := c.page(w, r, "Farmer Details")

	f, err := c.services(r).Farmers.Get(r.Context(), id)
	status := http.StatusOK
	if err != nil {
		p.Fail(err, "Failed to load farmer details")
		if asAPIError(err) != nil {
			status = statusFor(err)
		}
	}
	p.Data = f
	c.render(w, r, status, "farmer_details", p)
}
