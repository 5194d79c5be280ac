package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/config"
	"github.com/farmxchain/farmx/pkg/collection"
	"github.com/farmxchain/farmx/pkg/validate"
)

// Crops GET /crops lists the farmer's own listings.
func (c *Controller) Crops(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Crop Management")
	crops, err := c.services(r).Crops.Mine(r.Context())
	if err != nil {
		p.Fail(err, "Failed to load crops")
	}
	p.Data = crops
	c.render(w, r, http.StatusOK, "crops", p)
}

// AddCrop POST /crops. An attached image is uploaded first and its URL
// stored on the listing.
func (c *Controller) AddCrop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.UploadMaxBytes() + 1<<20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		redirectErr(w, r, "/crops", "Image upload failed")
		return
	}

	req := models.CropRequest{
		CropName:              formString(r, "cropName"),
		QuantityKg:            formDecimal(r, "quantityKg"),
		PricePerKg:            formDecimal(r, "pricePerKg"),
		HarvestDate:           formDate(r, "harvestDate"),
		QualityCertificateURL: formString(r, "qualityCertificateUrl"),
		OriginLocation:        formString(r, "originLocation"),
		QualityData:           formString(r, "qualityData"),
		SoilType:              formString(r, "soilType"),
		PesticidesUsed:        formString(r, "pesticidesUsed"),
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		p := c.page(w, r, "Crop Management")
		if crops, err := c.services(r).Crops.Mine(r.Context()); err == nil {
			p.Data = crops
		}
		c.render(w, r, http.StatusUnprocessableEntity, "crops", p.Invalid(errs, old(r)))
		return
	}

	s := c.services(r)
	if file, hdr, err := r.FormFile("image"); err == nil {
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			redirectErr(w, r, "/crops", "Image upload failed")
			return
		}
		url, err := s.Upload.Upload(r.Context(), services.File{Name: hdr.Filename, Data: data})
		if err != nil {
			redirectErr(w, r, "/crops", views.ErrorMessage(err, "Image upload failed"))
			return
		}
		req.ImageURL = url
	}

	if _, err := s.Crops.Add(r.Context(), req); err != nil {
		redirectErr(w, r, "/crops", views.ErrorMessage(err, "Failed to add crop"))
		return
	}
	redirectOK(w, r, "/crops", "Crop added successfully and registered on blockchain!")
}

// VerifyCrop POST /crops/{id}/verify checks the listing against the ledger.
func (c *Controller) VerifyCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := r.FormValue("back")
	if back != "/marketplace" {
		back = "/crops"
	}

	v, err := c.services(r).Crops.VerifyBlockchain(r.Context(), id)
	switch {
	case err != nil:
		redirectErr(w, r, back, views.ErrorMessage(err, "Blockchain verification failed"))
	case v.Verified:
		redirectOK(w, r, back, fmt.Sprintf("Crop #%d verified on blockchain", id))
	default:
		redirectErr(w, r, back, fmt.Sprintf("Crop #%d failed blockchain verification", id))
	}
}

type marketplaceData struct {
	Crops []models.Crop
	Query string
}

// Marketplace GET /marketplace?q=
func (c *Controller) Marketplace(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Marketplace")
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	crops, err := c.services(r).Crops.All(r.Context())
	if err != nil {
		p.Fail(err, "Failed to load marketplace crops")
	}
	if q != "" {
		needle := strings.ToLower(q)
		crops = collection.Filter(crops, func(cr models.Crop) bool {
			return strings.Contains(strings.ToLower(cr.CropName), needle) ||
				strings.Contains(strings.ToLower(cr.FarmName()), needle) ||
				strings.Contains(strings.ToLower(cr.OriginLocation), needle)
		})
	}

	p.Data = marketplaceData{Crops: crops, Query: q}
	c.render(w, r, http.StatusOK, "marketplace", p)
}

// PlaceOrder POST /marketplace/order
func (c *Controller) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	req := models.OrderRequest{
		CropID:          formInt64(r, "cropId"),
		Quantity:        formDecimal(r, "quantity"),
		DeliveryAddress: formString(r, "deliveryAddress"),
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		redirectErr(w, r, "/marketplace", validate.First(errs))
		return
	}

	s := c.services(r)
	o, err := s.Orders.Place(r.Context(), req)
	if err != nil {
		redirectErr(w, r, "/marketplace", views.ErrorMessage(err, "Failed to place order"))
		return
	}
	c.refreshProfile(r.Context(), s)
	redirectOK(w, r, "/orders", fmt.Sprintf("Order #%d placed successfully", o.ID))
}
