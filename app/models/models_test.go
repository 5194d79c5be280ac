package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/validate"
)

func TestTimestampLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-01T10:15:30"`:         time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		`"2024-03-01T10:15:30.123456"`:  time.Date(2024, 3, 1, 10, 15, 30, 123456000, time.UTC),
		`"2024-03-01T10:15:30Z"`:        time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		`"2024-03-01"`:                  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		`[2024,3,1,10,15,30]`:           time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		`"2024-03-01T10:15:30.5+05:30"`: time.Date(2024, 3, 1, 4, 45, 30, 500000000, time.UTC),
	}
	for in, want := range cases {
		var ts models.Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, ts.Equal(want), "%s parsed as %v", in, ts.Time)
	}

	var ts models.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "-", ts.Date())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestampMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		At   models.Timestamp `json:"at"`
		Zero models.Timestamp `json:"zero"`
	}{At: models.Timestamp{Time: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-02T08:00:00","zero":null}`, string(out))
}

func TestOrderDecodesBackendShape(t *testing.T) {
	raw := `{
		"id": 11, "buyerId": 4, "buyerName": "Meera", "farmerId": 2, "farmName": "Green Acres",
		"cropId": 7, "cropName": "Basmati", "quantity": 120.5, "totalPrice": 5422.50,
		"status": "IN_TRANSIT", "distributorId": 9, "deliveryFee": null,
		"createdAt": "2024-03-01T10:15:30", "updatedAt": null
	}`
	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	assert.Equal(t, models.OrderInTransit, o.Status)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("5422.5")))
	assert.False(t, o.DeliveryFee.Valid)
	require.NotNil(t, o.DistributorID)
	assert.Equal(t, int64(9), *o.DistributorID)
	assert.Equal(t, o.CreatedAt, o.LastActivity())
}

func TestOrderStatusGroups(t *testing.T) {
	active := []models.OrderStatus{"PENDING", "ACCEPTED", "ASSIGNED", "IN_TRANSIT", "SHIPPED", "DELIVERED"}
	past := []models.OrderStatus{"COMPLETED", "REJECTED", "CANCELLED"}
	for _, s := range active {
		assert.True(t, s.Active(), s)
		assert.False(t, s.Past(), s)
	}
	for _, s := range past {
		assert.True(t, s.Past(), s)
		assert.False(t, s.Active(), s)
	}
	assert.False(t, models.OrderPending.Trackable())
	assert.True(t, models.OrderShipped.Trackable())
}

func TestRoleBuyer(t *testing.T) {
	assert.True(t, models.RoleRetailer.Buyer())
	assert.False(t, models.RoleFarmer.Buyer())
	assert.False(t, models.RoleAdmin.Buyer())
}

func TestCropRequestValidation(t *testing.T) {
	errs := validate.Struct(models.CropRequest{CropName: "Wheat"})
	assert.Contains(t, errs, "quantityKg")
	assert.Contains(t, errs, "pricePerKg")
	assert.Contains(t, errs, "harvestDate")

	ok := models.CropRequest{
		CropName:    "Wheat",
		QuantityKg:  decimal.NewFromInt(500),
		PricePerKg:  decimal.RequireFromString("22.75"),
		HarvestDate: models.Timestamp{Time: time.Now()},
	}
	assert.Empty(t, validate.Struct(ok))
}

func TestRegisterRequestRejectsAdmin(t *testing.T) {
	errs := validate.Struct(models.RegisterRequest{
		Name: "Root", Email: "root@farmx.io", Password: "secret1", Role: models.RoleAdmin,
	})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestFarmerProfileRoundTrip(t *testing.T) {
	years := 12
	f := models.Farmer{FarmName: "Sunrise", FarmLocation: "Nashik", CropType: "GRAPES", ExperienceYears: &years}
	req := f.ProfileRequest()
	assert.Empty(t, validate.Struct(req))
	assert.Equal(t, 12, *req.ExperienceYears)

	req.AadharNumber = "1234"
	assert.Contains(t, validate.Struct(req), "aadharNumber")
}
