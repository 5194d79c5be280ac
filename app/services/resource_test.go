package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/testkit"
)

func TestCropCallsAttachBearer(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/crops/all", 200, []map[string]any{
			{"id": 1, "cropName": "Wheat", "pricePerKg": 22.5, "quantityKg": 100},
		}),
		testkit.Step("GET", "/crops/1/verify-blockchain", 200, map[string]any{"cropId": 1, "verified": true}),
	)
	ctx := context.Background()
	tok := f.signIn(t, "RETAILER")

	crops, err := f.svc.Crops.All(ctx)
	require.NoError(t, err)
	require.Len(t, crops, 1)
	assert.True(t, crops[0].PricePerKg.Equal(decimal.RequireFromString("22.5")))

	v, err := f.svc.Crops.VerifyBlockchain(ctx, 1)
	require.NoError(t, err)
	assert.True(t, v.Verified)

	for _, c := range f.mt.Calls() {
		assert.Equal(t, "Bearer "+tok, c.Header.Get("Authorization"), c.Path)
	}
}

func TestAddCropSendsBody(t *testing.T) {
	f := newFixture(t, testkit.Step("POST", "/crops/add", 201, map[string]any{"id": 8, "cropName": "Rice"}))
	f.signIn(t, "FARMER")

	c, err := f.svc.Crops.Add(context.Background(), models.CropRequest{
		CropName:   "Rice",
		QuantityKg: decimal.NewFromInt(250),
		PricePerKg: decimal.RequireFromString("40.10"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), c.ID)

	var sent map[string]any
	require.NoError(t, f.mt.CallsTo("POST", "/crops/add")[0].JSON(&sent))
	assert.Equal(t, "Rice", sent["cropName"])
	assert.Equal(t, "40.1", sent["pricePerKg"])
}

func TestOrderStatusGoesInQuery(t *testing.T) {
	f := newFixture(t, testkit.Step("PATCH", "/orders/12/status", 200, map[string]any{"id": 12, "status": "ACCEPTED"}))
	f.signIn(t, "FARMER")

	o, err := f.svc.Orders.UpdateStatus(context.Background(), 12, models.OrderAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, o.Status)
	assert.Equal(t, "ACCEPTED", f.mt.CallsTo("PATCH", "/orders/12/status")[0].Query["status"])
}

func TestOrdersForRole(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/orders/farmer", 200, []any{}),
		testkit.Step("GET", "/orders/buyer", 200, []any{}),
	)
	ctx := context.Background()
	f.signIn(t, "FARMER")

	_, err := f.svc.Orders.ForRole(ctx, models.RoleFarmer)
	require.NoError(t, err)
	_, err = f.svc.Orders.ForRole(ctx, models.RoleConsumer)
	require.NoError(t, err)
	assert.Empty(t, f.mt.AssertAllCalled())
}

func TestMissingFarmerProfileIsNotFound(t *testing.T) {
	f := newFixture(t, testkit.Fail("GET", "/farmers/profile", 404, "Farmer profile not found"))
	f.signIn(t, "FARMER")

	_, err := f.svc.Farmers.Profile(context.Background())
	assert.True(t, fxhttp.IsNotFound(err))
}

func TestAssignDistributorQuery(t *testing.T) {
	f := newFixture(t,
		testkit.Step("POST", "/farmers/orders/4/assign-distributor", 200, map[string]any{"id": 4, "status": "ASSIGNED"}),
		testkit.Step("POST", "/admin/orders/5/assign-distributor", 200, map[string]any{"id": 5, "status": "ASSIGNED"}),
	)
	ctx := context.Background()
	f.signIn(t, "ADMIN")

	_, err := f.svc.Farmers.AssignDistributor(ctx, 4, 31)
	require.NoError(t, err)
	_, err = f.svc.Admin.AssignDistributor(ctx, 5, 32)
	require.NoError(t, err)

	assert.Equal(t, "31", f.mt.CallsTo("POST", "/farmers/orders/4/assign-distributor")[0].Query["distributorId"])
	assert.Equal(t, "32", f.mt.CallsTo("POST", "/admin/orders/5/assign-distributor")[0].Query["distributorId"])
}

func TestAdminActions(t *testing.T) {
	f := newFixture(t,
		testkit.Step("POST", "/admin/users/7/suspend", 200, map[string]any{"id": 7, "status": "SUSPENDED"}),
		testkit.Step("POST", "/admin/farmers/3/reject", 200, map[string]any{"id": 3, "verificationStatus": "REJECTED"}),
		testkit.Step("GET", "/admin/stats/farmers", 200, 42),
	)
	ctx := context.Background()
	f.signIn(t, "ADMIN")

	u, err := f.svc.Admin.UserAction(ctx, 7, services.ActionSuspend)
	require.NoError(t, err)
	assert.Equal(t, models.UserSuspended, u.Status)

	fm, err := f.svc.Admin.RejectFarmer(ctx, 3, "Blurry licence scan")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, fm.VerificationStatus)

	var body models.RejectFarmerRequest
	require.NoError(t, f.mt.CallsTo("POST", "/admin/farmers/3/reject")[0].JSON(&body))
	assert.Equal(t, "Blurry licence scan", body.RejectionReason)

	n, err := f.svc.Admin.FarmerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	assert.True(t, services.ActionActivate.Valid())
	assert.False(t, services.UserAction("delete").Valid())
}

func TestUsersByRoleUsesDedicatedListings(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/users/retailers/all", 200, []map[string]any{{"id": 21, "role": "RETAILER"}}),
		testkit.Step("GET", "/users/consumers/all", 200, []map[string]any{{"id": 31, "role": "CONSUMER"}, {"id": 32, "role": "CONSUMER"}}),
		testkit.Step("GET", "/users/farmers/all", 200, []map[string]any{}),
		testkit.Step("GET", "/users/distributors/all", 200, []map[string]any{}),
		testkit.Step("GET", "/users/role/ADMIN", 200, []map[string]any{{"id": 1, "role": "ADMIN"}}),
	)
	ctx := context.Background()
	f.signIn(t, "ADMIN")

	retailers, err := f.svc.Users.ByRole(ctx, models.RoleRetailer)
	require.NoError(t, err)
	require.Len(t, retailers, 1)
	assert.Equal(t, models.RoleRetailer, retailers[0].Role)

	consumers, err := f.svc.Users.ByRole(ctx, models.RoleConsumer)
	require.NoError(t, err)
	assert.Len(t, consumers, 2)

	for _, r := range []models.Role{models.RoleFarmer, models.RoleDistributor} {
		users, err := f.svc.Users.ByRole(ctx, r)
		require.NoError(t, err)
		assert.Empty(t, users)
	}

	admins, err := f.svc.Users.ByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestAdminFarmerLookupAndDelete(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/admin/farmers/9", 200, map[string]any{"id": 9, "farmName": "Green Acres", "verificationStatus": "PENDING"}),
		testkit.Step("DELETE", "/admin/farmers/9", 200, nil),
		testkit.Step("DELETE", "/users/14", 200, nil),
	)
	ctx := context.Background()
	f.signIn(t, "ADMIN")

	fm, err := f.svc.Admin.Farmer(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, fm.VerificationStatus)

	require.NoError(t, f.svc.Admin.DeleteFarmer(ctx, 9))
	require.NoError(t, f.svc.Users.Delete(ctx, 14))
	assert.Len(t, f.mt.CallsTo("DELETE", "/admin/farmers/9"), 1)
}

func TestTopUpUpdatesCachedUser(t *testing.T) {
	step := testkit.Step("POST", "/users/top-up", 200, map[string]any{"id": 21, "name": "Meera", "balance": 750})
	step.Query = map[string]string{"amount": "500"}
	f := newFixture(t, step)
	ctx := context.Background()
	f.signIn(t, "CONSUMER")

	u, err := f.svc.Users.TopUp(ctx, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "750", u.Balance.String())
	assert.Equal(t, "750", f.svc.Auth.CurrentUser(ctx).Balance.String())
	assert.Equal(t, 1, *f.changes)

	_, err = f.svc.Users.TopUp(ctx, decimal.Zero)
	assert.Error(t, err)
	assert.Len(t, f.mt.Calls(), 1)
}

func TestUserByEmailEscapesPath(t *testing.T) {
	f := newFixture(t, testkit.Step("GET", "/users/email/a+b@farm.in", 200, map[string]any{"id": 2}))
	f.signIn(t, "ADMIN")

	u, err := f.svc.Users.ByEmail(context.Background(), "a+b@farm.in")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestDistributorWorkflow(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/distributor/orders", 200, []map[string]any{{"id": 1, "status": "ASSIGNED"}}),
		testkit.Step("POST", "/distributor/shipments", 201, map[string]any{"id": 50, "orderId": 1, "status": "ASSIGNED"}),
		testkit.Step("PUT", "/distributor/shipments/50/status", 200, map[string]any{"id": 50, "status": "IN_TRANSIT"}),
		testkit.Step("POST", "/distributor/shipments/deliver", 200, map[string]any{"orderId": 1, "shipmentId": 50, "custodyHash": "0xabc"}),
		testkit.Step("GET", "/distributor/shipments/50/logs", 200, []map[string]any{{"id": 1, "action": "PICKED_UP"}}),
	)
	ctx := context.Background()
	f.signIn(t, "DISTRIBUTOR")

	orders, err := f.svc.Distributor.AssignedOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	_, filtered := f.mt.CallsTo("GET", "/distributor/orders")[0].Query["status"]
	assert.False(t, filtered)

	sh, err := f.svc.Distributor.CreateShipment(ctx, models.ShipmentRequest{OrderID: 1, Origin: "Pune", Destination: "Mumbai", TransportMode: models.TransportTruck})
	require.NoError(t, err)

	temp := 18.5
	sh, err = f.svc.Distributor.UpdateShipmentStatus(ctx, sh.ID, models.ShipmentStatusUpdateRequest{Status: models.ShipmentInTransit, Temperature: &temp})
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentInTransit, sh.Status)

	conf, err := f.svc.Distributor.ConfirmDelivery(ctx, models.DeliveryConfirmationRequest{ShipmentID: 50})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", conf.CustodyHash)

	logs, err := f.svc.Distributor.ShipmentLogs(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, models.ActionPickedUp, logs[0].Action)
}

func TestLogisticsByOrder(t *testing.T) {
	f := newFixture(t,
		testkit.Step("GET", "/logistics/order/9", 200, map[string]any{
			"id": 3, "orderId": 9, "status": "IN_TRANSIT", "currentLocation": "Nagpur",
			"logs": []map[string]any{{"id": 1, "action": "LOCATION_UPDATE", "location": "Nagpur"}},
		}),
		testkit.Fail("GET", "/logistics/order/10", 404, "Shipment not found"),
	)
	ctx := context.Background()
	f.signIn(t, "CONSUMER")

	sh, err := f.svc.Logistics.ByOrder(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Nagpur", sh.CurrentLocation)
	assert.Len(t, sh.Logs, 1)

	_, err = f.svc.Logistics.ByOrder(ctx, 10)
	assert.True(t, fxhttp.IsNotFound(err))
}
