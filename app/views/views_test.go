package views_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

func order(id int64, status models.OrderStatus) models.Order {
	return models.Order{ID: id, Status: status}
}

func ids(orders []models.Order) []int64 {
	out := make([]int64, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestFilterOrdersSplitsActiveAndPast(t *testing.T) {
	orders := []models.Order{
		order(1, models.OrderPending),
		order(2, models.OrderCompleted),
		order(3, models.OrderInTransit),
		order(4, models.OrderRejected),
		order(5, models.OrderDelivered),
		order(6, models.OrderCancelled),
	}

	assert.Equal(t, []int64{1, 3, 5}, ids(views.FilterOrders(orders, views.TabActive)))
	assert.Equal(t, []int64{2, 4, 6}, ids(views.FilterOrders(orders, views.TabPast)))
	assert.Equal(t, views.TabActive, views.ParseOrderTab("bogus"))
	assert.Equal(t, views.TabPast, views.ParseOrderTab("past"))
}

func TestOrderActions(t *testing.T) {
	cases := []struct {
		status models.OrderStatus
		role   models.Role
		want   []views.OrderAction
	}{
		{models.OrderPending, models.RoleFarmer, []views.OrderAction{views.ActionAccept, views.ActionReject}},
		{models.OrderAccepted, models.RoleFarmer, []views.OrderAction{views.ActionAssign}},
		{models.OrderAssigned, models.RoleFarmer, []views.OrderAction{views.ActionTrackingInfo}},
		{models.OrderInTransit, models.RoleFarmer, []views.OrderAction{views.ActionTrackingInfo, views.ActionTrack}},
		{models.OrderDelivered, models.RoleFarmer, []views.OrderAction{views.ActionTrack}},
		{models.OrderDelivered, models.RoleConsumer, []views.OrderAction{views.ActionTrack, views.ActionConfirmReceipt}},
		{models.OrderShipped, models.RoleRetailer, []views.OrderAction{views.ActionTrack}},
		{models.OrderPending, models.RoleConsumer, nil},
		{models.OrderCompleted, models.RoleFarmer, nil},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%s", tc.role, tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, views.OrderActions(order(1, tc.status), tc.role))
		})
	}

	assert.True(t, views.HasAction(order(1, models.OrderPending), models.RoleFarmer, views.ActionAccept))
	assert.False(t, views.HasAction(order(1, models.OrderPending), models.RoleConsumer, views.ActionAccept))
	assert.Equal(t, models.OrderCompleted, views.ActionConfirmReceipt.Status())
	assert.Empty(t, views.ActionTrack.Status())
}

func TestStatusUpdatedMessage(t *testing.T) {
	assert.Equal(t, "Order approved successfully", views.StatusUpdatedMessage(models.OrderAccepted))
	assert.Equal(t, "Order rejected successfully", views.StatusUpdatedMessage(models.OrderRejected))
	assert.Equal(t, "Order finalized successfully", views.StatusUpdatedMessage(models.OrderCompleted))
}

func TestSearchOrders(t *testing.T) {
	orders := []models.Order{
		{ID: 12, FarmerID: 7, BuyerName: "Asha Rao", CropName: "Basmati Rice"},
		{ID: 30, FarmerID: 125, BuyerName: "Ben", CropName: "Wheat"},
		{ID: 44, FarmerID: 9, BuyerName: "Chen", CropName: "Rice Bran"},
	}

	assert.Equal(t, []int64{12, 30}, ids(views.SearchOrders(orders, "12")))
	assert.Equal(t, []int64{12, 44}, ids(views.SearchOrders(orders, "rice")))
	assert.Equal(t, []int64{12}, ids(views.SearchOrders(orders, "ASHA")))
	assert.Len(t, views.SearchOrders(orders, ""), 3)
	assert.Empty(t, views.SearchOrders(orders, "nothing"))
}

func TestComputeEarnings(t *testing.T) {
	at := func(day int) models.Timestamp {
		return models.Timestamp{Time: time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)}
	}
	fee := func(s string) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.RequireFromString(s))
	}
	orders := []models.Order{
		{ID: 1, Status: models.OrderDelivered, DeliveryFee: fee("100"), UpdatedAt: at(1)},
		{ID: 2, Status: models.OrderDelivered, DeliveryFee: fee("250"), UpdatedAt: at(3)},
		{ID: 3, Status: models.OrderDelivered, UpdatedAt: at(5)},
		{ID: 4, Status: models.OrderDelivered, DeliveryFee: fee("0"), UpdatedAt: at(6)},
		{ID: 5, Status: models.OrderInTransit, DeliveryFee: fee("90"), UpdatedAt: at(7)},
	}

	e := views.ComputeEarnings(orders)

	assert.Equal(t, []int64{2, 1}, ids(e.Rows))
	assert.Equal(t, 2, e.Count)
	assert.True(t, e.Total.Equal(decimal.NewFromInt(350)), e.Total.String())
	assert.True(t, e.Average.Equal(decimal.NewFromInt(175)), e.Average.String())
}

func TestComputeEarningsEmpty(t *testing.T) {
	e := views.ComputeEarnings(nil)
	assert.Zero(t, e.Count)
	assert.True(t, e.Total.IsZero())
	assert.True(t, e.Average.IsZero())
	assert.NotNil(t, e.Rows)
}

func TestDistributorTabs(t *testing.T) {
	orders := []models.Order{
		order(1, models.OrderAssigned),
		order(2, models.OrderAssigned),
		order(3, models.OrderInTransit),
		order(4, models.OrderDelivered),
		order(5, models.OrderCompleted),
	}

	tabs := views.DistributorTabs(orders)
	require.Len(t, tabs, 4)
	counts := map[views.DistributorTab]int{}
	for _, tab := range tabs {
		counts[tab.Key] = tab.Count
	}
	assert.Equal(t, map[views.DistributorTab]int{
		views.TabAssigned: 2, views.TabInTransit: 1, views.TabDelivered: 1, views.TabAll: 5,
	}, counts)

	assert.Equal(t, []int64{3}, ids(views.FilterDistributorOrders(orders, views.ParseDistributorTab("in-transit"))))
	assert.Equal(t, views.TabAssigned, views.ParseDistributorTab(""))
}

func TestDeliveryActions(t *testing.T) {
	assert.Equal(t, []views.DeliveryAction{views.DeliveryCreateShipment}, views.DeliveryActions(order(1, models.OrderAssigned)))
	assert.Contains(t, views.DeliveryActions(order(1, models.OrderInTransit)), views.DeliveryConfirm)
	assert.Equal(t, []views.DeliveryAction{views.DeliveryLogs}, views.DeliveryActions(order(1, models.OrderDelivered)))
	assert.Nil(t, views.DeliveryActions(order(1, models.OrderPending)))
}

type fakeStats struct {
	farmers, users int64
	pending        []models.Farmer
	failUsers      error
	calls          atomic.Int32
}

func (f *fakeStats) FarmerCount(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.farmers, nil
}

func (f *fakeStats) UserCount(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.users, f.failUsers
}

func (f *fakeStats) PendingFarmers(context.Context) ([]models.Farmer, error) {
	f.calls.Add(1)
	return f.pending, nil
}

func TestLoadStatistics(t *testing.T) {
	src := &fakeStats{farmers: 12, users: 40, pending: make([]models.Farmer, 3)}

	st, err := views.LoadStatistics(context.Background(), src)

	require.NoError(t, err)
	assert.Equal(t, views.Statistics{TotalFarmers: 12, TotalUsers: 40, PendingVerifications: 3}, st)
	assert.EqualValues(t, 3, src.calls.Load())
}

func TestLoadStatisticsFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeStats{farmers: 12, failUsers: boom}

	st, err := views.LoadStatistics(context.Background(), src)

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, st)
}

func TestNavLinks(t *testing.T) {
	labels := func(role models.Role) []string {
		var out []string
		for _, l := range views.NavLinks(role) {
			out = append(out, l.Label)
		}
		return out
	}

	assert.Equal(t, []string{"Dashboard", "My Profile", "Crops", "Orders"}, labels(models.RoleFarmer))
	assert.Equal(t, []string{"Dashboard", "Admin Dashboard", "User Management", "Farmer Verification", "Statistics", "Orders"}, labels(models.RoleAdmin))
	assert.Equal(t, []string{"Dashboard", "Deliveries", "Earnings", "Farmers"}, labels(models.RoleDistributor))
	assert.Equal(t, []string{"Dashboard", "Marketplace", "Orders", "Farmers"}, labels(models.RoleRetailer))
	assert.Equal(t, labels(models.RoleRetailer), labels(models.RoleConsumer))
	assert.Equal(t, []string{"Dashboard"}, labels(models.Role("")))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "badge bg-yellow-100 text-yellow-800", views.StatusBadge("PENDING"))
	assert.Equal(t, "cyan", views.BadgeColor("ASSIGNED"))
	assert.Equal(t, "indigo", views.BadgeColor("SHIPPED"))
	assert.Equal(t, "gray", views.BadgeColor("WHATEVER"))
}

func TestErrorMessage(t *testing.T) {
	apiErr := &fxhttp.APIError{StatusCode: 400, Message: "Insufficient balance"}

	assert.Empty(t, views.ErrorMessage(nil, "fallback"))
	assert.Equal(t, "Insufficient balance", views.ErrorMessage(fmt.Errorf("place: %w", apiErr), "fallback"))
	assert.Equal(t, "Failed to load orders", views.ErrorMessage(errors.New("http: send: dial tcp: refused"), "Failed to load orders"))
	assert.Equal(t, "a.png: file size exceeds 5MB limit",
		views.ErrorMessage(&services.TooLargeError{Name: "a.png", Size: 6 << 20, MaxBytes: 5 << 20}, "fallback"))
}

func TestOptionalTurnsNotFoundIntoEmptyState(t *testing.T) {
	f, err := views.Optional[models.Farmer](nil, &fxhttp.APIError{StatusCode: 404, Message: "Farmer profile not found"})
	assert.NoError(t, err)
	assert.Nil(t, f)

	_, err = views.Optional[models.Farmer](nil, &fxhttp.APIError{StatusCode: 500, Message: "down"})
	assert.Error(t, err)
}

func TestNewPage(t *testing.T) {
	p := views.NewPage("Orders", &models.User{Role: models.RoleFarmer})
	assert.Len(t, p.Nav, 4)

	guest := views.NewPage("Login", nil)
	assert.Empty(t, guest.Nav)

	guest.Invalid(map[string]string{"email": "The email field is required."}, nil)
	assert.NotEmpty(t, guest.Error)
}
