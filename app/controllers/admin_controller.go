package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/collection"
	"github.com/farmxchain/farmx/pkg/logger"
)

type adminDashboardData struct {
	Stats   views.Statistics
	Pending []models.Farmer
}

// AdminDashboard GET /admin-dashboard
func (c *Controller) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin := c.services(r).Admin
	p := c.page(w, r, "Admin Dashboard")

	stats, err := views.LoadStatistics(ctx, admin)
	if err != nil {
		p.Fail(err, "Failed to load statistics")
	}
	pending, err := admin.PendingFarmers(ctx)
	if err != nil && p.Error == "" {
		p.Fail(err, "Failed to load farmer verifications")
	}

	p.Data = adminDashboardData{Stats: stats, Pending: pending}
	c.render(w, r, http.StatusOK, "admin_dashboard", p)
}

// Statistics GET /statistics
func (c *Controller) Statistics(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Statistics")
	stats, err := views.LoadStatistics(r.Context(), c.services(r).Admin)
	if err != nil {
		p.Fail(err, "Failed to load statistics")
	}
	p.Data = stats
	c.render(w, r, http.StatusOK, "statistics", p)
}

type userManagementData struct {
	Users  []models.User
	Role   string
	Status string
	Roles  []models.Role
}

// UserManagement GET /user-management?role=&status=
func (c *Controller) UserManagement(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "User Management")
	q := r.URL.Query()
	data := userManagementData{Role: q.Get("role"), Status: q.Get("status"), Roles: models.Roles}

	users, err := c.services(r).Admin.Users(r.Context())
	if err != nil {
		p.Fail(err, "Failed to load users")
	}
	data.Users = collection.Filter(users, func(u models.User) bool {
		return (data.Role == "" || string(u.Role) == data.Role) &&
			(data.Status == "" || string(u.Status) == data.Status)
	})

	p.Data = data
	c.render(w, r, http.StatusOK, "user_management", p)
}

// UserAction POST /user-management/{id}/{action}
func (c *Controller) UserAction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	action := services.UserAction(urlParam(r, "action"))
	if !ok || !action.Valid() {
		http.NotFound(w, r)
		return
	}

	if _, err := c.services(r).Admin.UserAction(r.Context(), id, action); err != nil {
		redirectErr(w, r, "/user-management", views.ErrorMessage(err, "Failed to "+string(action)+" user"))
		return
	}
	logger.WithCtx(r.Context()).Info("user action", "user_id", id, "action", action)
	redirectOK(w, r, "/user-management", views.UserActionMessage(action))
}

type verificationData struct {
	Farmers []models.Farmer
	Status  models.VerificationStatus
}

// FarmerVerification GET /farmer-verification?status=PENDING|VERIFIED|REJECTED
func (c *Controller) FarmerVerification(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Farmer Verification")
	status := models.VerificationStatus(strings.ToUpper(r.URL.Query().Get("status")))
	admin := c.services(r).Admin

	var (
		farmers []models.Farmer
		err     error
	)
	switch status {
	case models.VerificationVerified, models.VerificationRejected:
		farmers, err = admin.FarmersByStatus(r.Context(), status)
	default:
		status = models.VerificationPending
		farmers, err = admin.PendingFarmers(r.Context())
	}
	if err != nil {
		p.Fail(err, "Failed to load farmer verifications")
	}

	p.Data = verificationData{Farmers: farmers, Status: status}
	c.render(w, r, http.StatusOK, "farmer_verification", p)
}

// VerifyFarmer POST /farmer-verification/{id}/verify
func (c *Controller) VerifyFarmer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := c.services(r).Admin.VerifyFarmer(r.Context(), id); err != nil {
		redirectErr(w, r, "/farmer-verification", views.ErrorMessage(err, "Failed to verify farmer"))
		return
	}
	redirectOK(w, r, "/farmer-verification", "Farmer verified successfully")
}

// RejectFarmer POST /farmer-verification/{id}/reject
func (c *Controller) RejectFarmer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	reason := formString(r, "reason")
	if reason == "" {
		redirectErr(w, r, "/farmer-verification", "Please provide a rejection reason")
		return
	}
	if _, err := c.services(r).Admin.RejectFarmer(r.Context(), id, reason); err != nil {
		redirectErr(w, r, "/farmer-verification", views.ErrorMessage(err, "Failed to reject farmer"))
		return
	}
	redirectOK(w, r, "/farmer-verification", "Farmer rejected successfully")
}

type adminOrdersData struct {
	Orders       []models.Order
	Query        string
	Distributors []models.User
}

// AdminOrders GET /admin/orders?q=
func (c *Controller) AdminOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := c.services(r)
	p := c.page(w, r, "Transaction History")
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	orders, err := s.Admin.Orders(ctx)
	if err != nil {
		p.Fail(err, "Failed to load transaction history.")
	}
	data := adminOrdersData{Orders: views.SearchOrders(orders, q), Query: q}

	if collection.Contains(data.Orders, func(o models.Order) bool { return o.Status == models.OrderAccepted }) {
		if data.Distributors, err = s.Users.Distributors(ctx); err != nil {
			logger.WithCtx(ctx).Warn("load distributors failed", "error", err)
		}
	}

	p.Data = data
	c.render(w, r, http.StatusOK, "admin_orders", p)
}

// AdminAssignDistributor POST /admin/orders/{id}/assign
func (c *Controller) AdminAssignDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	distributorID := formInt64(r, "distributorId")
	if distributorID <= 0 {
		redirectErr(w, r, "/admin/orders", "Please select a distributor")
		return
	}
	if _, err := c.services(r).Admin.AssignDistributor(r.Context(), id, distributorID); err != nil {
		redirectErr(w, r, "/admin/orders", views.ErrorMessage(err, "Failed to assign distributor"))
		return
	}
	redirectOK(w, r, "/admin/orders", fmt.Sprintf("Order #%d assigned to distributor successfully!", id))
}
