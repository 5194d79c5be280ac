// Package routes wires the portal's URL table.
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/farmxchain/farmx/app/controllers"
	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/config"
	"github.com/farmxchain/farmx/pkg/guard"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/middleware"
	"github.com/farmxchain/farmx/pkg/response"
	"github.com/farmxchain/farmx/pkg/router"
)

// RegisterWeb mounts every portal page on r. Pages are grouped by the role
// the guard requires; "" admits any signed-in user.
func RegisterWeb(r *router.Router, c *controllers.Controller) {
	resolve := guard.Resolver(c.Principal)
	proxies, err := middleware.ParseProxies(config.TrustedProxies())
	if err != nil {
		logger.Warn("login throttle ignores TRUSTED_PROXIES", "error", err)
		proxies = nil
	}
	loginLimit := middleware.RateLimit(config.LoginRateLimit(), time.Minute, proxies)

	r.Get("/", "home", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, guard.HomePath, http.StatusFound)
	})

	guest := r.Group("", guard.Guest(resolve))
	guest.Get("/login", "login", c.LoginForm)
	guest.Post("/login", "login.submit", c.Login, loginLimit)
	guest.Page("/register", "register", c.RegisterForm, c.Register)

	auth := r.Group("", guard.Require(resolve, ""))
	auth.Post("/logout", "logout", c.Logout)
	auth.Get("/dashboard", "dashboard", c.Dashboard)
	auth.Get("/profile", "profile", c.Profile)
	auth.Post("/profile/top-up", "profile.top-up", c.TopUp)
	auth.Get("/marketplace", "marketplace", c.Marketplace)
	auth.Post("/marketplace/order", "marketplace.order", c.PlaceOrder)
	auth.Get("/orders", "orders", c.Orders)
	auth.Post("/orders/{id}/status", "orders.status", c.UpdateOrderStatus)
	auth.Page("/tracking/{orderId}", "tracking", c.Tracking, c.UpdateTracking)
	auth.Get("/farmer-list", "farmers.index", c.FarmerList)
	auth.Get("/farmers/{id}", "farmers.show", c.FarmerDetails)
	auth.Post("/crops/{id}/verify", "crops.verify", c.VerifyCrop)

	farmer := r.Group("", guard.Require(resolve, string(models.RoleFarmer)))
	farmer.Page("/farmer-profile", "farmer-profile", c.FarmerProfile, c.SaveFarmerProfile)
	farmer.Page("/crops", "crops", c.Crops, c.AddCrop)
	farmer.Post("/orders/{id}/assign", "orders.assign", c.AssignDistributor)

	admin := r.Group("", guard.Require(resolve, string(models.RoleAdmin)))
	admin.Get("/admin-dashboard", "admin.dashboard", c.AdminDashboard)
	admin.Get("/statistics", "admin.statistics", c.Statistics)
	admin.Get("/user-management", "admin.users", c.UserManagement)
	admin.Post("/user-management/{id}/{action}", "admin.users.action", c.UserAction)
	admin.Get("/farmer-verification", "admin.farmers", c.FarmerVerification)
	admin.Post("/farmer-verification/{id}/verify", "admin.farmers.verify", c.VerifyFarmer)
	admin.Post("/farmer-verification/{id}/reject", "admin.farmers.reject", c.RejectFarmer)
	admin.Get("/admin/orders", "admin.orders", c.AdminOrders)
	admin.Post("/admin/orders/{id}/assign", "admin.orders.assign", c.AdminAssignDistributor)

	distributor := r.Group("", guard.Require(resolve, string(models.RoleDistributor)))
	distributor.Get("/distributor", "distributor", c.Deliveries)
	distributor.Post("/distributor/orders/{id}/shipment", "distributor.shipment", c.CreateShipment)
	distributor.Post("/distributor/orders/{id}/status", "distributor.status", c.UpdateShipment)
	distributor.Post("/distributor/orders/{id}/deliver", "distributor.deliver", c.ConfirmDelivery)
	distributor.Get("/distributor/orders/{id}/logs", "distributor.logs", c.ShipmentLogs)
	distributor.Get("/earnings", "earnings", c.Earnings)

	// Browsers land on the dashboard; API callers get a JSON 404.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		accept := req.Header.Get("Accept")
		if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
			response.NotFound(w)
			return
		}
		http.Redirect(w, req, guard.HomePath, http.StatusFound)
	})
}

// RegisterAPI mounts the JSON and streaming endpoints next to the pages.
func RegisterAPI(r *router.Router, c *controllers.Controller) {
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/session", "session", c.Session)

	auth := r.Group("", guard.Require(guard.Resolver(c.Principal), ""))
	auth.Get("/events", "events", c.Events)
}
