package views

import "github.com/farmxchain/farmx/app/models"

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Label string
	Path  string
}

var navByRole = map[models.Role][]NavLink{
	models.RoleFarmer: {
		{"My Profile", "/farmer-profile"},
		{"Crops", "/crops"},
		{"Orders", "/orders"},
	},
	models.RoleAdmin: {
		{"Admin Dashboard", "/admin-dashboard"},
		{"User Management", "/user-management"},
		{"Farmer Verification", "/farmer-verification"},
		{"Statistics", "/statistics"},
		{"Orders", "/admin/orders"},
	},
	models.RoleDistributor: {
		{"Deliveries", "/distributor"},
		{"Earnings", "/earnings"},
		{"Farmers", "/farmer-list"},
	},
	models.RoleRetailer: {
		{"Marketplace", "/marketplace"},
		{"Orders", "/orders"},
		{"Farmers", "/farmer-list"},
	},
	models.RoleConsumer: {
		{"Marketplace", "/marketplace"},
		{"Orders", "/orders"},
		{"Farmers", "/farmer-list"},
	},
}

// NavLinks returns the navigation for role. Every role, known or not, gets
// the dashboard first.
func NavLinks(role models.Role) []NavLink {
	links := []NavLink{{"Dashboard", "/dashboard"}}
	return append(links, navByRole[role]...)
}
