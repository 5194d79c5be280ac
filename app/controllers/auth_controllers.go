package controllers

import (
	"net/http"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/guard"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/response"
	"github.com/farmxchain/farmx/pkg/validate"
)

type loginData struct {
	Next string
}

type registerData struct {
	Roles []models.Role
}

var registerRoles = []models.Role{models.RoleFarmer, models.RoleDistributor, models.RoleRetailer, models.RoleConsumer}

// LoginForm GET /login
func (c *Controller) LoginForm(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Login")
	p.Data = loginData{Next: r.URL.Query().Get("next")}
	c.render(w, r, http.StatusOK, "login", p)
}

// Login POST /login
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	req := models.LoginRequest{
		Email:    formString(r, "email"),
		Password: r.FormValue("password"),
	}
	next := r.FormValue("next")

	p := views.NewPage("Login", nil)
	p.Data = loginData{Next: next}

	if errs := validate.Struct(req); validate.HasErrors(errs) {
		c.render(w, r, http.StatusUnprocessableEntity, "login", p.Invalid(errs, old(r)))
		return
	}

	if _, err := c.services(r).Auth.Login(r.Context(), req); err != nil {
		logger.WithCtx(r.Context()).Info("login rejected", "email", req.Email, "error", err)
		p.Old = old(r)
		c.render(w, r, statusFor(err), "login", p.Fail(err, "Login failed. Please check your credentials."))
		return
	}

	http.Redirect(w, r, guard.SafeNext(next), http.StatusFound)
}

// RegisterForm GET /register
func (c *Controller) RegisterForm(w http.ResponseWriter, r *http.Request) {
	p := c.page(w, r, "Register")
	p.Data = registerData{Roles: registerRoles}
	c.render(w, r, http.StatusOK, "register", p)
}

// Register POST /register
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	req := models.RegisterRequest{
		Name:          formString(r, "name"),
		Email:         formString(r, "email"),
		Password:      r.FormValue("password"),
		Role:          models.Role(formString(r, "role")),
		PhoneNumber:   formString(r, "phoneNumber"),
		Address:       formString(r, "address"),
		City:          formString(r, "city"),
		State:         formString(r, "state"),
		PostalCode:    formString(r, "postalCode"),
		WalletAddress: formString(r, "walletAddress"),
	}

	p := views.NewPage("Register", nil)
	p.Data = registerData{Roles: registerRoles}

	errs := validate.Struct(req)
	if req.Password != r.FormValue("passwordConfirmation") && errs["password"] == "" {
		errs["password"] = "The password confirmation does not match."
	}
	if validate.HasErrors(errs) {
		c.render(w, r, http.StatusUnprocessableEntity, "register", p.Invalid(errs, old(r)))
		return
	}

	if _, err := c.services(r).Auth.Register(r.Context(), req); err != nil {
		p.Old = old(r)
		c.render(w, r, statusFor(err), "register", p.Fail(err, "Registration failed. Please try again."))
		return
	}

	redirectOK(w, r, guard.LoginPath, "Registration successful! Please login.")
}

// Logout POST /logout
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.services(r).Auth.Logout(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Error("logout failed", "error", err)
	}
	http.Redirect(w, r, guard.LoginPath, http.StatusFound)
}

// Session GET /session reports who the browser is signed in as, for scripts
// that re-render after an authChange event.
func (c *Controller) Session(w http.ResponseWriter, r *http.Request) {
	auth := c.services(r).Auth
	ctx := r.Context()

	if !auth.IsAuthenticated(ctx) {
		response.Success(w, map[string]any{"authenticated": false})
		return
	}
	user := auth.CurrentUser(ctx)
	response.Success(w, map[string]any{
		"authenticated": true,
		"role":          auth.Role(ctx),
		"user":          user,
		"nav":           views.NavLinks(models.Role(auth.Role(ctx))),
	})
}
