package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/guard"
	"github.com/farmxchain/farmx/pkg/session"
	"github.com/farmxchain/farmx/pkg/testkit"
)

// harness points the CLI at a mock backend and a throwaway session file.
type harness struct {
	t           *testing.T
	sessionFile string
	mt          *testkit.MockTransport
}

func newHarness(t *testing.T, steps ...testkit.MockStep) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{t: t, sessionFile: filepath.Join(dir, "session.json"), mt: testkit.NewMockTransport("/api/v1", steps...)}
	t.Setenv("SESSION_FILE", h.sessionFile)
	t.Setenv("API_BASE_URL", "http://backend.test/api/v1")
	return h
}

// run executes one farmx invocation with a fresh command tree.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := newRootCmd(&cli{hc: h.mt.Client()})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) signIn(role models.Role, user *models.User) {
	h.t.Helper()
	sess := session.New("", session.NewFileBackend(h.sessionFile), nil)
	tok := testkit.Token(h.t, "user@farmx.test", string(role), 9, time.Now().Add(time.Hour))
	var u any
	if user != nil {
		u = user
	}
	require.NoError(h.t, sess.Set(context.Background(), tok, u))
}

func TestLoginPersistsSessionForLaterCommands(t *testing.T) {
	h := newHarness(t,
		testkit.Step("POST", "/auth/login", 200, map[string]any{
			"token": testkit.Token(t, "asha@farmx.test", "FARMER", 7, time.Now().Add(time.Hour)),
			"user":  map[string]any{"id": 7, "email": "asha@farmx.test", "name": "Asha", "role": "FARMER", "balance": 120.5},
		}),
	)

	out, err := h.run("login", "--email", "asha@farmx.test", "--password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Asha (FARMER)\n", out)

	out, err = h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha <asha@farmx.test>")
	assert.Contains(t, out, "Balance:  ₹120.50")

	out, err = h.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)

	_, err = h.run("whoami")
	assert.ErrorIs(t, err, guard.ErrNotLoggedIn)
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--email", "not-an-email", "--password", "x")
	require.Error(t, err)
	assert.Equal(t, "The email must be a valid email address.", err.Error())
	assert.Empty(t, h.mt.Calls())
}

func TestLoginShowsBackendMessage(t *testing.T) {
	h := newHarness(t, testkit.Fail("POST", "/auth/login", 401, "Invalid email or password"))

	_, err := h.run("login", "--email", "asha@farmx.test", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestGuardRefusesBeforeAnyBackendCall(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("crops", "mine")
	assert.ErrorIs(t, err, guard.ErrNotLoggedIn)

	h.signIn(models.RoleConsumer, nil)
	_, err = h.run("admin", "stats")
	var roleErr *guard.RoleError
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, "ADMIN", roleErr.Required)
	assert.Equal(t, "CONSUMER", roleErr.Actual)

	_, err = h.run("crops", "mine")
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, "FARMER", roleErr.Required)

	assert.Empty(t, h.mt.Calls())
}

func TestStatusWithoutSession(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("status")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in.\n", out)
}

func TestAdminStats(t *testing.T) {
	h := newHarness(t,
		testkit.Step("GET", "/admin/stats/farmers", 200, 12),
		testkit.Step("GET", "/admin/stats/users", 200, 40),
		testkit.Step("GET", "/admin/farmers/pending", 200, []map[string]any{{"id": 3}}),
	)
	h.signIn(models.RoleAdmin, nil)

	out, err := h.run("admin", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total farmers:          12")
	assert.Contains(t, out, "Total users:            40")
	assert.Contains(t, out, "Pending verifications:  1")

	out, err = h.run("admin", "stats", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalFarmers":12,"totalUsers":40,"pendingVerifications":1}`, out)
}

func TestAdminUserAction(t *testing.T) {
	h := newHarness(t, testkit.Step("POST", "/admin/users/5/suspend", 200, map[string]any{"id": 5}))
	h.signIn(models.RoleAdmin, nil)

	out, err := h.run("admin", "user", "suspend", "5")
	require.NoError(t, err)
	assert.Equal(t, "User suspended successfully\n", out)

	_, err = h.run("admin", "user", "promote", "5")
	assert.EqualError(t, err, `unknown user action "promote"`)
}

func TestAdminDeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t, testkit.Step("DELETE", "/admin/farmers/9", 200, nil))
	h.signIn(models.RoleAdmin, nil)

	_, err := h.run("admin", "delete-farmer", "9")
	assert.EqualError(t, err, "refusing to delete without --yes")
	assert.Empty(t, h.mt.Calls())

	out, err := h.run("admin", "delete-farmer", "9", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Farmer deleted successfully\n", out)
}

func TestUsersListByRole(t *testing.T) {
	h := newHarness(t, testkit.Step("GET", "/users/retailers/all", 200, []map[string]any{
		{"id": 21, "name": "Meera Stores", "email": "meera@farmx.test", "role": "RETAILER"},
	}))
	h.signIn(models.RoleAdmin, nil)

	out, err := h.run("users", "list", "--role", "retailer")
	require.NoError(t, err)
	assert.Contains(t, out, "Meera Stores")
}

func TestOrderStatusActions(t *testing.T) {
	h := newHarness(t, testkit.Step("PATCH", "/orders/5/status", 200, map[string]any{"id": 5, "status": "COMPLETED"}))
	h.signIn(models.RoleConsumer, nil)

	out, err := h.run("orders", "status", "5", "confirm-receipt")
	require.NoError(t, err)
	assert.Equal(t, "Order finalized successfully\n", out)

	calls := h.mt.CallsTo("PATCH", "/orders/5/status")
	require.Len(t, calls, 1)
	assert.Equal(t, "COMPLETED", calls[0].Query["status"])

	_, err = h.run("orders", "status", "5", "ship")
	assert.EqualError(t, err, `unknown order action "ship"`)
}

func TestOrdersListUsesRoleAndTab(t *testing.T) {
	h := newHarness(t, testkit.Step("GET", "/orders/farmer", 200, []map[string]any{
		{"id": 1, "cropName": "Wheat", "buyerName": "Meena", "quantity": 10, "totalPrice": 250, "status": "PENDING"},
		{"id": 2, "cropName": "Rice", "buyerName": "Kiran", "quantity": 3, "totalPrice": 90, "status": "COMPLETED"},
	}))
	h.signIn(models.RoleFarmer, nil)

	out, err := h.run("orders", "list", "--tab", "past")
	require.NoError(t, err)
	assert.Contains(t, out, "Rice")
	assert.Contains(t, out, "₹90.00")
	assert.NotContains(t, out, "Wheat")
}

func TestTrackWithoutShipment(t *testing.T) {
	h := newHarness(t, testkit.Fail("GET", "/logistics/order/42", 404, "Shipment not found"))
	h.signIn(models.RoleRetailer, nil)

	out, err := h.run("orders", "track", "42")
	require.NoError(t, err)
	assert.Equal(t, "Shipment tracking information not found.\n", out)
}

func TestDistributorEarnings(t *testing.T) {
	h := newHarness(t, testkit.Step("GET", "/distributor/orders", 200, []map[string]any{
		{"id": 1, "cropName": "Wheat", "status": "DELIVERED", "deliveryFee": 200, "updatedAt": "2026-03-02T10:00:00"},
		{"id": 2, "cropName": "Rice", "status": "DELIVERED", "deliveryFee": 150, "updatedAt": "2026-03-01T10:00:00"},
		{"id": 3, "cropName": "Onion", "status": "DELIVERED", "deliveryFee": 0},
	}))
	h.signIn(models.RoleDistributor, nil)

	out, err := h.run("distributor", "earnings")
	require.NoError(t, err)
	assert.Contains(t, out, "Total earnings:        ₹350.00")
	assert.Contains(t, out, "Completed deliveries:  2")
	assert.Contains(t, out, "Average per delivery:  ₹175.00")
	assert.NotContains(t, out, "Onion")
}

func TestDistributorShipValidatesMode(t *testing.T) {
	h := newHarness(t)
	h.signIn(models.RoleDistributor, nil)

	_, err := h.run("distributor", "ship", "4", "--origin", "Pune", "--destination", "Mumbai", "--mode", "bicycle")
	require.Error(t, err)
	assert.Empty(t, h.mt.Calls())
}

func TestWalletTopUpRefreshesCachedUser(t *testing.T) {
	h := newHarness(t, testkit.Step("POST", "/users/top-up", 200, map[string]any{
		"id": 9, "name": "Kiran", "email": "kiran@farmx.test", "role": "CONSUMER", "balance": 600,
	}))
	h.signIn(models.RoleConsumer, &models.User{ID: 9, Name: "Kiran", Email: "kiran@farmx.test", Role: models.RoleConsumer})

	out, err := h.run("wallet", "top-up", "500")
	require.NoError(t, err)
	assert.Equal(t, "Wallet topped up. New balance: 600.00\n", out)
	assert.Equal(t, "500", h.mt.CallsTo("POST", "/users/top-up")[0].Query["amount"])

	out, err = h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:  ₹600.00")

	_, err = h.run("wallet", "top-up", "0")
	assert.EqualError(t, err, "The amount must be a positive number.")
}

func TestUploadFromLocalDisk(t *testing.T) {
	h := newHarness(t, testkit.Step("POST", "/upload", 200, "https://cdn.farmx.test/wheat.png"))
	h.signIn(models.RoleFarmer, nil)

	root := t.TempDir()
	t.Setenv("STORAGE_LOCAL_ROOT", root)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "wheat.png"), png, 0o644))

	out, err := h.run("upload", "--disk", "local", "wheat.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.farmx.test/wheat.png\n", out)
}

func TestUploadRejectsWrongType(t *testing.T) {
	h := newHarness(t)
	h.signIn(models.RoleFarmer, nil)

	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("just some text"), 0o644))

	_, err := h.run("upload", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file type text/plain")
	assert.Empty(t, h.mt.Calls())
}

func TestRouteList(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("route:list")
	require.NoError(t, err)
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, "/tracking/{orderId}")
	assert.Contains(t, out, "admin.farmers.reject")
}
