package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/pkg/validate"
)

type registerInput struct {
	Name            string `json:"name"            validate:"required,min=2,max=50"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Role            string `json:"role"            validate:"required,oneof=FARMER DISTRIBUTOR RETAILER CONSUMER"`
	PhoneNumber     string `json:"phoneNumber"     validate:"omitempty,min=10,max=15"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:            "Asha Devi",
		Email:           "asha@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            "FARMER",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if errs["name"] != "The name field is required." {
		t.Errorf("unexpected name message: %q", errs["name"])
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if errs["email"] != "The email must be a valid email address." {
		t.Errorf("unexpected message: %v", errs)
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestLengthMessages(t *testing.T) {
	type in struct {
		Password string  `json:"password"   validate:"required,min=6"`
		Quantity float64 `json:"quantityKg" validate:"gt=0"`
	}
	errs := validate.Struct(in{Password: "abc", Quantity: 0})
	if errs["password"] != "The password must be at least 6 characters." {
		t.Errorf("unexpected password message: %q", errs["password"])
	}
	if errs["quantityKg"] != "The quantityKg must be greater than 0." {
		t.Errorf("unexpected quantity message: %q", errs["quantityKg"])
	}
}

func TestOneOf(t *testing.T) {
	if errs := validate.Struct(registerInput{
		Name: "Ravi", Email: "r@x.io", Password: "secret1", ConfirmPassword: "secret1", Role: "ADMIN",
	}); errs["role"] != "The selected role is invalid." {
		t.Errorf("expected ADMIN to be rejected at registration: %v", errs)
	}
}

func TestConfirmation(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name: "Ravi", Email: "r@x.io", Password: "secret1", ConfirmPassword: "secret2", Role: "CONSUMER",
	})
	if _, ok := errs["confirmPassword"]; !ok {
		t.Errorf("expected confirmation mismatch: %v", errs)
	}
}

func TestOmitemptySkipsRules(t *testing.T) {
	base := registerInput{Name: "Ravi", Email: "r@x.io", Password: "secret1", ConfirmPassword: "secret1", Role: "RETAILER"}
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("expected empty optional phone to pass: %v", errs)
	}
	base.PhoneNumber = "123"
	if errs := validate.Struct(base); !validate.HasErrors(errs) {
		t.Error("expected short phone number to fail")
	}
}

func TestDecimalRules(t *testing.T) {
	type in struct {
		Price decimal.Decimal `json:"pricePerKg" validate:"required,dgt=0"`
	}
	if errs := validate.Struct(in{Price: decimal.Zero}); errs["pricePerKg"] != "The pricePerKg field is required." {
		t.Errorf("expected zero price to be treated as missing: %v", errs)
	}
	if errs := validate.Struct(in{Price: decimal.NewFromInt(-2)}); errs["pricePerKg"] != "The pricePerKg must be greater than 0." {
		t.Errorf("expected negative price to fail: %v", errs)
	}
	if errs := validate.Struct(in{Price: decimal.RequireFromString("12.50")}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass: %v", errs)
	}
}

func TestFirstIsStable(t *testing.T) {
	errs := map[string]string{"b": "second", "a": "first"}
	if got := validate.First(errs); got != "first" {
		t.Errorf("got %q", got)
	}
	if got := validate.First(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
