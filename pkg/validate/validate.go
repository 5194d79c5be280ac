// Package validate checks form and request structs before they are sent to
// the backend, returning Laravel-style field messages ready to render next
// to each input.
//
// Rules are go-playground/validator tags. Field names in messages come from
// the json tag:
//
//	type Input struct {
//	    Email    string          `json:"email"      validate:"required,email"`
//	    Password string          `json:"password"   validate:"required,min=6"`
//	    Role     string          `json:"role"       validate:"required,oneof=FARMER DISTRIBUTOR"`
//	    Price    decimal.Decimal `json:"pricePerKg" validate:"dgt=0"`
//	    Website  string          `json:"website"    validate:"omitempty,url"`
//	}
//
// Extra rules registered here:
//
//	dgt=N    shopspring decimal strictly greater than N
//	dgte=N   shopspring decimal greater than or equal to N
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
		_ = v.RegisterValidation("dgt", decimalCompare(func(d, p decimal.Decimal) bool { return d.GreaterThan(p) }))
		_ = v.RegisterValidation("dgte", decimalCompare(func(d, p decimal.Decimal) bool { return d.GreaterThanOrEqual(p) }))
	})
	return v
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates all exported fields of s that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
// Only the first failing rule per field is reported.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := instance().Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, seen := errs[name]; seen {
			continue
		}
		errs[name] = message(fe)
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// First returns one message from errs in a stable order, for single-line
// banners and CLI output.
func First(errs map[string]string) string {
	best := ""
	for field := range errs {
		if best == "" || field < best {
			best = field
		}
	}
	return errs[best]
}

// ─── Messages ─────────────────────────────────────────────────────────────────

func message(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	numeric := isNumeric(fe.Kind()) || fe.Type() == reflect.TypeOf(decimal.Decimal{})

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "min":
		if numeric {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		if numeric {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", field, param)
	case "gt", "dgt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte", "dgte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "lt":
		return fmt.Sprintf("The %s must be less than %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.TrimSuffix(field, "Confirmation"))
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", field)
	case "alphanum":
		return fmt.Sprintf("The %s may only contain letters and numbers.", field)
	case "latitude", "longitude":
		return fmt.Sprintf("The %s must be a valid %s.", field, fe.Tag())
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// decimalValue lets "required" see a zero decimal as empty and a null
// NullDecimal as absent.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		if d.IsZero() {
			return ""
		}
		return d.String()
	case decimal.NullDecimal:
		if !d.Valid || d.Decimal.IsZero() {
			return ""
		}
		return d.Decimal.String()
	}
	return nil
}

func decimalCompare(ok func(d, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		param, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		d, err := decimal.NewFromString(fmt.Sprint(fl.Field().Interface()))
		if err != nil {
			d = decimal.Zero
		}
		return ok(d, param)
	}
}
