package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/app/models"
)

// old echoes the submitted form back, minus secrets.
func old(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) == 0 || strings.Contains(strings.ToLower(k), "password") {
			continue
		}
		out[k] = v[0]
	}
	return out
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formInt64 parses key, returning 0 when absent or malformed so the
// validator reports it as required.
func formInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(formString(r, key), 10, 64)
	return n
}

func formDecimal(r *http.Request, key string) decimal.Decimal {
	d, err := decimal.NewFromString(formString(r, key))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formNullDecimal(r *http.Request, key string) decimal.NullDecimal {
	d, err := decimal.NewFromString(formString(r, key))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func formFloat(r *http.Request, key string) *float64 {
	f, err := strconv.ParseFloat(formString(r, key), 64)
	if err != nil {
		return nil
	}
	return &f
}

func formInt(r *http.Request, key string) *int {
	n, err := strconv.Atoi(formString(r, key))
	if err != nil {
		return nil
	}
	return &n
}

func formDate(r *http.Request, key string) models.Timestamp {
	t, err := models.ParseTimestamp(formString(r, key))
	if err != nil {
		return models.Timestamp{}
	}
	return t
}

// pathID parses a numeric route parameter.
func pathID(r *http.Request, key string) (int64, bool) {
	n, err := strconv.ParseInt(urlParam(r, key), 10, 64)
	return n, err == nil && n > 0
}
