package views

import (
	"errors"

	"github.com/farmxchain/farmx/app/services"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
)

// ErrorMessage turns err into banner text. Backend replies and upload
// rejections speak for themselves; anything else (transport failures,
// decode errors) is replaced by fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *fxhttp.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var tooLarge *services.TooLargeError
	var badType *services.TypeError
	switch {
	case errors.As(err, &tooLarge), errors.As(err, &badType), errors.Is(err, services.ErrNoFile):
		return err.Error()
	}
	return fallback
}

// Optional treats a 404 as "nothing there yet": it returns (nil, nil) so the
// page renders its empty state instead of an error.
func Optional[T any](v *T, err error) (*T, error) {
	if fxhttp.IsNotFound(err) {
		return nil, nil
	}
	return v, err
}
