// Package services holds the typed clients for the FarmXChain backend: the
// auth client that owns the session, and one resource client per backend
// area. Every call attaches the session's bearer, makes one request and
// decodes the envelope's data, or returns the backend's message as an
// *http.APIError.
package services

import (
	"strconv"
	"time"

	"github.com/farmxchain/farmx/config"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/session"
	"github.com/farmxchain/farmx/pkg/storage"
)

// Services bundles every client bound to one session.
type Services struct {
	Auth        *AuthService
	Crops       *CropService
	Orders      *OrderService
	Farmers     *FarmerService
	Users       *UserService
	Admin       *AdminService
	Distributor *DistributorService
	Logistics   *LogisticsService
	Upload      *UploadService
}

type options struct {
	now          func() time.Time
	maxUpload    int64
	allowedTypes []string
	disk         func(name string) (storage.Disk, error)
}

// Option configures New.
type Option func(*options)

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithUploadLimits overrides the upload size limit and allowed MIME types.
func WithUploadLimits(maxBytes int64, types []string) Option {
	return func(o *options) { o.maxUpload, o.allowedTypes = maxBytes, types }
}

// WithDisks replaces the storage disk lookup used by UploadFromDisk.
func WithDisks(lookup func(name string) (storage.Disk, error)) Option {
	return func(o *options) { o.disk = lookup }
}

// New binds every client to api and sess. The session supplies the bearer
// for each request.
func New(api *fxhttp.Client, sess *session.Session, opts ...Option) *Services {
	o := options{
		now:          time.Now,
		maxUpload:    config.UploadMaxBytes(),
		allowedTypes: config.UploadAllowedTypes(),
		disk:         storage.Use,
	}
	for _, fn := range opts {
		fn(&o)
	}

	authed := api.WithTokenSource(sess.Token)
	return &Services{
		Auth:        &AuthService{api: authed, sess: sess, now: o.now},
		Crops:       &CropService{api: authed},
		Orders:      &OrderService{api: authed},
		Farmers:     &FarmerService{api: authed},
		Users:       &UserService{api: authed, sess: sess},
		Admin:       &AdminService{api: authed},
		Distributor: &DistributorService{api: authed},
		Logistics:   &LogisticsService{api: authed},
		Upload: &UploadService{
			api:          authed,
			maxBytes:     o.maxUpload,
			allowedTypes: o.allowedTypes,
			disk:         o.disk,
		},
	}
}

func id(n int64) string { return strconv.FormatInt(n, 10) }
