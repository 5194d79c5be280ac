package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/services"
)

// StatsSource is the slice of the admin client the statistics page needs.
type StatsSource interface {
	FarmerCount(ctx context.Context) (int64, error)
	UserCount(ctx context.Context) (int64, error)
	PendingFarmers(ctx context.Context) ([]models.Farmer, error)
}

// Statistics are the admin dashboard counters.
type Statistics struct {
	TotalFarmers         int64 `json:"totalFarmers"`
	TotalUsers           int64 `json:"totalUsers"`
	PendingVerifications int   `json:"pendingVerifications"`
}

// LoadStatistics fetches the three counters concurrently. The first failure
// cancels the others and is returned.
func LoadStatistics(ctx context.Context, src StatsSource) (Statistics, error) {
	var st Statistics
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := src.FarmerCount(ctx)
		st.TotalFarmers = n
		return err
	})
	g.Go(func() error {
		n, err := src.UserCount(ctx)
		st.TotalUsers = n
		return err
	})
	g.Go(func() error {
		pending, err := src.PendingFarmers(ctx)
		st.PendingVerifications = len(pending)
		return err
	})

	if err := g.Wait(); err != nil {
		return Statistics{}, err
	}
	return st, nil
}

// UserActionMessage is the confirmation shown after an administrator
// decides on an account.
func UserActionMessage(a services.UserAction) string {
	past := map[services.UserAction]string{
		services.ActionVerify:   "verified",
		services.ActionReject:   "rejected",
		services.ActionSuspend:  "suspended",
		services.ActionActivate: "activated",
	}
	return "User " + past[a] + " successfully"
}
