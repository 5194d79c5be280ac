package views

import (
	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/pkg/collection"
)

// Earnings summarises a distributor's delivery fees.
type Earnings struct {
	Rows    []models.Order
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal
}

// ComputeEarnings keeps delivered orders that carry a non-zero delivery fee,
// newest update first.
func ComputeEarnings(orders []models.Order) Earnings {
	paid := collection.Filter(orders, func(o models.Order) bool {
		return o.Status == models.OrderDelivered && o.DeliveryFee.Valid && !o.DeliveryFee.Decimal.IsZero()
	})
	rows := collection.SortBy(paid, func(a, b models.Order) bool {
		return a.UpdatedAt.After(b.UpdatedAt.Time)
	})
	total := collection.Reduce(rows, decimal.Zero, func(sum decimal.Decimal, o models.Order) decimal.Decimal {
		return sum.Add(o.DeliveryFee.Decimal)
	})

	e := Earnings{Rows: rows, Total: total, Count: len(rows), Average: decimal.Zero}
	if e.Count > 0 {
		e.Average = total.DivRound(decimal.NewFromInt(int64(e.Count)), 2)
	}
	return e
}
