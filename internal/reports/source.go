// Package reports computes the financial report views: the seller debt
// ledger and the dashboard overview. Both feed the same revenue split engine
// from a single eligibility query so the two surfaces can never diverge in
// formula.
package reports

import (
	"context"
	"time"

	"github.com/sellhub/sellhub/internal/orders"
	"github.com/sellhub/sellhub/internal/revenue"
)

// LineItemQuery selects the order line items a report aggregates over. Date
// bounds apply to the order's updated_at, the last-status-change time.
type LineItemQuery struct {
	StatusIn    []orders.Status
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
	SellerID    *int64
	CourierID   *int64
}

// Counts carries the descriptive figures blended into the dashboard.
type Counts struct {
	Products       int            `json:"products"`
	Categories     int            `json:"categories"`
	Sellers        int            `json:"sellers"`
	Couriers       int            `json:"couriers"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
}

// Source is the order data source consumed by the report services. Line
// items come back with the commission rate already resolved per seller
// (most recent record wins, absent record means 0).
type Source interface {
	QueryLineItems(ctx context.Context, q LineItemQuery) ([]revenue.LineItem, error)
	QueryCounts(ctx context.Context) (Counts, error)
}
