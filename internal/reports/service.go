package reports

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sellhub/sellhub/internal/orders"
	"github.com/sellhub/sellhub/internal/revenue"
)

// DebtFilter scopes the seller debts report. Bounds apply to updated_at.
type DebtFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	SellerID *int64
}

// DebtReport is the seller debts response body.
type DebtReport struct {
	SellerDebts []revenue.SellerTotals `json:"sellerDebts"`
	Summary     revenue.Summary        `json:"summary"`
}

// OverviewFilter scopes the dashboard overview window.
type OverviewFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// Overview is the dashboard response body. TotalRevenue is the gross
// customer-paid amount over delivered orders; NetRevenue is the platform's
// commission share of the same orders. CancelledRevenue is a gross
// informational figure and never enters the debt ledger.
type Overview struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	NetRevenue       float64 `json:"netRevenue"`
	CancelledRevenue float64 `json:"cancelledRevenue"`
	DeliveredOrders  int     `json:"deliveredOrders"`
	Counts           Counts  `json:"counts"`
}

// Service coordinates report computation with the cache layer.
type Service struct {
	source Source
	cache  *Cache
	logger *slog.Logger
}

// NewService wires a Source with a Cache helper. A Cache built over a nil
// Redis client degrades to pass-through loading.
func NewService(source Source, cache *Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NewCache(nil, 0)
	}
	return &Service{source: source, cache: cache, logger: logger}
}

// SellerDebts computes the per-seller payable report over delivered orders.
// A failing data source degrades to an empty report instead of an error so
// the endpoint never takes the page down.
func (s *Service) SellerDebts(ctx context.Context, filter DebtFilter) (DebtReport, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		items, err := s.source.QueryLineItems(ctx, LineItemQuery{
			StatusIn:    []orders.Status{orders.StatusDelivered},
			UpdatedFrom: filter.DateFrom,
			UpdatedTo:   filter.DateTo,
			SellerID:    filter.SellerID,
		})
		if err != nil {
			return DebtReport{}, err
		}
		sellers, summary := revenue.Aggregate(items)
		if sellers == nil {
			sellers = []revenue.SellerTotals{}
		}
		return DebtReport{SellerDebts: sellers, Summary: summary}, nil
	}

	key, err := s.cache.BuildKey(ctx, "reports", "debts",
		timeToken(filter.DateFrom), timeToken(filter.DateTo), idToken(filter.SellerID))
	if err != nil {
		s.logger.Warn("report cache key unavailable", slog.Any("error", err))
		key = "reports:debts:nocache"
	}

	var report DebtReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		s.logger.Error("seller debts report degraded to zeros", slog.Any("error", err))
		return DebtReport{SellerDebts: []revenue.SellerTotals{}}, nil
	}
	if report.SellerDebts == nil {
		report.SellerDebts = []revenue.SellerTotals{}
	}
	return report, nil
}

// Overview computes the dashboard figures. Each section fails in isolation:
// a section whose query errors shows zeros while the others still render.
func (s *Service) Overview(ctx context.Context, filter OverviewFilter) (Overview, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.buildOverview(ctx, filter, true)
	}

	key, err := s.cache.BuildKey(ctx, "reports", "overview",
		timeToken(filter.DateFrom), timeToken(filter.DateTo))
	if err != nil {
		s.logger.Warn("report cache key unavailable", slog.Any("error", err))
		key = "reports:overview:nocache"
	}

	var overview Overview
	if err := s.cache.FetchJSON(ctx, key, &overview, loader); err != nil {
		s.logger.Error("dashboard overview partially degraded", slog.Any("error", err))
		// Lenient rebuild: failing sections zero out, the rest still compute.
		// The degraded result is intentionally not cached.
		return s.buildOverview(ctx, filter, false)
	}
	return overview, nil
}

func (s *Service) buildOverview(ctx context.Context, filter OverviewFilter, strict bool) (Overview, error) {
	overview := Overview{Counts: Counts{OrdersByStatus: map[string]int{}}}

	section := func(name string, err error) error {
		if err == nil {
			return nil
		}
		if strict {
			return err
		}
		s.logger.Warn("dashboard section degraded to zeros",
			slog.String("section", name), slog.Any("error", err))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.source.QueryLineItems(gctx, LineItemQuery{
			StatusIn:    []orders.Status{orders.StatusDelivered},
			UpdatedFrom: filter.DateFrom,
			UpdatedTo:   filter.DateTo,
		})
		if err != nil {
			return section("delivered_revenue", err)
		}
		overview.TotalRevenue, overview.NetRevenue = revenue.Totals(items)
		seen := make(map[int64]struct{})
		for _, item := range items {
			seen[item.OrderID] = struct{}{}
		}
		overview.DeliveredOrders = len(seen)
		return nil
	})

	g.Go(func() error {
		items, err := s.source.QueryLineItems(gctx, LineItemQuery{
			StatusIn:    []orders.Status{orders.StatusCanceled},
			UpdatedFrom: filter.DateFrom,
			UpdatedTo:   filter.DateTo,
		})
		if err != nil {
			return section("cancelled_revenue", err)
		}
		overview.CancelledRevenue = revenue.GrossTotal(items)
		return nil
	})

	g.Go(func() error {
		counts, err := s.source.QueryCounts(gctx)
		if err != nil {
			return section("counts", err)
		}
		if counts.OrdersByStatus == nil {
			counts.OrdersByStatus = map[string]int{}
		}
		overview.Counts = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{Counts: Counts{OrdersByStatus: map[string]int{}}}, err
	}
	return overview, nil
}

func timeToken(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("20060102T150405")
}

func idToken(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
