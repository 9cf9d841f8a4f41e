package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sellhub/sellhub/internal/reports"
)

// NewReportsWarmupHandler primes the report cache by computing the dashboard
// overview and the current month's seller debts.
func NewReportsWarmupHandler(service *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		if _, err := service.Overview(ctx, reports.OverviewFilter{DateFrom: &monthStart}); err != nil {
			return err
		}
		if _, err := service.SellerDebts(ctx, reports.DebtFilter{DateFrom: &monthStart}); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("report cache warmed", slog.Time("month_start", monthStart))
		}
		return nil
	}
}
