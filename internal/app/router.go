package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellhub/sellhub/internal/catalog/categories"
	"github.com/sellhub/sellhub/internal/catalog/products"
	"github.com/sellhub/sellhub/internal/commission"
	"github.com/sellhub/sellhub/internal/observability"
	"github.com/sellhub/sellhub/internal/orders"
	reporthttp "github.com/sellhub/sellhub/internal/reports/http"
	"github.com/sellhub/sellhub/internal/staff"
	"github.com/sellhub/sellhub/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CategoriesHandler *categories.Handler
	ProductsHandler   *products.Handler
	StaffHandler      *staff.Handler
	CommissionHandler *commission.Handler
	OrdersHandler     *orders.Handler
	ReportsHandler    *reporthttp.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with SellHub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if params.CategoriesHandler != nil {
			params.CategoriesHandler.MountRoutes(r)
		}
		if params.ProductsHandler != nil {
			params.ProductsHandler.MountRoutes(r)
		}
		if params.StaffHandler != nil {
			params.StaffHandler.MountRoutes(r)
		}
		if params.CommissionHandler != nil {
			params.CommissionHandler.MountRoutes(r)
		}
		if params.OrdersHandler != nil {
			params.OrdersHandler.MountRoutes(r)
		}
		if params.ReportsHandler != nil {
			params.ReportsHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			params.JobHandler.MountRoutes(r)
		}
	})

	return r
}
