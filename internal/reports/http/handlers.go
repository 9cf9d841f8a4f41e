package reporthttp

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sellhub/sellhub/internal/platform/httpx"
	"github.com/sellhub/sellhub/internal/reports"
	"github.com/sellhub/sellhub/internal/shared"
)

// Handler serves the financial report endpoints.
type Handler struct {
	logger  *slog.Logger
	service *reports.Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *reports.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// SellerDebts serves GET /reports/seller-debts.
func (h *Handler) SellerDebts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := reports.DebtFilter{
		DateFrom: shared.ParseDate(q.Get("dateFrom")),
		DateTo:   shared.ParseDateEnd(q.Get("dateTo")),
	}
	if q.Get("sellerId") != "" {
		if id, err := strconv.ParseInt(q.Get("sellerId"), 10, 64); err == nil && id > 0 {
			filter.SellerID = &id
		}
	}

	value, err, _ := collapse(r.Context(), "debts:"+r.URL.RawQuery, func() (interface{}, error) {
		return h.service.SellerDebts(r.Context(), filter)
	})
	if err != nil {
		h.logger.Error("seller debts report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, value)
}

// Dashboard serves GET /reports/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := reports.OverviewFilter{
		DateFrom: shared.ParseDate(q.Get("dateFrom")),
		DateTo:   shared.ParseDateEnd(q.Get("dateTo")),
	}

	value, err, _ := collapse(r.Context(), "dashboard:"+r.URL.RawQuery, func() (interface{}, error) {
		return h.service.Overview(r.Context(), filter)
	})
	if err != nil {
		h.logger.Error("dashboard overview", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, value)
}
