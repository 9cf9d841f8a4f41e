package reporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellhub/sellhub/internal/orders"
	"github.com/sellhub/sellhub/internal/reports"
	"github.com/sellhub/sellhub/internal/revenue"
)

type stubSource struct {
	items     []revenue.LineItem
	lastQuery reports.LineItemQuery
}

func (s *stubSource) QueryLineItems(ctx context.Context, q reports.LineItemQuery) ([]revenue.LineItem, error) {
	if len(q.StatusIn) > 0 && q.StatusIn[0] == orders.StatusDelivered {
		s.lastQuery = q
		return s.items, nil
	}
	return nil, nil
}

func (s *stubSource) QueryCounts(ctx context.Context) (reports.Counts, error) {
	return reports.Counts{OrdersByStatus: map[string]int{}}, nil
}

func newTestRouter(source reports.Source) chi.Router {
	service := reports.NewService(source, nil, slog.Default())
	handler := NewHandler(slog.Default(), service)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestSellerDebtsEndpoint(t *testing.T) {
	source := &stubSource{
		items: []revenue.LineItem{
			{OrderID: 1, SellerID: 10, SellerName: "Alice", Quantity: 2, UnitPrice: 1000, CommissionRatePercent: 25},
		},
	}
	router := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/seller-debts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		SellerDebts []map[string]interface{} `json:"sellerDebts"`
		Summary     map[string]interface{}   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.SellerDebts, 1)
	assert.Equal(t, 2000.0, body.SellerDebts[0]["totalRevenue"])
	assert.Equal(t, 1600.0, body.SellerDebts[0]["totalDebt"])
	assert.Equal(t, 400.0, body.SellerDebts[0]["adminProfit"])
	assert.Equal(t, 400.0, body.Summary["totalAdminProfit"])
}

func TestSellerDebtsEndpointEmptyListStaysArray(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/seller-debts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sellerDebts":[]`)
}

func TestSellerDebtsParsesDateWindow(t *testing.T) {
	source := &stubSource{}
	router := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/reports/seller-debts?dateFrom=2026-01-01&dateTo=2026-01-31&sellerId=42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, source.lastQuery.UpdatedFrom)
	require.NotNil(t, source.lastQuery.UpdatedTo)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), source.lastQuery.UpdatedFrom.UTC())
	// The upper bound covers the whole closing day.
	assert.Equal(t, 23, source.lastQuery.UpdatedTo.Hour())
	assert.Equal(t, 31, source.lastQuery.UpdatedTo.Day())
	require.NotNil(t, source.lastQuery.SellerID)
	assert.Equal(t, int64(42), *source.lastQuery.SellerID)
}

func TestSellerDebtsExplicitTimeBoundIsExact(t *testing.T) {
	source := &stubSource{}
	router := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/reports/seller-debts?dateTo=2026-01-15T00%3A00%3A00Z", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, source.lastQuery.UpdatedTo)
	// A midnight bound given with an explicit time must not widen to the day.
	assert.True(t, source.lastQuery.UpdatedTo.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestSellerDebtsIgnoresMalformedDates(t *testing.T) {
	source := &stubSource{}
	router := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/reports/seller-debts?dateFrom=not-a-date&dateTo=2026-13-45&sellerId=abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, source.lastQuery.UpdatedFrom)
	assert.Nil(t, source.lastQuery.UpdatedTo)
	assert.Nil(t, source.lastQuery.SellerID)
}

func TestDashboardEndpoint(t *testing.T) {
	source := &stubSource{
		items: []revenue.LineItem{
			{OrderID: 1, SellerID: 10, SellerName: "Alice", Quantity: 1, UnitPrice: 1100, CommissionRatePercent: 10},
		},
	}
	router := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var overview reports.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 1100.0, overview.TotalRevenue)
	assert.Equal(t, 100.0, overview.NetRevenue)
	assert.Equal(t, 1, overview.DeliveredOrders)
}
