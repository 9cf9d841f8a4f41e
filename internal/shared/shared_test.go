package shared

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-15", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2026-01-15T10:30:00", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-01-15T10:30:00Z", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		require.NotNil(t, got, tc.in)
		assert.True(t, got.Equal(tc.want), tc.in)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2026-13-45", "15/01/2026"} {
		assert.Nil(t, ParseDate(in), in)
	}
}

func TestParseDateEnd(t *testing.T) {
	dateOnly := ParseDateEnd("2026-01-15")
	require.NotNil(t, dateOnly)
	assert.Equal(t, 23, dateOnly.Hour())
	assert.Equal(t, 15, dateOnly.Day())

	// An explicit time is an exact bound, even at midnight.
	exactMidnight := ParseDateEnd("2026-01-15T00:00:00Z")
	require.NotNil(t, exactMidnight)
	assert.True(t, exactMidnight.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))

	withTime := ParseDateEnd("2026-01-15T10:30:00")
	require.NotNil(t, withTime)
	assert.Equal(t, 10, withTime.Hour())

	assert.Nil(t, ParseDateEnd(""))
	assert.Nil(t, ParseDateEnd("not-a-date"))
}

func TestEndOfDay(t *testing.T) {
	midnight := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(midnight)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 15, end.Day())

	explicit := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, explicit, EndOfDay(explicit))
}

func TestParseListFiltersDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)
	filters := ParseListFilters(r)

	assert.Equal(t, 1, filters.Page)
	assert.Equal(t, 20, filters.Limit)
	assert.Zero(t, filters.Offset())
}

func TestParseListFiltersClampsAndParses(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/products?page=3&limit=500&search=kb&seller_id=7&category_id=2&is_active=true&role=seller", nil)
	filters := ParseListFilters(r)

	assert.Equal(t, 3, filters.Page)
	assert.Equal(t, 200, filters.Limit)
	assert.Equal(t, "kb", filters.Search)
	assert.Equal(t, "seller", filters.Role)
	require.NotNil(t, filters.SellerID)
	assert.Equal(t, int64(7), *filters.SellerID)
	require.NotNil(t, filters.CategoryID)
	assert.Equal(t, int64(2), *filters.CategoryID)
	require.NotNil(t, filters.IsActive)
	assert.True(t, *filters.IsActive)
	assert.Equal(t, 400, filters.Offset())
}

func TestParseListFiltersIgnoresBadNumbers(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=abc&limit=-5&seller_id=xyz", nil)
	filters := ParseListFilters(r)

	assert.Equal(t, 1, filters.Page)
	assert.Equal(t, 20, filters.Limit)
	assert.Nil(t, filters.SellerID)
}
