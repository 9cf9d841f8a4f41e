package commission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellhub/sellhub/internal/platform/httpx"
)

type mockRateRepo struct {
	rates  map[int64][]Rate
	nextID int64
}

func newMockRateRepo() *mockRateRepo {
	return &mockRateRepo{rates: make(map[int64][]Rate)}
}

func (m *mockRateRepo) History(ctx context.Context, sellerID int64) ([]Rate, error) {
	history := m.rates[sellerID]
	// Newest first, matching the query order.
	out := make([]Rate, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func (m *mockRateRepo) Latest(ctx context.Context, sellerID int64) (Rate, bool, error) {
	history := m.rates[sellerID]
	if len(history) == 0 {
		return Rate{}, false, nil
	}
	return history[len(history)-1], true, nil
}

func (m *mockRateRepo) Append(ctx context.Context, sellerID int64, ratePercent float64) (Rate, error) {
	m.nextID++
	rate := Rate{ID: m.nextID, SellerID: sellerID, RatePercent: ratePercent, CreatedAt: time.Now()}
	m.rates[sellerID] = append(m.rates[sellerID], rate)
	return rate, nil
}

func TestResolveRateDefaultsToZero(t *testing.T) {
	svc := NewService(newMockRateRepo())

	rate, err := svc.ResolveRate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestResolveRateMostRecentWins(t *testing.T) {
	repo := newMockRateRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, RateForm{RatePercent: 10})
	require.NoError(t, err)
	_, err = svc.Append(ctx, 1, RateForm{RatePercent: 25})
	require.NoError(t, err)

	rate, err := svc.ResolveRate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, rate)
}

func TestResolveRateIsPerSeller(t *testing.T) {
	repo := newMockRateRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, RateForm{RatePercent: 30})
	require.NoError(t, err)

	rate, err := svc.ResolveRate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestAppendRejectsNegativeRate(t *testing.T) {
	svc := NewService(newMockRateRepo())

	_, err := svc.Append(context.Background(), 1, RateForm{RatePercent: -5})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestAppendAllowsZeroRate(t *testing.T) {
	svc := NewService(newMockRateRepo())

	rate, err := svc.Append(context.Background(), 1, RateForm{RatePercent: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate.RatePercent)
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := newMockRateRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, pct := range []float64{5, 10, 15} {
		_, err := svc.Append(ctx, 1, RateForm{RatePercent: pct})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 15.0, history[0].RatePercent)
	assert.Equal(t, 5.0, history[2].RatePercent)
}

func TestInvalidSellerID(t *testing.T) {
	svc := NewService(newMockRateRepo())
	ctx := context.Background()

	_, err := svc.History(ctx, 0)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Append(ctx, -1, RateForm{RatePercent: 10})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
