package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellhub/sellhub/internal/platform/httpx"
)

type mockOrderRepo struct {
	orders      map[int64]*Order
	updateErr   error
	updateCalls int
}

func newMockOrderRepo(orders ...*Order) *mockOrderRepo {
	repo := &mockOrderRepo{orders: make(map[int64]*Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (m *mockOrderRepo) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithRefs, int, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) Get(ctx context.Context, id int64) (*Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int64, from, to Status, courierID *int64) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	order, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if order.Status != from {
		return httpx.ErrConflict
	}
	order.Status = to
	if courierID != nil {
		order.CourierID = courierID
	}
	return nil
}

type mockPublisher struct {
	events []StatusEvent
	err    error
}

func (m *mockPublisher) PublishStatusChange(ctx context.Context, event StatusEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockInvalidator struct {
	bumps int
	err   error
}

func (m *mockInvalidator) Bump(ctx context.Context) error {
	m.bumps++
	return m.err
}

func TestChangeStatusHappyPath(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Number: "ORD-1", Status: StatusCreated})
	svc := NewService(repo, nil, nil, slog.Default())

	order, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, order.Status)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestChangeStatusRejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
	}{
		{"created cannot deliver", StatusCreated, StatusDelivered},
		{"created cannot ship", StatusCreated, StatusShipped},
		{"accepted cannot deliver", StatusAccepted, StatusDelivered},
		{"delivered is terminal", StatusDelivered, StatusCanceled},
		{"canceled is terminal", StatusCanceled, StatusAccepted},
		{"no self transition", StatusAccepted, StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockOrderRepo(&Order{ID: 1, Status: tc.from})
			svc := NewService(repo, nil, nil, slog.Default())

			_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: tc.to})
			require.Error(t, err)
			assert.ErrorIs(t, err, httpx.ErrConflict)
			assert.Zero(t, repo.updateCalls)
		})
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusCreated})
	svc := NewService(repo, nil, nil, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: Status("returned")})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestChangeStatusRequiresCourierBeforeShipping(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusAccepted})
	svc := NewService(repo, nil, nil, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusShipped})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	courier := int64(7)
	order, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusShipped, CourierID: &courier})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, order.Status)
	require.NotNil(t, order.CourierID)
	assert.Equal(t, courier, *order.CourierID)
}

func TestChangeStatusShipsWithPreassignedCourier(t *testing.T) {
	courier := int64(7)
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusAccepted, CourierID: &courier})
	svc := NewService(repo, nil, nil, slog.Default())

	order, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, order.Status)
}

func TestChangeStatusTerminalBumpsReportCache(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusShipped})
	invalidator := &mockInvalidator{}
	svc := NewService(repo, nil, invalidator, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, 1, invalidator.bumps)
}

func TestChangeStatusNonTerminalSkipsBump(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusCreated})
	invalidator := &mockInvalidator{}
	svc := NewService(repo, nil, invalidator, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusAccepted})
	require.NoError(t, err)
	assert.Zero(t, invalidator.bumps)
}

func TestChangeStatusPublishesEvent(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Number: "ORD-1", Status: StatusShipped})
	publisher := &mockPublisher{}
	svc := NewService(repo, publisher, nil, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusDelivered})
	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, StatusShipped, publisher.events[0].FromStatus)
	assert.Equal(t, StatusDelivered, publisher.events[0].ToStatus)
	assert.Equal(t, "ORD-1", publisher.events[0].Number)
}

func TestChangeStatusPublishFailureDoesNotFailTransition(t *testing.T) {
	repo := newMockOrderRepo(&Order{ID: 1, Status: StatusShipped})
	publisher := &mockPublisher{err: errors.New("broker down")}
	invalidator := &mockInvalidator{err: errors.New("redis down")}
	svc := NewService(repo, publisher, invalidator, slog.Default())

	order, err := svc.ChangeStatus(context.Background(), 1, StatusChangeRequest{Status: StatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestChangeStatusNotFound(t *testing.T) {
	svc := NewService(newMockOrderRepo(), nil, nil, slog.Default())

	_, err := svc.ChangeStatus(context.Background(), 99, StatusChangeRequest{Status: StatusAccepted})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusShipped.Terminal())
	assert.True(t, StatusCreated.Valid())
	assert.False(t, Status("refunded").Valid())
}
