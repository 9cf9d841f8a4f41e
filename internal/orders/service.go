package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sellhub/sellhub/internal/platform/httpx"
)

// ReportInvalidator invalidates cached report aggregates after an order
// reaches a terminal status.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Service handles order business logic.
type Service struct {
	repo        Repository
	publisher   EventPublisher
	invalidator ReportInvalidator
	logger      *slog.Logger
}

// NewService builds a Service instance. Publisher and invalidator may be nil.
func NewService(repo Repository, publisher EventPublisher, invalidator ReportInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, invalidator: invalidator, logger: logger}
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithRefs, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

var transitions = map[Status][]Status{
	StatusCreated:  {StatusAccepted, StatusCanceled},
	StatusAccepted: {StatusShipped, StatusCanceled},
	StatusShipped:  {StatusDelivered, StatusCanceled},
}

func canTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ChangeStatus moves an order along its lifecycle. Terminal orders cannot be
// moved again. Event publishing and cache invalidation are best-effort and
// never fail the transition.
func (s *Service) ChangeStatus(ctx context.Context, id int64, req StatusChangeRequest) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", httpx.ErrConflict, order.Status, req.Status)
	}
	if req.Status == StatusShipped && req.CourierID == nil && order.CourierID == nil {
		return nil, fmt.Errorf("%w: a courier must be assigned before shipping", httpx.ErrValidation)
	}

	from := order.Status
	if err := s.repo.UpdateStatus(ctx, id, from, req.Status, req.CourierID); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := StatusEvent{
			OrderID:    order.ID,
			Number:     order.Number,
			FromStatus: from,
			ToStatus:   req.Status,
			OccurredAt: time.Now(),
		}
		if err := s.publisher.PublishStatusChange(ctx, event); err != nil && s.logger != nil {
			s.logger.Warn("publish order status event", slog.Int64("order_id", order.ID), slog.Any("error", err))
		}
	}

	if req.Status.Terminal() && s.invalidator != nil {
		if err := s.invalidator.Bump(ctx); err != nil && s.logger != nil {
			s.logger.Warn("bump report cache", slog.Any("error", err))
		}
	}

	return s.repo.Get(ctx, id)
}
