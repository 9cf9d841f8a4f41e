package commission

import (
	"context"
	"fmt"

	"github.com/sellhub/sellhub/internal/platform/httpx"
)

// RepositoryPort defines data access methods for commission records.
type RepositoryPort interface {
	History(ctx context.Context, sellerID int64) ([]Rate, error)
	Latest(ctx context.Context, sellerID int64) (Rate, bool, error)
	Append(ctx context.Context, sellerID int64, ratePercent float64) (Rate, error)
}

// Service handles commission record logic and rate resolution.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

func (s *Service) History(ctx context.Context, sellerID int64) ([]Rate, error) {
	if sellerID <= 0 {
		return nil, fmt.Errorf("%w: invalid seller id", httpx.ErrValidation)
	}
	return s.repo.History(ctx, sellerID)
}

func (s *Service) Append(ctx context.Context, sellerID int64, form RateForm) (Rate, error) {
	if sellerID <= 0 {
		return Rate{}, fmt.Errorf("%w: invalid seller id", httpx.ErrValidation)
	}
	if form.RatePercent < 0 {
		return Rate{}, fmt.Errorf("%w: rate must not be negative", httpx.ErrValidation)
	}
	return s.repo.Append(ctx, sellerID, form.RatePercent)
}

// ResolveRate returns the commission rate in effect for a seller. A seller
// without any record resolves to 0, meaning the seller keeps the full price.
func (s *Service) ResolveRate(ctx context.Context, sellerID int64) (float64, error) {
	rate, found, err := s.repo.Latest(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return rate.RatePercent, nil
}
