package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/sellhub/sellhub/internal/platform/httpx"
	"github.com/sellhub/sellhub/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CategoryForm) (Category, error) {
	category, err := fromForm(form)
	if err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, id int64, form CategoryForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	category, err := fromForm(form)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, category)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func fromForm(form CategoryForm) (Category, error) {
	slug := strings.TrimSpace(strings.ToLower(form.Slug))
	name := strings.TrimSpace(form.Name)
	if slug == "" {
		return Category{}, fmt.Errorf("%w: slug is required", httpx.ErrValidation)
	}
	if name == "" {
		return Category{}, fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}
	return Category{Slug: slug, Name: name}, nil
}
