package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellhub/sellhub/internal/platform/httpx"
	"github.com/sellhub/sellhub/internal/shared"
)

// RepositoryPort defines data access methods for staff members.
type RepositoryPort interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Member, int, error)
	Get(ctx context.Context, id int64) (Member, error)
	Create(ctx context.Context, member Member) (Member, error)
	Update(ctx context.Context, id int64, member Member) error
	Delete(ctx context.Context, id int64) error
}

// Service handles staff business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Member, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Member, error) {
	if id <= 0 {
		return Member{}, fmt.Errorf("%w: invalid staff id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form MemberForm) (Member, error) {
	if err := s.validate.Struct(form); err != nil {
		return Member{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	if form.Password == "" {
		return Member{}, fmt.Errorf("%w: password is required", httpx.ErrValidation)
	}
	member, err := s.fromForm(form)
	if err != nil {
		return Member{}, err
	}
	return s.repo.Create(ctx, member)
}

func (s *Service) Update(ctx context.Context, id int64, form MemberForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid staff id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	member, err := s.fromForm(form)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, member)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid staff id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) fromForm(form MemberForm) (Member, error) {
	member := Member{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:    form.Phone,
		Role:     form.Role,
		IsActive: form.IsActive,
	}
	if form.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			return Member{}, err
		}
		member.PasswordHash = string(hash)
	}
	return member, nil
}
