package expenses

import (
	"context"
	"fmt"

	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/shared"
)

// Service applies expense rules on top of the Repository.
type Service struct {
	repo     Repository
	onChange func(context.Context)
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NotifyChanges registers fn to run after every successful write. The
// composition root uses it to invalidate the dashboard cache.
func (s *Service) NotifyChanges(fn func(context.Context)) {
	s.onChange = fn
}

func (s *Service) changed(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx)
	}
}

func (s *Service) ListBetween(ctx context.Context, q ListQuery) ([]Expense, error) {
	if _, ok := filters.ParseISODate(q.Start); !ok {
		return nil, fmt.Errorf("%w: start date must be yyyy-MM-dd", shared.ErrValidation)
	}
	if _, ok := filters.ParseISODate(q.End); !ok {
		return nil, fmt.Errorf("%w: end date must be yyyy-MM-dd", shared.ErrValidation)
	}
	return s.repo.ListBetween(ctx, q)
}

func (s *Service) Get(ctx context.Context, id string) (Expense, error) {
	if id == "" {
		return Expense{}, fmt.Errorf("%w: expense id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, e Expense) (Expense, error) {
	if _, ok := filters.ParseISODate(e.ExpenseDate); !ok {
		return Expense{}, fmt.Errorf("%w: expense date must be yyyy-MM-dd", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return Expense{}, err
	}
	s.changed(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, e Expense) error {
	if id == "" {
		return fmt.Errorf("%w: expense id required", shared.ErrValidation)
	}
	if _, ok := filters.ParseISODate(e.ExpenseDate); !ok {
		return fmt.Errorf("%w: expense date must be yyyy-MM-dd", shared.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, e); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: expense id required", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}
