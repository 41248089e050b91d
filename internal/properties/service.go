package properties

import (
	"context"
	"fmt"

	"github.com/riohost/riohost/internal/shared"
)

// Service applies property business rules on top of the Repository.
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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Property, error) {
	if id == "" {
		return Property{}, fmt.Errorf("%w: property id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Property) (Property, error) {
	applyDefaults(&p)
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Property{}, err
	}
	s.changed(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, p Property) error {
	if id == "" {
		return fmt.Errorf("%w: property id required", shared.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: property id required", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// applyDefaults mirrors the defaults the property form pre-fills.
func applyDefaults(p *Property) {
	if p.Status == "" {
		p.Status = shared.PropertyActive
	}
	if p.CommissionRate == 0 {
		p.CommissionRate = 0.20
	}
	if p.DefaultCheckinTime == "" {
		p.DefaultCheckinTime = "15:00"
	}
	if p.DefaultCheckoutTime == "" {
		p.DefaultCheckoutTime = "11:00"
	}
}
