package cleaning

import (
	"context"
	"fmt"

	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/shared"
)

// Service applies housekeeping rules on top of the Repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAssigned(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	return s.repo.ListAssigned(ctx, q)
}

func (s *Service) ListAvailable(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	return s.repo.ListAvailable(ctx, q)
}

// Schedule lists a cleaner's own upcoming cleanings.
func (s *Service) Schedule(ctx context.Context, cleanerID string, q ListQuery) ([]Cleaning, error) {
	if cleanerID == "" {
		return nil, fmt.Errorf("%w: cleaner id required", shared.ErrValidation)
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	return s.repo.ListForCleaner(ctx, cleanerID, q)
}

func (s *Service) Cleaners(ctx context.Context, propertyIDs []string) ([]Cleaner, error) {
	return s.repo.ListCleaners(ctx, propertyIDs)
}

func (s *Service) Assign(ctx context.Context, reservationID, cleanerID string) error {
	if reservationID == "" || cleanerID == "" {
		return fmt.Errorf("%w: reservation and cleaner ids required", shared.ErrValidation)
	}
	return s.repo.Assign(ctx, reservationID, cleanerID)
}

func (s *Service) Unassign(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	return s.repo.Unassign(ctx, reservationID)
}

func (s *Service) ToggleStatus(ctx context.Context, reservationID string) (string, error) {
	if reservationID == "" {
		return "", fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	return s.repo.ToggleStatus(ctx, reservationID)
}

func (s *Service) SetFeedback(ctx context.Context, reservationID string, rating *int, notes string) error {
	if reservationID == "" {
		return fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5", shared.ErrValidation)
	}
	return s.repo.SetFeedback(ctx, reservationID, rating, notes)
}

func validateQuery(q ListQuery) error {
	if q.Start != "" {
		if _, ok := filters.ParseISODate(q.Start); !ok {
			return fmt.Errorf("%w: start date must be yyyy-MM-dd", shared.ErrValidation)
		}
	}
	if q.End != "" {
		if _, ok := filters.ParseISODate(q.End); !ok {
			return fmt.Errorf("%w: end date must be yyyy-MM-dd", shared.ErrValidation)
		}
	}
	return nil
}
