package reservations

import (
	"context"
	"fmt"

	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/shared"
)

// PropertyReader resolves the property a reservation belongs to. The
// reservation service only needs reads; the full property module owns writes.
type PropertyReader interface {
	Get(ctx context.Context, id string) (properties.Property, error)
}

// Service applies booking rules: revenue derivation, status transitions and
// overlap-scoped listings.
type Service struct {
	repo     Repository
	props    PropertyReader
	onChange func(context.Context)
}

// NewService constructs a Service.
func NewService(repo Repository, props PropertyReader) *Service {
	return &Service{repo: repo, props: props}
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

// ListOverlapping returns the reservations whose stay intersects the range.
func (s *Service) ListOverlapping(ctx context.Context, q ListQuery) ([]Reservation, error) {
	if _, ok := filters.ParseISODate(q.Start); !ok {
		return nil, fmt.Errorf("%w: start date must be yyyy-MM-dd", shared.ErrValidation)
	}
	if _, ok := filters.ParseISODate(q.End); !ok {
		return nil, fmt.Errorf("%w: end date must be yyyy-MM-dd", shared.ErrValidation)
	}
	return s.repo.ListOverlapping(ctx, q)
}

func (s *Service) Get(ctx context.Context, id string) (Reservation, error) {
	if id == "" {
		return Reservation{}, fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create stores a booking, deriving the financial breakdown from the
// property's commission rate when the caller supplies only the total.
func (s *Service) Create(ctx context.Context, res Reservation) (Reservation, error) {
	if err := s.deriveRevenue(ctx, &res); err != nil {
		return Reservation{}, err
	}
	if res.ReservationStatus == "" {
		res.ReservationStatus = shared.ReservationConfirmed
	}
	if res.PaymentStatus == "" {
		res.PaymentStatus = shared.PaymentPending
	}
	created, err := s.repo.Create(ctx, res)
	if err != nil {
		return Reservation{}, err
	}
	s.changed(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, res Reservation) error {
	if id == "" {
		return fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if res.ReservationStatus != "" && !shared.EqualStatus(res.ReservationStatus, current.ReservationStatus) {
		if err := shared.ValidateReservationTransition(current.ReservationStatus, res.ReservationStatus); err != nil {
			return err
		}
	}
	if err := s.deriveRevenue(ctx, &res); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, res); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// ChangeStatus applies a status transition after validating it.
func (s *Service) ChangeStatus(ctx context.Context, id, target string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := shared.ValidateReservationTransition(current.ReservationStatus, target); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: reservation id required", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// deriveRevenue fills commission, net revenue and cleaning fee from the
// property record. Rows arriving with an explicit breakdown keep it.
func (s *Service) deriveRevenue(ctx context.Context, res *Reservation) error {
	if res.TotalRevenue == nil || res.PropertyID == "" {
		return nil
	}
	if res.CommissionAmount != nil && res.NetRevenue != nil {
		return nil
	}
	prop, err := s.props.Get(ctx, res.PropertyID)
	if err != nil {
		return fmt.Errorf("reservations: resolve property: %w", err)
	}

	total := *res.TotalRevenue
	if res.CleaningFee == nil && prop.CleaningFee != nil {
		fee := *prop.CleaningFee
		res.CleaningFee = &fee
	}
	cleaning := 0.0
	if res.CleaningFee != nil {
		cleaning = *res.CleaningFee
	}
	if res.CommissionAmount == nil {
		commission := (total - cleaning) * prop.CommissionRate
		res.CommissionAmount = &commission
	}
	if res.BaseRevenue == nil {
		base := total - cleaning
		res.BaseRevenue = &base
	}
	if res.NetRevenue == nil {
		net := total - *res.CommissionAmount
		res.NetRevenue = &net
	}
	return nil
}
