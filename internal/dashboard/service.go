package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/internal/shared"
)

// ReservationSource fetches reservations overlapping a date range.
type ReservationSource interface {
	ListOverlapping(ctx context.Context, q reservations.ListQuery) ([]reservations.Reservation, error)
}

// ExpenseSource fetches expenses dated inside a range.
type ExpenseSource interface {
	ListBetween(ctx context.Context, q expenses.ListQuery) ([]expenses.Expense, error)
}

// PropertySource fetches the property portfolio.
type PropertySource interface {
	List(ctx context.Context, f properties.ListFilters) ([]properties.Property, int, error)
}

// Service resolves a filter selection into a KPI summary: it derives the date
// range, fans out the three fetches, and aggregates. A failed fetch aborts
// the whole load; the summary is never built from partial data.
type Service struct {
	reservations ReservationSource
	expenses     ExpenseSource
	props        PropertySource
	cache        *Cache
	now          func() time.Time
}

// NewService wires the three record sources with the cache helper. A nil
// cache disables caching.
func NewService(res ReservationSource, exp ExpenseSource, props PropertySource, cache *Cache) *Service {
	return &Service{reservations: res, expenses: exp, props: props, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Load resolves the selection and produces the KPI summary.
func (s *Service) Load(ctx context.Context, sel filters.Selection) (KPISummary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.load(ctx, sel)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return KPISummary{}, err
		}
		return value.(KPISummary), nil
	}

	key, err := s.cache.BuildKey(ctx, keyKPI(sel.Key(s.now())))
	if err != nil {
		return KPISummary{}, err
	}
	var summary KPISummary
	if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
		return KPISummary{}, err
	}
	return summary, nil
}

// Invalidate drops every cached summary after a write to the underlying data.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Bump(ctx)
}

func (s *Service) load(ctx context.Context, sel filters.Selection) (KPISummary, error) {
	rng := sel.DateRange(s.now())
	start, end := rng.Strings()
	propertyIDs := sel.PropertyFilter()
	platform := sel.PlatformFilter()

	var (
		resList  []reservations.Reservation
		expList  []expenses.Expense
		propList []properties.Property
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resList, err = s.reservations.ListOverlapping(gctx, reservations.ListQuery{
			Start:       start,
			End:         end,
			PropertyIDs: propertyIDs,
			Platform:    platform,
		})
		if err != nil {
			return fmt.Errorf("fetch reservations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expList, err = s.expenses.ListBetween(gctx, expenses.ListQuery{
			Start:       start,
			End:         end,
			PropertyIDs: propertyIDs,
		})
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		propList, _, err = s.props.List(gctx, properties.ListFilters{})
		if err != nil {
			return fmt.Errorf("fetch properties: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return KPISummary{}, fmt.Errorf("%w: %s", shared.ErrUnavailable, err.Error())
	}

	return Aggregate(resList, expList, propList, rng.Start, rng.End), nil
}
