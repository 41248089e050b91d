package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/internal/shared"
)

type mockSources struct {
	mu sync.Mutex

	resList  []reservations.Reservation
	resErr   error
	resCalls int
	resQuery reservations.ListQuery
	resHook  func()

	expList  []expenses.Expense
	expErr   error
	expCalls int

	propList  []properties.Property
	propErr   error
	propCalls int
}

func (m *mockSources) ListOverlapping(ctx context.Context, q reservations.ListQuery) ([]reservations.Reservation, error) {
	m.mu.Lock()
	m.resCalls++
	m.resQuery = q
	hook, list, err := m.resHook, m.resList, m.resErr
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return list, err
}

func (m *mockSources) ListBetween(ctx context.Context, q expenses.ListQuery) ([]expenses.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expCalls++
	return m.expList, m.expErr
}

func (m *mockSources) List(ctx context.Context, f properties.ListFilters) ([]properties.Property, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.propCalls++
	return m.propList, len(m.propList), m.propErr
}

func (m *mockSources) lastReservationQuery() reservations.ListQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resQuery
}

func (m *mockSources) reservationCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resCalls
}

func newTestService(t *testing.T, src *mockSources) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(src, src, src, NewCache(client, time.Minute))
	svc.WithNow(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

func TestLoadAggregatesAndCaches(t *testing.T) {
	src := &mockSources{
		resList: []reservations.Reservation{
			{TotalRevenue: f(300), NetRevenue: f(240), Platform: "Airbnb", PaymentStatus: "Pago"},
		},
		expList:  []expenses.Expense{{Amount: f(90)}},
		propList: []properties.Property{{Status: "Ativo"}},
	}
	svc := newTestService(t, src)
	ctx := context.Background()
	sel := filters.DefaultSelection()

	first, err := svc.Load(ctx, sel)
	require.NoError(t, err)
	assert.InDelta(t, 300, first.TotalRevenue, 1e-9)
	assert.InDelta(t, 240-90, first.NetProfit, 1e-9)
	assert.Equal(t, 1, src.resCalls)

	// Second load for the same selection comes from cache.
	second, err := svc.Load(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.resCalls)
	assert.Equal(t, 1, src.expCalls)
	assert.Equal(t, 1, src.propCalls)
}

func TestLoadPushesSelectionDown(t *testing.T) {
	src := &mockSources{}
	svc := newTestService(t, src)

	sel := filters.DefaultSelection()
	sel.Period = filters.PeriodCurrentMonth
	sel.Properties = []string{"p2", "p1"}
	sel.Platform = "Booking.com"

	_, err := svc.Load(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", src.resQuery.Start)
	assert.Equal(t, "2025-06-30", src.resQuery.End)
	assert.ElementsMatch(t, []string{"p1", "p2"}, src.resQuery.PropertyIDs)
	assert.Equal(t, "Booking.com", src.resQuery.Platform)
}

func TestInvalidateBumpsVersion(t *testing.T) {
	src := &mockSources{propList: []properties.Property{{Status: "Ativo"}}}
	svc := newTestService(t, src)
	ctx := context.Background()
	sel := filters.DefaultSelection()

	_, err := svc.Load(ctx, sel)
	require.NoError(t, err)
	require.Equal(t, 1, src.propCalls)

	require.NoError(t, svc.Invalidate(ctx))

	// The bump changes every key, so the next load recomputes.
	_, err = svc.Load(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, 2, src.propCalls)
}

func TestLoadFailureNeverYieldsPartialData(t *testing.T) {
	src := &mockSources{
		resList: []reservations.Reservation{{TotalRevenue: f(300)}},
		expErr:  errors.New("connection refused"),
	}
	svc := newTestService(t, src)

	_, err := svc.Load(context.Background(), filters.DefaultSelection())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnavailable)
	assert.Contains(t, err.Error(), "fetch expenses")
}

func TestLoadWithoutCache(t *testing.T) {
	src := &mockSources{propList: []properties.Property{{Status: "Ativo"}}}
	svc := NewService(src, src, src, nil)
	svc.WithNow(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})

	summary, err := svc.Load(context.Background(), filters.DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ActiveProperties)

	_, err = svc.Load(context.Background(), filters.DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, 2, src.propCalls, "no cache means every load recomputes")
}

type stubExpenseStore struct{}

func (stubExpenseStore) ListBetween(ctx context.Context, q expenses.ListQuery) ([]expenses.Expense, error) {
	return nil, nil
}

func (stubExpenseStore) Get(ctx context.Context, id string) (expenses.Expense, error) {
	return expenses.Expense{}, shared.ErrNotFound
}

func (stubExpenseStore) Create(ctx context.Context, e expenses.Expense) (expenses.Expense, error) {
	e.ID = "exp-1"
	return e, nil
}

func (stubExpenseStore) Update(ctx context.Context, id string, e expenses.Expense) error {
	return nil
}

func (stubExpenseStore) Delete(ctx context.Context, id string) error { return nil }

// A write through the expense service must leave the next load fresh rather
// than serving the pre-write summary until the TTL expires.
func TestWriteInvalidatesCachedSummary(t *testing.T) {
	src := &mockSources{propList: []properties.Property{{Status: "Ativo"}}}
	svc := newTestService(t, src)
	ctx := context.Background()
	sel := filters.DefaultSelection()

	_, err := svc.Load(ctx, sel)
	require.NoError(t, err)
	require.Equal(t, 1, src.reservationCalls())

	expSvc := expenses.NewService(stubExpenseStore{})
	expSvc.NotifyChanges(func(ctx context.Context) {
		require.NoError(t, svc.Invalidate(ctx))
	})

	amount := 200.0
	_, err = expSvc.Create(ctx, expenses.Expense{Description: "Manutenção ar-condicionado", Amount: &amount, ExpenseDate: "2025-06-10"})
	require.NoError(t, err)

	_, err = svc.Load(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, 2, src.reservationCalls())
}
