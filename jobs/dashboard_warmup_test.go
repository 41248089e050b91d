package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riohost/riohost/internal/dashboard"
	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
)

type countingSources struct {
	mu    sync.Mutex
	loads int
}

func (c *countingSources) ListOverlapping(ctx context.Context, q reservations.ListQuery) ([]reservations.Reservation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	return nil, nil
}

func (c *countingSources) ListBetween(ctx context.Context, q expenses.ListQuery) ([]expenses.Expense, error) {
	return nil, nil
}

func (c *countingSources) List(ctx context.Context, f properties.ListFilters) ([]properties.Property, int, error) {
	return nil, 0, nil
}

func (c *countingSources) loadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

func newWarmupFixture(t *testing.T) (*DashboardWarmupJob, *countingSources) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &countingSources{}
	svc := dashboard.NewService(src, src, src, dashboard.NewCache(client, time.Minute))
	svc.WithNow(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return NewDashboardWarmupJob(svc, nil, nil), src
}

func TestWarmupPopulatesCache(t *testing.T) {
	job, src := newWarmupFixture(t)

	task, err := NewDashboardWarmupTask(DashboardWarmupPayload{
		Periods: []string{filters.PeriodCurrentMonth, filters.PeriodCurrentYear},
	})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 2, src.loadCount())

	// A second run finds both summaries cached.
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 2, src.loadCount())
}

func TestWarmupDefaultsPeriodSet(t *testing.T) {
	job, src := newWarmupFixture(t)

	task, err := NewDashboardWarmupTask(DashboardWarmupPayload{})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, len(defaultWarmupPeriods), src.loadCount())
}

func TestInvalidateForcesRecompute(t *testing.T) {
	job, src := newWarmupFixture(t)
	ctx := context.Background()

	task, err := NewDashboardWarmupTask(DashboardWarmupPayload{
		Periods: []string{filters.PeriodCurrentMonth},
	})
	require.NoError(t, err)

	require.NoError(t, job.Handle(ctx, task))
	require.Equal(t, 1, src.loadCount())

	require.NoError(t, job.HandleInvalidate(ctx, NewDashboardInvalidateTask()))

	require.NoError(t, job.Handle(ctx, task))
	assert.Equal(t, 2, src.loadCount())
}
