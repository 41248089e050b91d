package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riohost/riohost/internal/shared"
)

type fakeRepo struct {
	items    map[string]*Cleaning
	cleaners []Cleaner
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Cleaning)}
}

func (f *fakeRepo) ListAssigned(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	var out []Cleaning
	for _, c := range f.items {
		if c.CleanerUserID != "" {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailable(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	var out []Cleaning
	for _, c := range f.items {
		if c.CleanerUserID == "" {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForCleaner(ctx context.Context, cleanerID string, q ListQuery) ([]Cleaning, error) {
	var out []Cleaning
	for _, c := range f.items {
		if c.CleanerUserID == cleanerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCleaners(ctx context.Context, propertyIDs []string) ([]Cleaner, error) {
	return f.cleaners, nil
}

func (f *fakeRepo) Assign(ctx context.Context, reservationID, cleanerID string) error {
	c, ok := f.items[reservationID]
	if !ok {
		return shared.ErrNotFound
	}
	c.CleanerUserID = cleanerID
	if c.Status == "" {
		c.Status = shared.CleaningPending
	}
	return nil
}

func (f *fakeRepo) Unassign(ctx context.Context, reservationID string) error {
	c, ok := f.items[reservationID]
	if !ok {
		return shared.ErrNotFound
	}
	c.CleanerUserID = ""
	c.Status = ""
	return nil
}

func (f *fakeRepo) ToggleStatus(ctx context.Context, reservationID string) (string, error) {
	c, ok := f.items[reservationID]
	if !ok {
		return "", shared.ErrNotFound
	}
	if shared.EqualStatus(c.Status, shared.CleaningDone) {
		c.Status = shared.CleaningPending
	} else {
		c.Status = shared.CleaningDone
	}
	return c.Status, nil
}

func (f *fakeRepo) SetFeedback(ctx context.Context, reservationID string, rating *int, notes string) error {
	c, ok := f.items[reservationID]
	if !ok {
		return shared.ErrNotFound
	}
	c.Rating = rating
	c.Notes = notes
	return nil
}

func TestAssignMovesCleaningOutOfAvailable(t *testing.T) {
	repo := newFakeRepo()
	repo.items["r1"] = &Cleaning{ReservationID: "r1", CheckOutDate: "2025-06-20"}
	svc := NewService(repo)
	ctx := context.Background()

	available, err := svc.ListAvailable(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, available, 1)

	require.NoError(t, svc.Assign(ctx, "r1", "cleaner-1"))

	available, err = svc.ListAvailable(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, available)

	assigned, err := svc.ListAssigned(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "cleaner-1", assigned[0].CleanerUserID)
	assert.Equal(t, shared.CleaningPending, assigned[0].Status)
}

func TestAssignValidatesIDs(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Assign(context.Background(), "", "cleaner-1")
	assert.ErrorIs(t, err, shared.ErrValidation)

	err = svc.Assign(context.Background(), "r1", "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAssignUnknownReservation(t *testing.T) {
	svc := NewService(newFakeRepo())
	err := svc.Assign(context.Background(), "missing", "cleaner-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUnassignClearsCleaner(t *testing.T) {
	repo := newFakeRepo()
	repo.items["r1"] = &Cleaning{ReservationID: "r1", CleanerUserID: "cleaner-1", Status: shared.CleaningPending}
	svc := NewService(repo)

	require.NoError(t, svc.Unassign(context.Background(), "r1"))

	available, err := svc.ListAvailable(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Empty(t, available[0].CleanerUserID)
}

func TestToggleStatusRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	repo.items["r1"] = &Cleaning{ReservationID: "r1", Status: shared.CleaningPending}
	svc := NewService(repo)
	ctx := context.Background()

	status, err := svc.ToggleStatus(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, shared.CleaningDone, status)

	status, err = svc.ToggleStatus(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, shared.CleaningPending, status)
}

func TestScheduleRequiresCleaner(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Schedule(context.Background(), "", ListQuery{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestScheduleFiltersByCleaner(t *testing.T) {
	repo := newFakeRepo()
	repo.items["r1"] = &Cleaning{ReservationID: "r1", CleanerUserID: "cleaner-1"}
	repo.items["r2"] = &Cleaning{ReservationID: "r2", CleanerUserID: "cleaner-2"}
	svc := NewService(repo)

	items, err := svc.Schedule(context.Background(), "cleaner-1", ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "r1", items[0].ReservationID)
}

func TestListQueriesValidateDates(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.ListAssigned(context.Background(), ListQuery{Start: "20/06/2025"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.ListAvailable(context.Background(), ListQuery{End: "not-a-date"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestSetFeedbackValidatesRating(t *testing.T) {
	repo := newFakeRepo()
	repo.items["r1"] = &Cleaning{ReservationID: "r1"}
	svc := NewService(repo)
	ctx := context.Background()

	bad := 6
	err := svc.SetFeedback(ctx, "r1", &bad, "")
	assert.ErrorIs(t, err, shared.ErrValidation)

	good := 5
	require.NoError(t, svc.SetFeedback(ctx, "r1", &good, "impecável"))
	assert.Equal(t, 5, *repo.items["r1"].Rating)
	assert.Equal(t, "impecável", repo.items["r1"].Notes)
}
