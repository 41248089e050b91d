package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/reservations"
)

func TestFilterReservationsByRange(t *testing.T) {
	in := []reservations.Reservation{
		{ID: "inside", CheckInDate: "2025-01-10", CheckOutDate: "2025-01-15"},
		{ID: "straddles-start", CheckInDate: "2024-12-28", CheckOutDate: "2025-01-02"},
		{ID: "straddles-end", CheckInDate: "2025-01-30", CheckOutDate: "2025-02-03"},
		{ID: "touches-start", CheckInDate: "2024-12-20", CheckOutDate: "2025-01-01"},
		{ID: "before", CheckInDate: "2024-11-01", CheckOutDate: "2024-11-10"},
		{ID: "after", CheckInDate: "2025-03-01", CheckOutDate: "2025-03-05"},
		{ID: "dirty", CheckInDate: "not-a-date", CheckOutDate: "2025-01-15"},
	}

	got := FilterReservationsByRange(in, day("2025-01-01"), day("2025-01-31"))

	ids := make([]string, 0, len(got))
	for _, res := range got {
		ids = append(ids, res.ID)
	}
	assert.Equal(t, []string{"inside", "straddles-start", "straddles-end", "touches-start"}, ids)
}

func TestFilterReservationsByProperties(t *testing.T) {
	in := []reservations.Reservation{
		{ID: "a", PropertyID: "p1"},
		{ID: "b", PropertyID: "p2"},
		{ID: "c", PropertyID: "p3"},
	}

	assert.Len(t, FilterReservationsByProperties(in, nil), 3, "nil set means unrestricted")
	assert.Empty(t, FilterReservationsByProperties(in, []string{}))

	got := FilterReservationsByProperties(in, []string{"p1", "p3"})
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterReservationsByPlatform(t *testing.T) {
	in := []reservations.Reservation{
		{ID: "a", Platform: "Airbnb"},
		{ID: "b", Platform: "airbnb"},
		{ID: "c", Platform: "Booking.com"},
	}

	assert.Len(t, FilterReservationsByPlatform(in, ""), 3)

	got := FilterReservationsByPlatform(in, "Airbnb")
	assert.Len(t, got, 2, "platform match is case-insensitive")
}

func TestFilterExpensesByRange(t *testing.T) {
	in := []expenses.Expense{
		{ID: "inside", ExpenseDate: "2025-01-15"},
		{ID: "on-start", ExpenseDate: "2025-01-01"},
		{ID: "on-end", ExpenseDate: "2025-01-31"},
		{ID: "before", ExpenseDate: "2024-12-31"},
		{ID: "dirty", ExpenseDate: "15/01/2025"},
	}

	got := FilterExpensesByRange(in, day("2025-01-01"), day("2025-01-31"))
	assert.Len(t, got, 3)
}

func TestFilterExpensesByProperties(t *testing.T) {
	in := []expenses.Expense{
		{ID: "a", PropertyID: "p1"},
		{ID: "b", PropertyID: ""},
	}

	assert.Len(t, FilterExpensesByProperties(in, nil), 2)

	got := FilterExpensesByProperties(in, []string{"p1"})
	assert.Len(t, got, 1, "unattributed expenses drop out under an explicit set")
	assert.Equal(t, "a", got[0].ID)
}
