package dashboard

import (
	"time"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/internal/shared"
)

// Fallback predicates for when a filter cannot be pushed down to the store.
// They parse dates before comparing; mixing parsed and lexicographic
// comparison across call sites is the defect class these helpers exist to
// prevent.

// FilterReservationsByRange keeps reservations whose stay overlaps
// [start, end]: checkOut >= start AND checkIn <= end. Rows with unparseable
// dates are dropped from the scope.
func FilterReservationsByRange(in []reservations.Reservation, start, end time.Time) []reservations.Reservation {
	out := make([]reservations.Reservation, 0, len(in))
	for _, res := range in {
		checkIn, ok := filters.ParseISODate(res.CheckInDate)
		if !ok {
			continue
		}
		checkOut, ok := filters.ParseISODate(res.CheckOutDate)
		if !ok {
			continue
		}
		if !checkOut.Before(start) && !checkIn.After(end) {
			out = append(out, res)
		}
	}
	return out
}

// FilterReservationsByProperties keeps reservations whose property is in the
// effective set. A nil set means unrestricted.
func FilterReservationsByProperties(in []reservations.Reservation, propertyIDs []string) []reservations.Reservation {
	if propertyIDs == nil {
		return in
	}
	allowed := make(map[string]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		allowed[id] = struct{}{}
	}
	out := make([]reservations.Reservation, 0, len(in))
	for _, res := range in {
		if _, ok := allowed[res.PropertyID]; ok {
			out = append(out, res)
		}
	}
	return out
}

// FilterReservationsByPlatform keeps reservations on the given platform.
// An empty platform means unrestricted.
func FilterReservationsByPlatform(in []reservations.Reservation, platform string) []reservations.Reservation {
	if platform == "" {
		return in
	}
	out := make([]reservations.Reservation, 0, len(in))
	for _, res := range in {
		if shared.EqualStatus(res.Platform, platform) {
			out = append(out, res)
		}
	}
	return out
}

// FilterExpensesByRange keeps expenses dated inside [start, end].
func FilterExpensesByRange(in []expenses.Expense, start, end time.Time) []expenses.Expense {
	out := make([]expenses.Expense, 0, len(in))
	for _, e := range in {
		d, ok := filters.ParseISODate(e.ExpenseDate)
		if !ok {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// FilterExpensesByProperties keeps expenses tied to the effective property
// set. A nil set means unrestricted; expenses without a property are dropped
// when an explicit set is active.
func FilterExpensesByProperties(in []expenses.Expense, propertyIDs []string) []expenses.Expense {
	if propertyIDs == nil {
		return in
	}
	allowed := make(map[string]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		allowed[id] = struct{}{}
	}
	out := make([]expenses.Expense, 0, len(in))
	for _, e := range in {
		if _, ok := allowed[e.PropertyID]; ok {
			out = append(out, e)
		}
	}
	return out
}
