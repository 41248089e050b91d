package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
)

func day(iso string) time.Time {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return t
}

func f(v float64) *float64 { return &v }

func TestAggregateEmptyInputs(t *testing.T) {
	got := Aggregate(nil, nil, nil, day("2025-01-01"), day("2025-02-01"))

	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.NetRevenue)
	assert.Zero(t, got.TotalExpenses)
	assert.Zero(t, got.NetProfit)
	assert.Zero(t, got.OccupancyRate)
	assert.Zero(t, got.ActiveProperties)
	assert.Zero(t, got.TotalReservations)
	assert.Empty(t, got.RevenueByPlatform)
	assert.Zero(t, got.PaymentStatusCounts.Paid)
}

func TestAggregateRevenueAndProfit(t *testing.T) {
	resList := []reservations.Reservation{
		{TotalRevenue: f(300), NetRevenue: f(240), CommissionAmount: f(60), Platform: "Airbnb", PaymentStatus: "Pago"},
		{TotalRevenue: f(50), NetRevenue: f(40), CommissionAmount: f(10), PaymentStatus: "Pendente"},
		{PaymentStatus: "Atrasado"}, // nil amounts count as zero
	}
	expList := []expenses.Expense{
		{Amount: f(120.50)},
		{Amount: nil},
	}

	got := Aggregate(resList, expList, nil, day("2025-01-01"), day("2025-02-01"))

	assert.InDelta(t, 350, got.TotalRevenue, 1e-9)
	assert.InDelta(t, 280, got.NetRevenue, 1e-9)
	assert.InDelta(t, 70, got.TotalCommission, 1e-9)
	assert.InDelta(t, 120.50, got.TotalExpenses, 1e-9)
	assert.InDelta(t, 280-120.50, got.NetProfit, 1e-9)
	assert.Equal(t, 3, got.TotalReservations)

	// Missing platform falls back to the direct channel.
	assert.InDelta(t, 300, got.RevenueByPlatform["Airbnb"], 1e-9)
	assert.InDelta(t, 50, got.RevenueByPlatform["Direto"], 1e-9)

	assert.Equal(t, PaymentStatusCounts{Paid: 1, Pending: 1, Overdue: 1}, got.PaymentStatusCounts)
}

func TestAggregatePaymentStatusCaseInsensitive(t *testing.T) {
	resList := []reservations.Reservation{
		{PaymentStatus: "pago"},
		{PaymentStatus: "PENDENTE"},
		{PaymentStatus: "atrasado"},
		{PaymentStatus: "algo estranho"},
	}

	got := Aggregate(resList, nil, nil, day("2025-01-01"), day("2025-02-01"))

	assert.Equal(t, PaymentStatusCounts{Paid: 1, Pending: 1, Overdue: 1}, got.PaymentStatusCounts)
	assert.Equal(t, 4, got.TotalReservations)
}

func TestAggregateActiveProperties(t *testing.T) {
	propList := []properties.Property{
		{Status: "Ativo"},
		{Status: "active"}, // legacy rows kept the English spelling
		{Status: "Inativo"},
		{Status: "Manutenção"},
	}

	got := Aggregate(nil, nil, propList, day("2025-01-01"), day("2025-02-01"))
	assert.Equal(t, 2, got.ActiveProperties)
}

func TestOccupancySingleStay(t *testing.T) {
	// One active property, January 1-31 (30 whole days), one 5-night stay.
	resList := []reservations.Reservation{
		{CheckInDate: "2025-01-10", CheckOutDate: "2025-01-15"},
	}
	propList := []properties.Property{{Status: "Ativo"}}

	got := Aggregate(resList, nil, propList, day("2025-01-01"), day("2025-01-31"))
	assert.InDelta(t, 5.0/30.0*100, got.OccupancyRate, 1e-9)
}

func TestOccupancyClipsStaysToRange(t *testing.T) {
	propList := []properties.Property{{Status: "Ativo"}}
	resList := []reservations.Reservation{
		// Starts before the window: only Jan 1-3 counts (2 nights).
		{CheckInDate: "2024-12-28", CheckOutDate: "2025-01-03"},
		// Ends after the window: only Jan 30-31 counts (1 night).
		{CheckInDate: "2025-01-30", CheckOutDate: "2025-02-05"},
		// Entirely outside: contributes nothing.
		{CheckInDate: "2025-03-01", CheckOutDate: "2025-03-05"},
	}

	got := Aggregate(resList, nil, propList, day("2025-01-01"), day("2025-01-31"))
	assert.InDelta(t, 3.0/30.0*100, got.OccupancyRate, 1e-9)
}

func TestOccupancySkipsUnparseableDates(t *testing.T) {
	propList := []properties.Property{{Status: "Ativo"}}
	resList := []reservations.Reservation{
		{CheckInDate: "2025-01-10", CheckOutDate: "2025-01-15"},
		{CheckInDate: "", CheckOutDate: "2025-01-20"},
		{CheckInDate: "10/01/2025", CheckOutDate: "15/01/2025"},
	}

	got := Aggregate(resList, nil, propList, day("2025-01-01"), day("2025-01-31"))
	assert.InDelta(t, 5.0/30.0*100, got.OccupancyRate, 1e-9)
}

func TestOccupancyZeroGuards(t *testing.T) {
	resList := []reservations.Reservation{
		{CheckInDate: "2025-01-10", CheckOutDate: "2025-01-15"},
	}

	// No active properties: rate stays zero rather than dividing by zero.
	got := Aggregate(resList, nil, nil, day("2025-01-01"), day("2025-02-01"))
	assert.Zero(t, got.OccupancyRate)

	// Degenerate window: same guard.
	propList := []properties.Property{{Status: "Ativo"}}
	got = Aggregate(resList, nil, propList, day("2025-01-10"), day("2025-01-10"))
	assert.Zero(t, got.OccupancyRate)
}

func TestOccupancyNotClampedAbove100(t *testing.T) {
	// Two overlapping month-long stays on a single property: the overbooking
	// must show through instead of being masked at 100%.
	propList := []properties.Property{{Status: "Ativo"}}
	resList := []reservations.Reservation{
		{CheckInDate: "2025-01-01", CheckOutDate: "2025-01-31"},
		{CheckInDate: "2025-01-01", CheckOutDate: "2025-01-31"},
	}

	got := Aggregate(resList, nil, propList, day("2025-01-01"), day("2025-01-31"))
	assert.InDelta(t, 200, got.OccupancyRate, 1e-9)
}

func TestAggregateIsDeterministic(t *testing.T) {
	resList := []reservations.Reservation{
		{TotalRevenue: f(300), Platform: "Airbnb", PaymentStatus: "Pago", CheckInDate: "2025-01-10", CheckOutDate: "2025-01-15"},
		{TotalRevenue: f(50), PaymentStatus: "Pendente"},
	}
	expList := []expenses.Expense{{Amount: f(75)}}
	propList := []properties.Property{{Status: "Ativo"}, {Status: "Inativo"}}

	first := Aggregate(resList, expList, propList, day("2025-01-01"), day("2025-02-01"))
	second := Aggregate(resList, expList, propList, day("2025-01-01"), day("2025-02-01"))
	require.Equal(t, first, second)
}
