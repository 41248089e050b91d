package dashboard

import (
	"time"

	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/internal/shared"
)

// PaymentStatusCounts buckets reservations by payment state.
type PaymentStatusCounts struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}

// KPISummary contains the indicators surfaced on the dashboard. It is a value
// object: recomputed wholesale on every aggregation run, never mutated.
type KPISummary struct {
	TotalRevenue        float64             `json:"total_revenue"`
	NetRevenue          float64             `json:"net_revenue"`
	TotalCommission     float64             `json:"total_commission"`
	TotalExpenses       float64             `json:"total_expenses"`
	NetProfit           float64             `json:"net_profit"`
	OccupancyRate       float64             `json:"occupancy_rate"`
	ActiveProperties    int                 `json:"active_properties"`
	TotalReservations   int                 `json:"total_reservations"`
	RevenueByPlatform   map[string]float64  `json:"revenue_by_platform"`
	PaymentStatusCounts PaymentStatusCounts `json:"payment_status_counts"`
}

// Aggregate folds already-fetched records into a KPISummary. Pure and
// deterministic: no I/O, no clock, no hidden state. Dirty rows never abort
// the run; missing amounts count as zero and unparseable stay dates are
// skipped.
func Aggregate(resList []reservations.Reservation, expList []expenses.Expense, propList []properties.Property, rangeStart, rangeEnd time.Time) KPISummary {
	summary := KPISummary{
		RevenueByPlatform: make(map[string]float64),
		TotalReservations: len(resList),
	}

	for _, res := range resList {
		summary.TotalRevenue += deref(res.TotalRevenue)
		summary.NetRevenue += deref(res.NetRevenue)
		summary.TotalCommission += deref(res.CommissionAmount)

		platform := res.Platform
		if platform == "" {
			platform = shared.PlatformDirect
		}
		summary.RevenueByPlatform[platform] += deref(res.TotalRevenue)

		switch {
		case shared.EqualStatus(res.PaymentStatus, shared.PaymentPaid):
			summary.PaymentStatusCounts.Paid++
		case shared.EqualStatus(res.PaymentStatus, shared.PaymentPending):
			summary.PaymentStatusCounts.Pending++
		case shared.EqualStatus(res.PaymentStatus, shared.PaymentOverdue):
			summary.PaymentStatusCounts.Overdue++
		}
	}

	for _, e := range expList {
		summary.TotalExpenses += deref(e.Amount)
	}
	summary.NetProfit = summary.NetRevenue - summary.TotalExpenses

	for _, p := range propList {
		if shared.IsActiveProperty(p.Status) {
			summary.ActiveProperties++
		}
	}

	summary.OccupancyRate = occupancyRate(resList, rangeStart, rangeEnd, summary.ActiveProperties)
	return summary
}

// occupancyRate relates booked nights to available nights:
// sum of stay ∩ [start, end) over periodDays × activeProperties, as a
// percentage. The result is not clamped to 100 so double-booked properties
// or an undercounted active set stay visible.
func occupancyRate(resList []reservations.Reservation, rangeStart, rangeEnd time.Time, activeProperties int) float64 {
	periodDays := wholeDays(rangeStart, rangeEnd)
	if periodDays <= 0 || activeProperties <= 0 {
		return 0
	}

	bookedDays := 0
	for _, res := range resList {
		checkIn, ok := filters.ParseISODate(res.CheckInDate)
		if !ok {
			continue
		}
		checkOut, ok := filters.ParseISODate(res.CheckOutDate)
		if !ok {
			continue
		}
		overlapStart := maxTime(checkIn, rangeStart)
		overlapEnd := minTime(checkOut, rangeEnd)
		if d := wholeDays(overlapStart, overlapEnd); d > 0 {
			bookedDays += d
		}
	}

	return float64(bookedDays) / float64(periodDays*activeProperties) * 100
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
