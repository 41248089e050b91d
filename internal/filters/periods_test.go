package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is 2025-06-15 12:00 in the reference timezone.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, referenceZone)
}

func isoRange(t *testing.T, r DateRange) (string, string) {
	t.Helper()
	start, end := r.Strings()
	return start, end
}

func TestResolveNamedPeriods(t *testing.T) {
	cases := []struct {
		period string
		start  string
		end    string
	}{
		{PeriodCurrentMonth, "2025-06-01", "2025-06-30"},
		{PeriodCurrentYear, "2025-01-01", "2025-12-31"},
		{PeriodGeneral, "1900-01-01", "2099-12-31"},
		{PeriodLastMonth, "2025-05-01", "2025-05-31"},
		{PeriodLast3Months, "2025-03-15", "2025-06-15"},
		{PeriodLast6Months, "2024-12-15", "2025-06-15"},
		{PeriodLastYear, "2024-01-01", "2024-12-31"},
		{PeriodNextMonth, "2025-07-01", "2025-07-31"},
		{PeriodNext3Months, "2025-06-15", "2025-09-15"},
		{PeriodNext6Months, "2025-06-15", "2025-12-15"},
		{PeriodNext12Months, "2025-06-15", "2026-06-15"},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			start, end := isoRange(t, Resolve(tc.period, nil, nil, fixedNow()))
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestResolveStartNeverAfterEnd(t *testing.T) {
	codes := []string{
		PeriodCurrentMonth, PeriodCurrentYear, PeriodGeneral, PeriodCustom,
		PeriodLastMonth, PeriodLast3Months, PeriodLast6Months, PeriodLastYear,
		PeriodNextMonth, PeriodNext3Months, PeriodNext6Months, PeriodNext12Months,
	}
	for _, code := range codes {
		r := Resolve(code, nil, nil, fixedNow())
		assert.False(t, r.Start.After(r.End), "period %s resolved to reversed range", code)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first := Resolve(PeriodLast6Months, nil, nil, fixedNow())
	second := Resolve(PeriodLast6Months, nil, nil, fixedNow())
	assert.Equal(t, first, second)
}

func TestResolveCustomFallsBackToCurrentYear(t *testing.T) {
	start, end := isoRange(t, Resolve(PeriodCustom, nil, nil, fixedNow()))
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-12-31", end)
}

func TestResolveCustomUsesProvidedRange(t *testing.T) {
	cs := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	ce := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)
	start, end := isoRange(t, Resolve(PeriodCustom, &cs, &ce, fixedNow()))
	assert.Equal(t, "2025-02-03", start)
	assert.Equal(t, "2025-04-07", end)
}

func TestResolveUnknownCodeFallsBackToCurrentYear(t *testing.T) {
	start, end := isoRange(t, Resolve("quarter_to_date", nil, nil, fixedNow()))
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-12-31", end)
}

func TestResolveClampsMonthArithmetic(t *testing.T) {
	// Shifting back from a month-end must clamp, not spill into the next month.
	now := time.Date(2025, time.March, 31, 10, 0, 0, 0, referenceZone)
	start, end := isoRange(t, Resolve(PeriodLast3Months, nil, nil, now))
	assert.Equal(t, "2024-12-31", start)
	assert.Equal(t, "2025-03-31", end)

	now = time.Date(2025, time.May, 31, 10, 0, 0, 0, referenceZone)
	start, _ = isoRange(t, Resolve(PeriodLast3Months, nil, nil, now))
	assert.Equal(t, "2025-02-28", start)
}

func TestResolveAnchorsTodayInReferenceZone(t *testing.T) {
	// 01:00 UTC on July 1st is still June 30th in São Paulo; the current month
	// must therefore resolve to June.
	now := time.Date(2025, time.July, 1, 1, 0, 0, 0, time.UTC)
	start, end := isoRange(t, Resolve(PeriodCurrentMonth, nil, nil, now))
	require.Equal(t, "2025-06-01", start)
	require.Equal(t, "2025-06-30", end)
}

func TestParseISODate(t *testing.T) {
	d, ok := ParseISODate("2025-01-31")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseISODate("31/01/2025")
	assert.False(t, ok)
	_, ok = ParseISODate("")
	assert.False(t, ok)
}
