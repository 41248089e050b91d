package filters

import "time"

// Period codes shared with the mobile and web clients. Unknown codes resolve
// to the current calendar year rather than failing.
const (
	PeriodCurrentMonth = "current_month"
	PeriodCurrentYear  = "current_year"
	PeriodGeneral      = "general"
	PeriodCustom       = "custom"
	PeriodLastMonth    = "last_month"
	PeriodLast3Months  = "last_3_months"
	PeriodLast6Months  = "last_6_months"
	PeriodLastYear     = "last_year"
	PeriodNextMonth    = "next_month"
	PeriodNext3Months  = "next_3_months"
	PeriodNext6Months  = "next_6_months"
	PeriodNext12Months = "next_12_months"
)

// PeriodLabels lists the selectable periods with their display names, in the
// order the clients render them.
var PeriodLabels = []struct {
	Code  string
	Label string
}{
	{PeriodCurrentMonth, "Mês Atual"},
	{PeriodCurrentYear, "Ano Atual"},
	{PeriodLastMonth, "Mês Passado"},
	{PeriodLast3Months, "Últimos 3 Meses"},
	{PeriodLast6Months, "Últimos 6 Meses"},
	{PeriodLastYear, "Ano Passado"},
	{PeriodNextMonth, "Próximo Mês"},
	{PeriodNext3Months, "Próximos 3 Meses"},
	{PeriodNext6Months, "Próximos 6 Meses"},
	{PeriodNext12Months, "Próximos 12 Meses"},
	{PeriodGeneral, "Todo Período"},
	{PeriodCustom, "Personalizado"},
}

// referenceZone anchors every calendar computation. Resolving the same period
// in mixed timezones produces off-by-one-day ranges at month boundaries, so
// all "today" math happens in the operator's timezone.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// DateRange is an inclusive pair of calendar dates. Start and End carry a
// zero clock in UTC so that day arithmetic is exact regardless of DST.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Strings returns the range as zero-padded ISO dates for query parameters.
func (r DateRange) Strings() (string, string) {
	return r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")
}

// Resolve maps a period code to a concrete date range anchored on now.
// Custom periods use the provided range when both ends are set and fall back
// to the current year otherwise. Resolve never fails: unrecognized codes also
// fall back to the current year.
func Resolve(period string, customStart, customEnd *time.Time, now time.Time) DateRange {
	today := civilDate(now.In(referenceZone))

	switch period {
	case PeriodCurrentMonth:
		return monthRange(today)
	case PeriodCurrentYear:
		return yearRange(today.Year())
	case PeriodGeneral:
		// Wide sentinel meaning "no date filtering".
		return DateRange{Start: date(1900, time.January, 1), End: date(2099, time.December, 31)}
	case PeriodCustom:
		fallback := yearRange(today.Year())
		r := fallback
		if customStart != nil {
			r.Start = civilDate(*customStart)
		}
		if customEnd != nil {
			r.End = civilDate(*customEnd)
		}
		return r
	case PeriodLastMonth:
		return monthRange(addMonths(today, -1))
	case PeriodLast3Months:
		return DateRange{Start: addMonths(today, -3), End: today}
	case PeriodLast6Months:
		return DateRange{Start: addMonths(today, -6), End: today}
	case PeriodLastYear:
		return yearRange(today.Year() - 1)
	case PeriodNextMonth:
		return monthRange(addMonths(today, 1))
	case PeriodNext3Months:
		return DateRange{Start: today, End: addMonths(today, 3)}
	case PeriodNext6Months:
		return DateRange{Start: today, End: addMonths(today, 6)}
	case PeriodNext12Months:
		return DateRange{Start: today, End: addMonths(today, 12)}
	default:
		return yearRange(today.Year())
	}
}

// ParseISODate parses a zero-padded ISO calendar date. The second return
// value is false for malformed input.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return date(y, m, d)
}

func yearRange(year int) DateRange {
	return DateRange{Start: date(year, time.January, 1), End: date(year, time.December, 31)}
}

func monthRange(t time.Time) DateRange {
	y, m, _ := t.Date()
	first := date(y, m, 1)
	return DateRange{Start: first, End: first.AddDate(0, 1, -1)}
}

// addMonths shifts a date by whole months, clamping the day to the target
// month's length the way calendar libraries do (Jan 31 − 1 month = Dec 31,
// Mar 31 − 1 month = Feb 28). time.AddDate would normalize overflow days into
// the following month instead.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := date(y, m, 1).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return date(first.Year(), first.Month(), d)
}
