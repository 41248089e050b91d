package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDefaults(t *testing.T) {
	s := NewState()
	sel := s.Snapshot()
	assert.Equal(t, PeriodCurrentYear, sel.Period)
	assert.Nil(t, s.PropertyFilter())
	assert.Equal(t, "", s.PlatformFilter())
}

func TestPropertyFilterRoundTrip(t *testing.T) {
	s := NewState()
	ids := []string{"b7e2", "a1c9"}
	s.SetProperties(ids)

	got := s.PropertyFilter()
	require.NotNil(t, got)
	assert.ElementsMatch(t, ids, got)

	s.SetProperties(nil)
	assert.Nil(t, s.PropertyFilter())
}

func TestIsPropertySelected(t *testing.T) {
	s := NewState()
	assert.True(t, s.IsPropertySelected("anything"), "all-properties scope selects every id")

	s.SetProperties([]string{"a1c9"})
	assert.True(t, s.IsPropertySelected("a1c9"))
	assert.False(t, s.IsPropertySelected("b7e2"))
}

func TestPlatformFilter(t *testing.T) {
	s := NewState()
	s.SetPlatform("Airbnb")
	assert.Equal(t, "Airbnb", s.PlatformFilter())

	s.SetPlatform("")
	assert.Equal(t, "", s.PlatformFilter())
}

func TestSetCustomRangeForcesCustomPeriod(t *testing.T) {
	s := NewState()
	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	s.SetCustomRange(start, end)

	sel := s.Snapshot()
	assert.Equal(t, PeriodCustom, sel.Period)
	gotStart, gotEnd := sel.DateRange(fixedNow()).Strings()
	assert.Equal(t, "2025-02-01", gotStart)
	assert.Equal(t, "2025-02-10", gotEnd)
}

func TestReset(t *testing.T) {
	s := NewState()
	s.SetProperties([]string{"a1c9"})
	s.SetPlatform("Booking.com")
	s.SetCustomRange(time.Now(), time.Now())

	s.Reset()
	sel := s.Snapshot()
	assert.Equal(t, PeriodCurrentYear, sel.Period)
	assert.Nil(t, sel.PropertyFilter())
	assert.Equal(t, "", sel.Platform)
	assert.Nil(t, sel.CustomStart)
	assert.Nil(t, sel.CustomEnd)
}

func TestSubscribeNotifiesOnEveryChange(t *testing.T) {
	s := NewState()
	var seen []Selection
	unsubscribe := s.Subscribe(func(sel Selection) { seen = append(seen, sel) })

	s.SetPeriod(PeriodLastMonth)
	s.SetPlatform("Airbnb")
	require.Len(t, seen, 2)
	assert.Equal(t, PeriodLastMonth, seen[0].Period)
	assert.Equal(t, "Airbnb", seen[1].Platform)

	unsubscribe()
	s.SetPeriod(PeriodCurrentMonth)
	assert.Len(t, seen, 2)
}

func TestSnapshotIsIsolatedFromLaterMutation(t *testing.T) {
	s := NewState()
	s.SetProperties([]string{"a1c9"})
	snap := s.Snapshot()

	s.SetProperties([]string{"b7e2", "c3d4"})
	assert.Equal(t, []string{"a1c9"}, snap.Properties)
}

func TestSelectionKeyStableAcrossPropertyOrder(t *testing.T) {
	a := Selection{Period: PeriodCurrentYear, Properties: []string{"x", "y"}, Platform: "Airbnb"}
	b := Selection{Period: PeriodCurrentYear, Properties: []string{"y", "x"}, Platform: "Airbnb"}
	assert.Equal(t, a.Key(fixedNow()), b.Key(fixedNow()))

	c := Selection{Period: PeriodCurrentYear, Properties: []string{"x"}, Platform: "Airbnb"}
	assert.NotEqual(t, a.Key(fixedNow()), c.Key(fixedNow()))
}
