package filters

import (
	"sort"
	"strings"
	"time"
)

// Selection captures the reporting scope a user has chosen: a period code,
// a property subset, a platform and an optional explicit date range.
// A nil/empty property list and an empty platform mean "all"; the sentinel
// tokens used upstream never leak into this type.
type Selection struct {
	Period      string
	Properties  []string
	Platform    string
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// DefaultSelection is the scope applied at session start and after a reset:
// all properties, all platforms, current calendar year.
func DefaultSelection() Selection {
	return Selection{Period: PeriodCurrentYear}
}

// PropertyFilter returns the explicit property set, or nil when every
// property is in scope. Nil tells data access to skip the property predicate.
func (s Selection) PropertyFilter() []string {
	if len(s.Properties) == 0 {
		return nil
	}
	out := make([]string, len(s.Properties))
	copy(out, s.Properties)
	return out
}

// PlatformFilter returns the selected platform, or "" when unrestricted.
func (s Selection) PlatformFilter() string {
	return s.Platform
}

// IsPropertySelected reports whether a property falls inside the selection.
func (s Selection) IsPropertySelected(id string) bool {
	if len(s.Properties) == 0 {
		return true
	}
	for _, p := range s.Properties {
		if p == id {
			return true
		}
	}
	return false
}

// DateRange resolves the selection's period against now.
func (s Selection) DateRange(now time.Time) DateRange {
	return Resolve(s.Period, s.CustomStart, s.CustomEnd, now)
}

// Key produces a stable token identifying the selection. It doubles as the
// cache key suffix and as the tag used to discard stale in-flight loads.
func (s Selection) Key(now time.Time) string {
	start, end := s.DateRange(now).Strings()
	props := "-"
	if ids := s.PropertyFilter(); ids != nil {
		sort.Strings(ids)
		props = strings.Join(ids, ",")
	}
	platform := s.Platform
	if platform == "" {
		platform = "-"
	}
	return strings.Join([]string{start, end, props, platform}, ":")
}

func (s Selection) clone() Selection {
	out := s
	if s.Properties != nil {
		out.Properties = make([]string, len(s.Properties))
		copy(out.Properties, s.Properties)
	}
	if s.CustomStart != nil {
		v := *s.CustomStart
		out.CustomStart = &v
	}
	if s.CustomEnd != nil {
		v := *s.CustomEnd
		out.CustomEnd = &v
	}
	return out
}
