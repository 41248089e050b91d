package filters

import (
	"sync"
	"time"
)

// State owns the current Selection and notifies subscribers when it changes.
// Every setter is an atomic overwrite; there are no pending states and every
// field combination is valid. Reads and writes are safe across goroutines.
// The stateless HTTP surface builds a Selection per request and does not use
// State; it exists for long-lived sessions (see dashboard.Pipeline).
type State struct {
	mu   sync.RWMutex
	sel  Selection
	subs map[int]func(Selection)
	next int
}

// NewState creates a State holding the default selection.
func NewState() *State {
	return &State{sel: DefaultSelection(), subs: make(map[int]func(Selection))}
}

// Snapshot returns a copy of the current selection.
func (s *State) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.clone()
}

// Subscribe registers a callback invoked after every selection change with a
// snapshot of the new value. The returned function removes the subscription.
func (s *State) Subscribe(fn func(Selection)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetPeriod overwrites the period code.
func (s *State) SetPeriod(code string) {
	s.update(func(sel *Selection) { sel.Period = code })
}

// SetProperties overwrites the property subset. An empty list selects all.
func (s *State) SetProperties(ids []string) {
	copied := make([]string, len(ids))
	copy(copied, ids)
	s.update(func(sel *Selection) {
		if len(copied) == 0 {
			sel.Properties = nil
			return
		}
		sel.Properties = copied
	})
}

// SetPlatform overwrites the platform filter. An empty name selects all.
func (s *State) SetPlatform(name string) {
	s.update(func(sel *Selection) { sel.Platform = name })
}

// SetCustomRange stores an explicit date range and forces the custom period.
// Out-of-order ranges are accepted and propagate downstream unchanged.
func (s *State) SetCustomRange(start, end time.Time) {
	s.update(func(sel *Selection) {
		st, en := start, end
		sel.CustomStart = &st
		sel.CustomEnd = &en
		sel.Period = PeriodCustom
	})
}

// Reset restores the default selection.
func (s *State) Reset() {
	s.update(func(sel *Selection) { *sel = DefaultSelection() })
}

// IsPropertySelected reports whether the property is in the current scope.
func (s *State) IsPropertySelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.IsPropertySelected(id)
}

// PropertyFilter returns the effective property set, nil meaning all.
func (s *State) PropertyFilter() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.PropertyFilter()
}

// PlatformFilter returns the effective platform, "" meaning all.
func (s *State) PlatformFilter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.PlatformFilter()
}

// DateRange resolves the current period against now.
func (s *State) DateRange(now time.Time) DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.DateRange(now)
}

func (s *State) update(mutate func(*Selection)) {
	s.mu.Lock()
	mutate(&s.sel)
	snapshot := s.sel.clone()
	subs := make([]func(Selection), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
