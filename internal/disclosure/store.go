// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package disclosure tracks which solution cards are expanded.
package disclosure

// Set is the expansion state of one card list. Membership is keyed by solution
// id, never by position, so reordering a list does not move expansion between
// cards. Expansion is independent per id: any number of cards may be open.
//
// Invariant: every expanded id is an id of the current list.
//
// A Set is owned by a single event loop and is not safe for concurrent use.
type Set struct {
	order    []string
	known    map[string]struct{}
	expanded map[string]struct{}
	seeded   bool
}

// New creates the expansion state for a list. The first id starts expanded,
// all others collapsed; an empty list starts with nothing expanded.
func New(ids []string) *Set {
	s := &Set{
		known:    make(map[string]struct{}),
		expanded: make(map[string]struct{}),
	}
	s.Reconcile(ids)
	return s
}

// IsExpanded reports whether id is expanded.
func (s *Set) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// Toggle flips id between collapsed and expanded and returns the new state.
// Ids that are not part of the current list are ignored.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.known[id]; !ok {
		return false
	}
	if _, ok := s.expanded[id]; ok {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// Reconcile replaces the list. Expanded ids that no longer exist are dropped;
// surviving ids keep their state. The default-open rule applies the first time
// the set sees a non-empty list.
func (s *Set) Reconcile(ids []string) {
	s.order = append(s.order[:0], ids...)
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	s.known = known

	for id := range s.expanded {
		if _, ok := known[id]; !ok {
			delete(s.expanded, id)
		}
	}

	if !s.seeded && len(ids) > 0 {
		s.expanded[ids[0]] = struct{}{}
		s.seeded = true
	}
}

// Expanded returns the expanded ids in list order.
func (s *Set) Expanded() []string {
	out := make([]string, 0, len(s.expanded))
	for _, id := range s.order {
		if _, ok := s.expanded[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of expanded ids.
func (s *Set) Len() int {
	return len(s.expanded)
}
