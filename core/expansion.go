package core

import (
	"maps"
	"slices"
)

// ExpansionState tracks which result positions are expanded during a viewing session.
// Keys are positional indices, so results must not be reordered after load.
// It is owned by a single session and is not safe for concurrent writers.
type ExpansionState struct {
	expanded map[int]struct{}
}

// NewExpansionState returns an empty (all-collapsed) state.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(map[int]struct{})}
}

// InitializeAll expands every index in [0, n). Called when a new report loads.
func (s *ExpansionState) InitializeAll(n int) {
	s.ExpandAll(n)
}

// Toggle flips membership of index. Negative indices are ignored.
func (s *ExpansionState) Toggle(index int) {
	if index < 0 {
		return
	}
	if s.expanded == nil {
		s.expanded = make(map[int]struct{})
	}
	if _, ok := s.expanded[index]; ok {
		delete(s.expanded, index)
		return
	}
	s.expanded[index] = struct{}{}
}

// ExpandAll sets the state to the full range [0, n).
func (s *ExpansionState) ExpandAll(n int) {
	s.expanded = make(map[int]struct{}, max(n, 0))
	for i := range max(n, 0) {
		s.expanded[i] = struct{}{}
	}
}

// CollapseAll empties the state.
func (s *ExpansionState) CollapseAll() {
	clear(s.expanded)
}

// IsExpanded reports whether index is expanded.
func (s *ExpansionState) IsExpanded(index int) bool {
	_, ok := s.expanded[index]
	return ok
}

// Len returns the number of expanded indices.
func (s *ExpansionState) Len() int {
	return len(s.expanded)
}

// Indices returns the expanded indices in ascending order.
func (s *ExpansionState) Indices() []int {
	return slices.Sorted(maps.Keys(s.expanded))
}
