package cursor

import (
	"slices"
	"sort"
)

// Set is the ordered collection of simulated cursors of one view.
type Set struct {
	units []*Unit

	// SearchText is the text of the most recently added selection; occurrence
	// searches look for it.
	SearchText string

	// HasWrapped is set once an occurrence search has looped past the
	// document boundary.
	HasWrapped bool
}

// NewSet creates a set holding units in the given order.
func NewSet(units ...*Unit) *Set {
	return &Set{units: units}
}

// Len returns the number of units.
func (s *Set) Len() int {
	return len(s.units)
}

// IsEmpty reports whether the set is in single-cursor mode.
func (s *Set) IsEmpty() bool {
	return len(s.units) == 0
}

// Units returns the units in insertion order. The returned slice is a copy;
// the units themselves are shared.
func (s *Set) Units() []*Unit {
	return slices.Clone(s.units)
}

// At returns the unit at index i.
func (s *Set) At(i int) *Unit {
	return s.units[i]
}

// First returns the oldest unit, or nil.
func (s *Set) First() *Unit {
	if len(s.units) == 0 {
		return nil
	}
	return s.units[0]
}

// Last returns the most recently appended unit, or nil.
func (s *Set) Last() *Unit {
	if len(s.units) == 0 {
		return nil
	}
	return s.units[len(s.units)-1]
}

// Add appends u.
func (s *Set) Add(u *Unit) {
	s.units = append(s.units, u)
}

// RemoveAt deletes the unit at index i, keeping the order of the rest.
func (s *Set) RemoveAt(i int) {
	s.units = slices.Delete(s.units, i, i+1)
}

// Replace swaps in a new list of units, keeping search state.
func (s *Set) Replace(units []*Unit) {
	s.units = units
}

// Clear removes every unit and resets the wrap flag.
func (s *Set) Clear() {
	s.units = nil
	s.HasWrapped = false
}

// HasCaretAt reports whether any unit's caret resolves to offset.
func (s *Set) HasCaretAt(offset ByteOffset, r Resolver) bool {
	for _, u := range s.units {
		if u.CaretOffset(r) == offset {
			return true
		}
	}
	return false
}

// AnyOverlaps reports whether span intersects any unit.
func (s *Set) AnyOverlaps(span Range, r Resolver) bool {
	for _, u := range s.units {
		if u.OverlapsWith(span, r) {
			return true
		}
	}
	return false
}

// AllSelections reports whether every unit carries a range.
func (s *Set) AllSelections() bool {
	for _, u := range s.units {
		if !u.IsSelection() {
			return false
		}
	}
	return true
}

// ClearRanges turns every unit into a pure caret.
func (s *Set) ClearRanges() {
	for _, u := range s.units {
		u.ClearRange()
	}
}

// ClearCopiedText drops every unit's held clipboard text.
func (s *Set) ClearCopiedText() {
	for _, u := range s.units {
		u.CopiedText = ""
	}
}

// SortedByCaret returns the units ordered by caret offset, ascending or
// descending. Units with equal carets keep their insertion order. The set
// itself is not reordered.
func (s *Set) SortedByCaret(r Resolver, descending bool) []*Unit {
	sorted := slices.Clone(s.units)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CaretOffset(r), sorted[j].CaretOffset(r)
		if descending {
			return a > b
		}
		return a < b
	})
	return sorted
}

// RemoveDuplicates keeps only the first unit for each caret offset.
// It returns true if any unit was removed.
func (s *Set) RemoveDuplicates(r Resolver) bool {
	seen := make(map[ByteOffset]struct{}, len(s.units))
	kept := s.units[:0:0]
	for _, u := range s.units {
		off := u.CaretOffset(r)
		if _, dup := seen[off]; dup {
			continue
		}
		seen[off] = struct{}{}
		kept = append(kept, u)
	}
	if len(kept) == len(s.units) {
		return false
	}
	s.units = kept
	return true
}

// CombineOverlapping merges ranged units whose ranges overlap.
//
// Ranged units are visited in position order. When a unit's range runs into
// the next one, the next unit absorbs it: its range widens to cover both
// and, if the absorbed unit was reversed, it takes over that unit's caret.
// Absorbed units are removed in descending index order.
func (s *Set) CombineOverlapping(r Resolver) {
	type indexed struct {
		index int
		unit  *Unit
	}

	var ranged []indexed
	for i, u := range s.units {
		if u.IsSelection() {
			ranged = append(ranged, indexed{index: i, unit: u})
		}
	}
	// Start order equals caret order for disjoint ranges and also catches
	// ranges nested inside a wider one.
	sort.SliceStable(ranged, func(i, j int) bool {
		a, _ := ranged[i].unit.Span(r)
		b, _ := ranged[j].unit.Span(r)
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return ranged[i].unit.CaretOffset(r) < ranged[j].unit.CaretOffset(r)
	})

	var absorbed []int
	for i := 0; i+1 < len(ranged); i++ {
		cur, next := ranged[i].unit, ranged[i+1].unit
		curSpan, _ := cur.Span(r)
		nextSpan, _ := next.Span(r)

		if curSpan.End <= nextSpan.Start {
			continue
		}

		caretAtEnd := !next.IsReversed(r)
		merged := curSpan.Union(nextSpan)
		next.setSpan(merged, r)
		if caretAtEnd && merged.End != nextSpan.End {
			next.Caret = *next.End
		}
		if cur.IsReversed(r) {
			next.Caret = cur.Caret
		}
		absorbed = append(absorbed, ranged[i].index)
	}

	slices.Sort(absorbed)
	for i := len(absorbed) - 1; i >= 0; i-- {
		s.RemoveAt(absorbed[i])
	}
}

// States returns resolved copies of all units in insertion order.
func (s *Set) States(r Resolver) []State {
	states := make([]State, len(s.units))
	for i, u := range s.units {
		states[i] = u.State(r)
	}
	return states
}

// Restore replaces the units with ones rebuilt from states.
func (s *Set) Restore(states []State, r Resolver) {
	units := make([]*Unit, len(states))
	for i, st := range states {
		units[i] = st.Unit(r)
	}
	s.units = units
}
