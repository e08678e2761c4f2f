package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func carets(s *Set) []ByteOffset {
	out := make([]ByteOffset, 0, s.Len())
	for _, u := range s.Units() {
		out = append(out, u.CaretOffset(res))
	}
	return out
}

func TestSetRemoveDuplicatesKeepsFirst(t *testing.T) {
	first := NewRangeUnit(Range{Start: 0, End: 5}, false, 0, res)
	s := NewSet(first, NewCaretUnit(9, 0, res), NewCaretUnit(5, 0, res), NewCaretUnit(9, 0, res))

	require.True(t, s.RemoveDuplicates(res))
	assert.Equal(t, []ByteOffset{5, 9}, carets(s))
	assert.Same(t, first, s.First(), "the first unit of a duplicate group survives")

	assert.False(t, s.RemoveDuplicates(res), "second pass removes nothing")
}

func TestSetSortedByCaretDoesNotReorder(t *testing.T) {
	s := NewSet(NewCaretUnit(30, 0, res), NewCaretUnit(10, 0, res), NewCaretUnit(20, 0, res))

	asc := s.SortedByCaret(res, false)
	desc := s.SortedByCaret(res, true)

	assert.Equal(t, ByteOffset(10), asc[0].CaretOffset(res))
	assert.Equal(t, ByteOffset(30), desc[0].CaretOffset(res))
	assert.Equal(t, []ByteOffset{30, 10, 20}, carets(s), "insertion order is preserved")
}

func TestSetCombineOverlapping(t *testing.T) {
	a := NewRangeUnit(Range{Start: 0, End: 6}, false, 0, res)
	b := NewRangeUnit(Range{Start: 4, End: 10}, false, 0, res)
	c := NewRangeUnit(Range{Start: 20, End: 25}, false, 0, res)
	s := NewSet(c, a, b)

	s.CombineOverlapping(res)

	require.Equal(t, 2, s.Len())
	span, ok := s.At(1).Span(res)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 0, End: 10}, span)
	assert.Equal(t, ByteOffset(10), s.At(1).CaretOffset(res))
	assert.Same(t, c, s.At(0))
}

func TestSetCombineOverlappingReversedTransfersCaret(t *testing.T) {
	a := NewRangeUnit(Range{Start: 0, End: 6}, true, 0, res)
	b := NewRangeUnit(Range{Start: 4, End: 10}, false, 0, res)
	s := NewSet(a, b)

	s.CombineOverlapping(res)

	require.Equal(t, 1, s.Len())
	st := s.First().State(res)
	assert.Equal(t, "<0,10]", st.String())
}

func TestSetCombineOverlappingContained(t *testing.T) {
	outer := NewRangeUnit(Range{Start: 0, End: 20}, true, 0, res)
	inner := NewRangeUnit(Range{Start: 5, End: 8}, false, 0, res)
	s := NewSet(outer, inner)

	s.CombineOverlapping(res)

	require.Equal(t, 1, s.Len())
	span, _ := s.First().Span(res)
	assert.Equal(t, Range{Start: 0, End: 20}, span, "merge keeps the union")
	assert.Equal(t, ByteOffset(0), s.First().CaretOffset(res))
}

func TestSetClear(t *testing.T) {
	s := NewSet(NewCaretUnit(1, 0, res))
	s.HasWrapped = true
	s.SearchText = "foo"

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.False(t, s.HasWrapped)
	assert.Equal(t, "foo", s.SearchText, "search text survives a clear")
}

// ===========================================================================
// Property-Based Tests (using pgregory.net/rapid)
// ===========================================================================

func drawSet(rt *rapid.T) *Set {
	n := rapid.IntRange(0, 12).Draw(rt, "n")
	s := NewSet()
	for i := 0; i < n; i++ {
		start := ByteOffset(rapid.IntRange(0, 60).Draw(rt, "start"))
		if rapid.Bool().Draw(rt, "ranged") {
			length := ByteOffset(rapid.IntRange(1, 10).Draw(rt, "len"))
			s.Add(NewRangeUnit(Range{Start: start, End: start + length}, rapid.Bool().Draw(rt, "rev"), 0, res))
		} else {
			s.Add(NewCaretUnit(start, 0, res))
		}
	}
	return s
}

func TestProperty_RemoveDuplicatesIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := drawSet(rt)

		s.RemoveDuplicates(res)
		once := s.States(res)
		s.RemoveDuplicates(res)

		require.Equal(rt, once, s.States(res))

		seen := map[ByteOffset]bool{}
		for _, c := range carets(s) {
			require.False(rt, seen[c], "duplicate caret %d survived", c)
			seen[c] = true
		}
	})
}

func TestProperty_CombineOverlappingLeavesDisjointRanges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := drawSet(rt)

		s.CombineOverlapping(res)
		merged := s.States(res)

		var spans []Range
		for _, u := range s.Units() {
			if span, ok := u.Span(res); ok {
				for _, other := range spans {
					require.False(rt, span.Overlaps(other), "%v overlaps %v", span, other)
				}
				spans = append(spans, span)
			}
		}

		// Already disjoint: a second pass is a no-op.
		s.CombineOverlapping(res)
		require.Equal(rt, merged, s.States(res))
	})
}
