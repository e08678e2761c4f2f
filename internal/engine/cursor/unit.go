package cursor

import (
	"fmt"

	"github.com/dshills/multicursor/internal/engine/tracking"
)

// Resolver converts between tracked positions and offsets in the current
// buffer revision.
type Resolver interface {
	// Resolve returns the current offset of a tracked position.
	Resolve(pos tracking.Position) ByteOffset
	// Track creates a position for an offset in the current revision.
	Track(offset ByteOffset) tracking.Position
}

// LineSource gives the line structure of the current buffer revision.
type LineSource interface {
	// LineOf returns the line containing offset.
	LineOf(offset ByteOffset) uint32
	// LineRange returns the byte range of a line, excluding its line break.
	LineRange(line uint32) Range
	// Text returns the text in r.
	Text(r Range) string
}

// Unit is one simulated cursor, optionally carrying a selected range.
type Unit struct {
	Caret tracking.Position
	Start *tracking.Position
	End   *tracking.Position

	// ColumnHint is the remembered display column used by vertical moves.
	ColumnHint int

	// VirtualSpaces is the caret's distance past the end of its line.
	VirtualSpaces int

	// CopiedText holds per-unit clipboard text for multi-paste within the
	// same document.
	CopiedText string
}

// NewCaretUnit creates a pure caret at offset.
func NewCaretUnit(offset ByteOffset, columnHint int, r Resolver) *Unit {
	return &Unit{Caret: r.Track(offset), ColumnHint: columnHint}
}

// NewRangeUnit creates a unit selecting span with the caret at its end, or
// at its start when reversed is true.
func NewRangeUnit(span Range, reversed bool, columnHint int, r Resolver) *Unit {
	u := &Unit{ColumnHint: columnHint}
	u.setSpan(span, r)
	if reversed {
		u.Caret = *u.Start
	} else {
		u.Caret = *u.End
	}
	return u
}

// IsSelection returns true if the unit carries a range.
func (u *Unit) IsSelection() bool {
	return u.Start != nil && u.End != nil
}

// CaretOffset resolves the caret.
func (u *Unit) CaretOffset(r Resolver) ByteOffset {
	return r.Resolve(u.Caret)
}

// Span resolves the unit's range. ok is false for a pure caret.
func (u *Unit) Span(r Resolver) (span Range, ok bool) {
	if !u.IsSelection() {
		return Range{}, false
	}
	return Range{Start: r.Resolve(*u.Start), End: r.Resolve(*u.End)}, true
}

// IsReversed returns true if the unit has a non-empty range and its caret
// sits at the range start.
func (u *Unit) IsReversed(r Resolver) bool {
	span, ok := u.Span(r)
	if !ok || span.IsEmpty() {
		return false
	}
	return u.CaretOffset(r) == span.Start
}

// OverlapsWith reports whether the unit intersects span. A pure caret is
// treated as a one byte wide span at its position.
func (u *Unit) OverlapsWith(span Range, r Resolver) bool {
	own, ok := u.Span(r)
	if !ok {
		caret := u.CaretOffset(r)
		own = Range{Start: caret, End: caret + 1}
	}
	return own.Overlaps(span)
}

// ClearRange turns the unit into a pure caret.
func (u *Unit) ClearRange() {
	u.Start = nil
	u.End = nil
}

func (u *Unit) setSpan(span Range, r Resolver) {
	start := r.Track(min(span.Start, span.End))
	end := r.Track(max(span.Start, span.End))
	u.Start = &start
	u.End = &end
}

// AdoptSpan replaces the unit's range with span as reported by the host.
// An empty span turns the unit into a pure caret. The caret is left alone.
func (u *Unit) AdoptSpan(span Range, r Resolver) {
	if span.IsEmpty() {
		u.ClearRange()
		return
	}
	u.setSpan(span, r)
}

// UpdateAfterExtend grows or shrinks the unit's range after its caret has
// moved from previous to the current caret position under an extending
// command.
//
// With no range, the range spans previous and the caret. With a range, the
// end the caret left is kept as the anchor; when the caret crosses the
// anchor, the anchor flips to the other side. A caret that lands exactly on
// the anchor collapses the unit to a pure caret.
func (u *Unit) UpdateAfterExtend(previous ByteOffset, r Resolver) {
	caret := u.CaretOffset(r)
	caretPos := u.Caret

	if !u.IsSelection() {
		if caret == previous {
			return
		}
		u.setSpan(Range{Start: previous, End: caret}, r)
		return
	}

	start, end := r.Resolve(*u.Start), r.Resolve(*u.End)

	if (previous == end && caret == start) || (previous == start && caret == end) {
		u.ClearRange()
		return
	}

	switch {
	case caret < start && start < previous:
		// Crossed the anchor moving left: old start becomes the anchor end.
		s := *u.Start
		u.End = &s
		u.Start = &caretPos
	case previous < end && end < caret:
		// Crossed the anchor moving right.
		e := *u.End
		u.Start = &e
		u.End = &caretPos
	case caret > start && start != previous:
		u.End = &caretPos
	default:
		u.Start = &caretPos
	}

	if r.Resolve(*u.Start) == r.Resolve(*u.End) {
		u.ClearRange()
	}
}

// CaretColumnForVerticalMove returns the offset on target's line that best
// matches the unit's column hint. If the hint is beyond the line's display
// width the caret is clamped to the end of the line; otherwise the line is
// walked honoring tab stops until the hint column is reached.
func (u *Unit) CaretColumnForVerticalMove(target ByteOffset, lines LineSource, tabSize int) ByteOffset {
	lr := lines.LineRange(lines.LineOf(target))
	text := lines.Text(lr)

	if u.ColumnHint > DisplayWidth(text, tabSize) {
		return lr.End
	}
	return lr.Start + ByteOffset(ByteColumnForDisplay(text, u.ColumnHint, tabSize))
}

// State returns a resolved, immutable copy of the unit.
func (u *Unit) State(r Resolver) State {
	st := State{
		Caret:         u.CaretOffset(r),
		ColumnHint:    u.ColumnHint,
		VirtualSpaces: u.VirtualSpaces,
		CopiedText:    u.CopiedText,
	}
	if span, ok := u.Span(r); ok {
		st.HasRange = true
		st.Start, st.End = span.Start, span.End
	}
	return st
}

// State is a snapshot of a Unit with all positions resolved.
type State struct {
	Caret         ByteOffset
	Start, End    ByteOffset
	HasRange      bool
	ColumnHint    int
	VirtualSpaces int
	CopiedText    string
}

// Unit recreates a tracked unit from the state in the current revision.
func (s State) Unit(r Resolver) *Unit {
	u := &Unit{
		Caret:         r.Track(s.Caret),
		ColumnHint:    s.ColumnHint,
		VirtualSpaces: s.VirtualSpaces,
		CopiedText:    s.CopiedText,
	}
	if s.HasRange {
		u.setSpan(Range{Start: s.Start, End: s.End}, r)
	}
	return u
}

// String returns a compact representation such as "3" or "[0,3>".
// The angle bracket marks the caret end.
func (s State) String() string {
	if !s.HasRange {
		return fmt.Sprintf("%d", s.Caret)
	}
	if s.Caret == s.Start && s.Start != s.End {
		return fmt.Sprintf("<%d,%d]", s.Start, s.End)
	}
	return fmt.Sprintf("[%d,%d>", s.Start, s.End)
}
