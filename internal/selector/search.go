package selector

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/log"
)

// Direction is the direction of an occurrence search.
type Direction uint8

// Search directions.
const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// SelectNextOccurrence adds the next occurrence of the search text.
func (s *Selector) SelectNextOccurrence() Result {
	return s.SelectOccurrence(Forward, false)
}

// SelectPreviousOccurrence adds the previous occurrence of the search text.
func (s *Selector) SelectPreviousOccurrence() Result {
	return s.SelectOccurrence(Backward, false)
}

// SelectNextExactOccurrence adds the next case-sensitive whole-word match.
func (s *Selector) SelectNextExactOccurrence() Result {
	return s.SelectOccurrence(Forward, true)
}

// SelectPreviousExactOccurrence adds the previous case-sensitive whole-word
// match.
func (s *Selector) SelectPreviousExactOccurrence() Result {
	return s.SelectOccurrence(Backward, true)
}

// SelectOccurrence grows the set by one occurrence of the search text.
//
// With no units, the view's selection becomes the first unit; with no
// selection either, the word at the caret is selected and nothing else
// happens. Units that lost their range get the word at their caret
// selected instead of searching. Otherwise the search starts past the unit
// furthest in dir, or past the last added unit once the search has wrapped
// around the text. exact forces a case-sensitive whole-word match.
func (s *Selector) SelectOccurrence(dir Direction, exact bool) Result {
	v := s.view

	if s.set.IsEmpty() {
		if sel, _ := v.Selection(); sel.IsEmpty() {
			caret, _ := v.Caret()
			if !s.selectWordAt(caret) {
				return handler.NoOpWithReason(ErrNoSelection)
			}
			return handler.Success()
		}
		s.addHostSelection()
	}

	result := handler.Success()
	if !s.set.AllSelections() {
		s.reselectWords()
	} else {
		result = s.findNext(dir, exact)
	}

	s.parkOnLast()
	return result
}

// findNext searches from the anchor unit and adds the match.
func (s *Selector) findNext(dir Direction, exact bool) Result {
	v := s.view

	var anchor *cursor.Unit
	switch {
	case s.set.HasWrapped:
		anchor = s.set.Last()
	case dir == Backward:
		anchor = s.set.SortedByCaret(v, false)[0]
	default:
		sorted := s.set.SortedByCaret(v, false)
		anchor = sorted[len(sorted)-1]
	}

	probe := anchor.CaretOffset(v)
	if span, ok := anchor.Span(v); ok {
		probe = span.End
		if dir == Backward {
			probe = span.Start
		}
	}

	if s.searcher == nil {
		return handler.NoOpWithReason(ErrNoOccurrenceFound)
	}
	match, ok := s.searcher.FindNext(probe, true, s.set.SearchText, s.findOptions(dir, exact))
	if !ok || !s.addOccurrence(match) {
		log.Debug(log.CatSearch, "no new occurrence", "selector", s.id, "term", s.set.SearchText, "dir", dir)
		return handler.NoOpWithReason(ErrNoOccurrenceFound)
	}

	last, first := s.set.Last().CaretOffset(v), s.set.First().CaretOffset(v)
	if (dir == Forward && last < first) || (dir == Backward && last > first) {
		s.set.HasWrapped = true
	}
	return handler.Success()
}

// SelectAllOccurrences adds every occurrence of the search text.
func (s *Selector) SelectAllOccurrences() Result {
	s.SelectNextOccurrence()
	if s.set.IsEmpty() {
		return handler.NoOpWithReason(ErrNoSelection)
	}
	if s.searcher == nil {
		return handler.NoOpWithReason(ErrNoOccurrenceFound)
	}

	added := 0
	for _, match := range s.searcher.FindAll(s.set.SearchText, s.findOptions(Forward, false)) {
		if s.addOccurrence(match) {
			added++
		}
	}
	s.parkOnLast()

	log.Debug(log.CatSearch, "select all", "selector", s.id, "term", s.set.SearchText, "added", added)
	return handler.Success()
}

// SkipOccurrence selects the next occurrence in dir and drops the one
// selected before it.
func (s *Selector) SkipOccurrence(dir Direction) Result {
	result := s.SelectOccurrence(dir, false)
	if s.set.Len() > 1 {
		s.set.RemoveAt(s.set.Len() - 2)
	}
	return result
}

// UndoOccurrence drops the most recently added unit. The last unit is never
// dropped.
func (s *Selector) UndoOccurrence() Result {
	if s.set.IsEmpty() {
		return handler.NoOpWithReason(ErrNoUnits)
	}
	result := handler.NoOp()
	if s.set.Len() > 1 {
		s.set.RemoveAt(s.set.Len() - 1)
		if s.set.Len() == 1 {
			s.set.HasWrapped = false
		}
		result = handler.Success()
	}

	last := s.set.Last()
	s.view.MoveCaret(last.CaretOffset(s.view), last.VirtualSpaces)
	s.view.EnsureVisible(last.CaretOffset(s.view))
	return result
}

func (s *Selector) findOptions(dir Direction, exact bool) FindOptions {
	opts := FindOptions{Reverse: dir == Backward}
	if exact {
		opts.MatchCase, opts.WholeWord = true, true
	} else {
		opts.MatchCase, opts.WholeWord = s.settings.MatchCase(), s.settings.WholeWord()
	}
	return opts
}

// addOccurrence adds match unless it overlaps a unit. The caret goes to the
// match start when the last unit is reversed.
func (s *Selector) addOccurrence(match Range) bool {
	v := s.view
	if s.set.AnyOverlaps(match, v) {
		return false
	}

	reversed := false
	if last := s.set.Last(); last != nil {
		reversed = last.IsReversed(v)
	}
	caret := match.End
	if reversed {
		caret = match.Start
	}
	s.set.Add(cursor.NewRangeUnit(match, reversed, s.columnOf(caret, 0), v))

	if s.outliner != nil {
		s.outliner.ExpandCollapsed(match)
	}
	v.MoveCaret(caret, 0)
	v.EnsureVisible(caret)
	return true
}

// reselectWords replaces every caret-only unit by the word at its caret.
// Units without a word there are dropped.
func (s *Selector) reselectWords() {
	old := s.set.Units()
	s.set.Replace(nil)
	for _, u := range old {
		if u.IsSelection() {
			s.set.Add(u)
			continue
		}
		caret := u.CaretOffset(s.view)
		s.view.MoveCaret(caret, 0)
		s.selectWordAt(caret)
	}
}

// selectWordAt selects the word at caret and adds it as a unit. When the
// caret sits just after a word and before a non-word character, the word
// before it is taken.
func (s *Selector) selectWordAt(caret ByteOffset) bool {
	v := s.view

	v.SelectCurrentWord()
	sel, _ := v.Selection()
	if sel.IsEmpty() {
		return false
	}

	first, _ := utf8.DecodeRuneInString(v.Text(sel))
	lineStart := v.LineRange(v.LineOf(caret)).Start
	if !isWordRune(first) && caret > lineStart {
		prev, size := utf8.DecodeLastRuneInString(v.Text(Range{Start: lineStart, End: caret}))
		if isWordRune(prev) {
			v.MoveCaret(caret-ByteOffset(size), 0)
			v.SelectCurrentWord()
		}
	}

	s.addHostSelection()
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
