package selector

import (
	"github.com/dshills/multicursor/internal/engine/cursor"
)

// MouseDown handles a left button press before the view moves its caret.
// With Alt held and no units or selection, the current caret is stashed so
// the release can turn both positions into units. A plain press leaves
// multi-cursor mode.
func (s *Selector) MouseDown(alt bool) {
	if !s.settings.AddMouseCursors() {
		return
	}
	if sel, _ := s.view.Selection(); !sel.IsEmpty() || !s.set.IsEmpty() {
		return
	}
	if alt {
		caret, _ := s.view.Caret()
		s.stash = cursor.NewCaretUnit(caret, s.columnOf(caret, 0), s.view)
		return
	}
	s.stash = nil
	s.DiscardSelections()
}

// MouseUp handles a left button release after the view moved its caret.
// A click with Alt adds the stashed caret, if any, and the clicked one;
// any other click leaves multi-cursor mode. Drags that selected text are
// ignored.
func (s *Selector) MouseUp(alt bool) {
	defer func() { s.stash = nil }()

	if sel, _ := s.view.Selection(); !sel.IsEmpty() {
		return
	}
	if !s.settings.AddMouseCursors() || !alt {
		s.DiscardSelections()
		return
	}
	if s.stash != nil {
		if !s.set.HasCaretAt(s.stash.CaretOffset(s.view), s.view) {
			s.set.Add(s.stash)
		}
	}
	_ = s.addCurrentCaret()
}
