package selector

import (
	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/cursor"
)

// ConvertSelectionToCursors splits the view's selection into carets. A
// selection spanning several lines yields a caret at the end of every line
// but the last, plus one at the selection end. A selection within one line
// is added as a unit.
func (s *Selector) ConvertSelectionToCursors() Result {
	v := s.view
	sel, _ := v.Selection()
	if sel.IsEmpty() {
		return handler.NoOpWithReason(ErrNoSelection)
	}

	first, last := v.LineOf(sel.Start), v.LineOf(sel.End)
	if first == last {
		s.addHostSelection()
		return handler.Success()
	}

	for line := first; line < last; line++ {
		end := v.LineRange(line).End
		s.set.Add(cursor.NewCaretUnit(end, s.columnOf(end, 0), v))
	}
	s.set.Add(cursor.NewCaretUnit(sel.End, s.columnOf(sel.End, 0), v))
	s.set.ClearCopiedText()
	v.ClearSelection()
	return handler.Success()
}

// AddCaretAbove adds a caret one line above every unit. With no units the
// view's caret becomes the first one.
func (s *Selector) AddCaretAbove() Result {
	return s.addCaretsAlong(s.lineUp)
}

// AddCaretBelow adds a caret one line below every unit.
func (s *Selector) AddCaretBelow() Result {
	return s.addCaretsAlong(s.lineDown)
}

func (s *Selector) addCaretsAlong(command string) Result {
	if s.set.IsEmpty() {
		_ = s.addCurrentCaret()
	}

	added := 0
	for _, u := range s.set.Units() {
		s.view.MoveCaret(u.CaretOffset(s.view), 0)
		s.view.Exec(Command{Name: command})
		if s.addCurrentCaret() == nil {
			added++
		}
	}
	if added == 0 {
		return handler.NoOpWithReason(ErrDuplicateCaret)
	}
	return handler.Success()
}
