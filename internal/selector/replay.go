package selector

import (
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/log"
)

// Execute runs cmd on the view. With no units it runs once, as a
// single-cursor editor would; otherwise it is replayed according to its
// behavior. The result of the last unit processed is returned.
func (s *Selector) Execute(cmd Command) Result {
	b := s.commands.Lookup(cmd.Name)

	if s.set.IsEmpty() {
		return s.executeSingle(cmd, b)
	}

	log.Debug(log.CatReplay, "execute", "selector", s.id, "command", cmd.Name,
		"behavior", b, "units", s.set.Len())

	var result Result
	switch b {
	case PassThrough, ViewToggle:
		return s.view.Exec(cmd)
	case Undo, Redo:
		return s.undoRedo(cmd, b)
	case Copy, Cut:
		return s.copyCut(cmd)
	case Cancel:
		result = s.Cancel()
	case Discard:
		s.DiscardSelections()
		// The command's own selection survives; nothing is left to tidy.
		return s.view.Exec(cmd)
	case Paste:
		if s.useLastClipboard() {
			result = s.multiPaste()
			break
		}
		result = s.replay(cmd, b)
	default:
		result = s.replay(cmd, b)
	}

	s.set.RemoveDuplicates(s.view)
	s.view.ClearSelection()
	return result
}

func (s *Selector) executeSingle(cmd Command, b Behavior) Result {
	switch b {
	case Copy, Cut:
		s.lastClipboard = nil
	case Undo, Redo:
		return s.undoRedo(cmd, b)
	}
	return s.view.Exec(cmd)
}

// openUndoContext starts one undo step for a multi-cursor command.
func (s *Selector) openUndoContext(label string) {
	if s.undo != nil {
		s.undo.BeginGroup(label)
	}
	s.history.Store(s.view.Version(), s.set.States(s.view))
}

// closeUndoContext ends the undo step and records the resulting set.
func (s *Selector) closeUndoContext() {
	if s.undo != nil {
		s.undo.EndGroup()
	}
	if s.history.Save(s.view.Version(), s.set.States(s.view)) {
		log.Debug(log.CatHistory, "cursors saved", "selector", s.id, "version", s.view.Version())
	}
}

// undoRedo runs the view's undo or redo, then restores the cursors that
// were recorded for the version it arrived at.
func (s *Selector) undoRedo(cmd Command, b Behavior) Result {
	result := s.view.Exec(cmd)

	version := s.view.Version()
	lookup := s.history.UndoSnapshot
	if b == Redo {
		lookup = s.history.RedoSnapshot
	}
	snap, err := lookup(version)
	if err != nil {
		if !s.set.IsEmpty() {
			log.Debug(log.CatHistory, "discarding cursors", "selector", s.id, "error", err)
		}
		s.set.Clear()
		return result
	}

	s.set.Restore(snap.Units, s.view)
	s.parkOnLast()
	log.Debug(log.CatHistory, "cursors restored", "selector", s.id, "version", version, "units", s.set.Len())
	return result
}

// ordered returns the units in the order b processes them.
func (s *Selector) ordered(b Behavior) []*cursor.Unit {
	switch b.order() {
	case topToBottom:
		return s.set.SortedByCaret(s.view, false)
	case bottomToTop:
		return s.set.SortedByCaret(s.view, true)
	default:
		return s.set.Units()
	}
}

// replay runs cmd once per unit.
func (s *Selector) replay(cmd Command, b Behavior) Result {
	var result Result

	s.openUndoContext(cmd.Name)
	for _, u := range s.ordered(b) {
		result = s.replayUnit(u, cmd, b)
		if result.IsError() {
			log.ErrorErr(log.CatReplay, "command failed for unit", result.Error,
				"selector", s.id, "command", cmd.Name, "caret", u.CaretOffset(s.view))
		}
	}

	if b.extends() {
		s.set.CombineOverlapping(s.view)
		if span, ok := s.set.Last().Span(s.view); ok {
			s.set.SearchText = s.view.Text(span)
		}
	}
	s.closeUndoContext()

	s.parkOnLast()
	if b.moves() {
		s.set.ClearRanges()
	}
	return result
}

// replayUnit places the view on u, runs cmd and writes the outcome back.
func (s *Selector) replayUnit(u *cursor.Unit, cmd Command, b Behavior) Result {
	v := s.view

	previous := u.CaretOffset(v)
	if span, ok := u.Span(v); ok && !span.IsEmpty() {
		v.Select(span, u.IsReversed(v))
	} else {
		v.MoveCaret(previous, u.VirtualSpaces)
	}

	result := v.Exec(cmd)

	caret, virtual := v.Caret()
	if b.vertical() {
		caret = s.verticalTarget(u, previous, caret)
	} else {
		u.ColumnHint = s.columnOf(caret, virtual)
	}
	u.Caret = v.Track(caret)
	u.VirtualSpaces = virtual

	sel, _ := v.Selection()
	switch {
	case sel.IsEmpty():
		u.ClearRange()
	case b.extends():
		u.UpdateAfterExtend(previous, v)
	case b.adopts():
		u.AdoptSpan(sel, v)
	}

	v.ClearSelection()
	return result
}

// verticalTarget places a vertically moved caret. A caret that could not
// leave the first or last line goes to the start or end of the text;
// otherwise it lands on the unit's remembered column.
func (s *Selector) verticalTarget(u *cursor.Unit, previous, caret ByteOffset) ByteOffset {
	v := s.view
	prevLine, newLine := v.LineOf(previous), v.LineOf(caret)
	if prevLine == newLine {
		switch {
		case newLine == 0:
			return 0
		case newLine == v.LineCount()-1:
			return v.Len()
		}
	}
	return u.CaretColumnForVerticalMove(caret, v, v.TabSize())
}
