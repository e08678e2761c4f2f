package engine

import (
	"errors"
	"strings"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/engine/history"
)

// Command names understood by the engine.
const (
	CmdMoveLeft      = "cursor.moveLeft"
	CmdMoveRight     = "cursor.moveRight"
	CmdMoveUp        = "cursor.moveUp"
	CmdMoveDown      = "cursor.moveDown"
	CmdWordBackward  = "cursor.wordBackward"
	CmdWordForward   = "cursor.wordForward"
	CmdMoveLineStart = "cursor.moveLineStart"
	CmdMoveLineEnd   = "cursor.moveLineEnd"
	CmdPageUp        = "cursor.pageUp"
	CmdPageDown      = "cursor.pageDown"

	CmdSelectLeft         = "select.left"
	CmdSelectRight        = "select.right"
	CmdSelectUp           = "select.up"
	CmdSelectDown         = "select.down"
	CmdSelectWordBackward = "select.wordBackward"
	CmdSelectWordForward  = "select.wordForward"
	CmdSelectLineStart    = "select.lineStart"
	CmdSelectLineEnd      = "select.lineEnd"

	CmdInsertText     = "editor.insertText"
	CmdInsertNewline  = "editor.insertNewline"
	CmdInsertTab      = "editor.insertTab"
	CmdDeleteCharBack = "editor.deleteCharBack"
	CmdDeleteChar     = "editor.deleteChar"
	CmdToggleComment  = "editor.toggleComment"
	CmdUpperCase      = "editor.upperCase"
	CmdLowerCase      = "editor.lowerCase"
	CmdMoveLinesUp    = "editor.moveLinesUp"
	CmdMoveLinesDown  = "editor.moveLinesDown"
	CmdCopy           = "editor.copy"
	CmdCut            = "editor.cut"
	CmdPaste          = "editor.paste"
	CmdUndo           = "editor.undo"
	CmdRedo           = "editor.redo"
	CmdCancel         = "editor.cancel"

	CmdToggleWordWrap   = "view.toggleWordWrap"
	CmdToggleWhitespace = "view.toggleWhitespace"
	CmdToggleOvertype   = "view.toggleOvertype"
)

// motion computes a new caret from the current one.
type motion func(head ByteOffset, virtual int) (ByteOffset, int)

func (e *Engine) registerCommands() {
	cur := handler.NewBaseNamespaceHandler("cursor")
	cur.Register(CmdMoveLeft, e.collapseOr(true, e.left))
	cur.Register(CmdMoveRight, e.collapseOr(false, e.right))
	cur.Register(CmdMoveUp, func(Command) Result { return e.vertical(-1, false) })
	cur.Register(CmdMoveDown, func(Command) Result { return e.vertical(1, false) })
	cur.Register(CmdWordBackward, e.moveWith(e.wordLeft))
	cur.Register(CmdWordForward, e.moveWith(e.wordRight))
	cur.Register(CmdMoveLineStart, e.moveWith(e.lineStart))
	cur.Register(CmdMoveLineEnd, e.moveWith(e.lineEnd))
	cur.Register(CmdPageUp, func(Command) Result { return e.vertical(-e.pageLines, false) })
	cur.Register(CmdPageDown, func(Command) Result { return e.vertical(e.pageLines, false) })
	e.disp.RegisterNamespace(cur)

	sel := handler.NewBaseNamespaceHandler("select")
	sel.Register(CmdSelectLeft, e.extendWith(e.left))
	sel.Register(CmdSelectRight, e.extendWith(e.right))
	sel.Register(CmdSelectUp, func(Command) Result { return e.vertical(-1, true) })
	sel.Register(CmdSelectDown, func(Command) Result { return e.vertical(1, true) })
	sel.Register(CmdSelectWordBackward, e.extendWith(e.wordLeft))
	sel.Register(CmdSelectWordForward, e.extendWith(e.wordRight))
	sel.Register(CmdSelectLineStart, e.extendWith(e.lineStart))
	sel.Register(CmdSelectLineEnd, e.extendWith(e.lineEnd))
	e.disp.RegisterNamespace(sel)

	ed := handler.NewBaseNamespaceHandler("editor")
	ed.Register(CmdInsertText, func(cmd Command) Result { return e.result(e.insert(cmd.Text, true)) })
	ed.Register(CmdInsertNewline, func(Command) Result { return e.result(e.insertNewline()) })
	ed.Register(CmdInsertTab, func(Command) Result { return e.result(e.insert("\t", true)) })
	ed.Register(CmdDeleteCharBack, func(Command) Result { return e.result(e.deleteBack()) })
	ed.Register(CmdDeleteChar, func(Command) Result { return e.result(e.deleteForward()) })
	ed.Register(CmdToggleComment, func(Command) Result { return e.result(e.toggleComment()) })
	ed.Register(CmdUpperCase, func(Command) Result { return e.result(e.mapCase(strings.ToUpper)) })
	ed.Register(CmdLowerCase, func(Command) Result { return e.result(e.mapCase(strings.ToLower)) })
	ed.Register(CmdMoveLinesUp, func(Command) Result { return e.result(e.moveLines(-1)) })
	ed.Register(CmdMoveLinesDown, func(Command) Result { return e.result(e.moveLines(1)) })
	ed.Register(CmdCopy, func(Command) Result { return e.result(e.copySelection(false)) })
	ed.Register(CmdCut, func(Command) Result { return e.result(e.copySelection(true)) })
	ed.Register(CmdPaste, func(Command) Result { return e.result(e.paste()) })
	ed.Register(CmdUndo, func(Command) Result { return e.result(e.history.Undo(editTarget{e})) })
	ed.Register(CmdRedo, func(Command) Result { return e.result(e.history.Redo(editTarget{e})) })
	ed.Register(CmdCancel, func(Command) Result { return e.cancel() })
	e.disp.RegisterNamespace(ed)

	vw := handler.NewBaseNamespaceHandler("view")
	vw.Register(CmdToggleWordWrap, e.toggle(&e.wordWrap))
	vw.Register(CmdToggleWhitespace, e.toggle(&e.showWhitespace))
	vw.Register(CmdToggleOvertype, e.toggle(&e.overtype))
	e.disp.RegisterNamespace(vw)
}

// result maps an edit error onto a command result. Errors that only mean
// there was nothing to do become no-ops.
func (e *Engine) result(err error) Result {
	switch {
	case err == nil:
		return handler.Success()
	case errors.Is(err, ErrAtBoundary),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrEmptyClipboard),
		errors.Is(err, history.ErrNothingToUndo),
		errors.Is(err, history.ErrNothingToRedo):
		return handler.NoOpWithReason(err)
	default:
		return handler.Error(err)
	}
}

// ============================================================================
// Motions
// ============================================================================

func (e *Engine) left(head ByteOffset, virtual int) (ByteOffset, int) {
	if virtual > 0 {
		return head, virtual - 1
	}
	return e.prevGrapheme(head), 0
}

func (e *Engine) right(head ByteOffset, virtual int) (ByteOffset, int) {
	if e.virtualSpace && head == e.buf.LineEndOffset(e.buf.LineOf(head)) {
		return head, virtual + 1
	}
	return e.nextGrapheme(head), 0
}

func (e *Engine) wordLeft(head ByteOffset, _ int) (ByteOffset, int) {
	return e.wordBackward(head), 0
}

func (e *Engine) wordRight(head ByteOffset, _ int) (ByteOffset, int) {
	return e.wordForward(head), 0
}

// lineStart goes to the first non-blank character, or to column zero when
// already there.
func (e *Engine) lineStart(head ByteOffset, _ int) (ByteOffset, int) {
	line := e.buf.LineOf(head)
	start := e.buf.LineStartOffset(line)
	indent := start + ByteOffset(len(leadingWhitespace(e.buf.LineText(line))))
	if head == indent {
		return start, 0
	}
	return indent, 0
}

func (e *Engine) lineEnd(head ByteOffset, _ int) (ByteOffset, int) {
	return e.buf.LineEndOffset(e.buf.LineOf(head)), 0
}

// moveWith returns a handler that moves the caret and drops the selection.
func (e *Engine) moveWith(m motion) func(Command) Result {
	return func(Command) Result {
		sel := e.RealSelection()
		_, virtual := e.Caret()
		head, v := m(sel.Head, virtual)
		if head == sel.Head && v == virtual && sel.IsEmpty() {
			return handler.NoOpWithReason(ErrAtBoundary)
		}
		e.placeCaret(head, v)
		return handler.Success()
	}
}

// collapseOr collapses a selection onto its start or end, and otherwise
// applies m.
func (e *Engine) collapseOr(toStart bool, m motion) func(Command) Result {
	move := e.moveWith(m)
	return func(cmd Command) Result {
		sel := e.RealSelection()
		if sel.IsEmpty() {
			return move(cmd)
		}
		r := sel.Range()
		if toStart {
			e.placeCaret(r.Start, 0)
		} else {
			e.placeCaret(r.End, 0)
		}
		return handler.Success()
	}
}

// extendWith returns a handler that moves the head and keeps the anchor.
func (e *Engine) extendWith(m motion) func(Command) Result {
	return func(Command) Result {
		sel := e.RealSelection()
		head, _ := m(sel.Head, 0)
		if head == sel.Head {
			return handler.NoOpWithReason(ErrAtBoundary)
		}
		e.setSelection(sel.Extend(head))
		return handler.Success()
	}
}

// placeCaret is MoveCaret without the virtual space filtering.
func (e *Engine) placeCaret(offset ByteOffset, virtual int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = cursor.NewCursorSelection(offset)
	e.virtual = virtual
	e.goalColumn = -1
}

// vertical moves the caret delta lines, keeping the display column it had
// before the first vertical move. Moving up from the first line goes to the
// start of the text and moving down from the last line goes to its end.
func (e *Engine) vertical(delta int, extend bool) Result {
	e.mu.RLock()
	sel, virtual, goal := e.sel, e.virtual, e.goalColumn
	e.mu.RUnlock()

	line := e.buf.LineOf(sel.Head)
	tab := e.buf.TabWidth()
	if goal < 0 {
		lr := e.LineRange(line)
		goal = cursor.DisplayColumn(e.buf.TextRange(lr.Start, lr.End), int(sel.Head-lr.Start), tab) + virtual
	}

	last := int(e.buf.LineCount()) - 1
	target := int(line) + delta
	var head ByteOffset
	virtual = 0
	switch {
	case target < 0:
		head = 0
	case target > last:
		head = e.buf.Len()
	default:
		lr := e.LineRange(uint32(target))
		text := e.buf.TextRange(lr.Start, lr.End)
		if width := cursor.DisplayWidth(text, tab); goal > width {
			head = lr.End
			if e.virtualSpace && !extend {
				virtual = goal - width
			}
		} else {
			head = lr.Start + ByteOffset(cursor.ByteColumnForDisplay(text, goal, tab))
		}
	}

	if extend {
		if head == sel.Head {
			return handler.NoOpWithReason(ErrAtBoundary)
		}
		sel = sel.Extend(head)
	} else {
		sel = cursor.NewCursorSelection(head)
	}

	e.mu.Lock()
	e.sel = sel
	e.virtual = virtual
	e.goalColumn = goal
	e.mu.Unlock()

	e.EnsureVisible(head)
	return handler.Success()
}

// ============================================================================
// Editing
// ============================================================================

// insert replaces the selection with text. Typed text in overtype mode
// replaces as many characters as it holds; a caret in virtual space is
// padded out to its column first.
func (e *Engine) insert(text string, typed bool) error {
	sel := e.RealSelection()
	_, virtual := e.Caret()
	r := sel.Range()

	if r.IsEmpty() {
		if text == "" {
			return ErrAtBoundary
		}
		if virtual > 0 {
			text = strings.Repeat(" ", virtual) + text
		} else if typed && e.Overtype() {
			r.End = e.graphemeEnd(r.Start, len([]rune(text)))
		}
	}
	return e.edit(r, text)
}

// insertNewline breaks the line, carrying the indentation over.
func (e *Engine) insertNewline() error {
	sel := e.RealSelection()
	r := sel.Range()
	line := e.buf.LineOf(r.Start)
	before := e.buf.TextRange(e.buf.LineStartOffset(line), r.Start)
	return e.edit(r, e.buf.LineEnding().Sequence()+leadingWhitespace(before))
}

func (e *Engine) deleteBack() error {
	sel := e.RealSelection()
	if !sel.IsEmpty() {
		return e.edit(sel.Range(), "")
	}
	if _, virtual := e.Caret(); virtual > 0 {
		e.placeCaret(sel.Head, virtual-1)
		return nil
	}
	if sel.Head == 0 {
		return ErrAtBoundary
	}
	return e.edit(Range{Start: e.prevGrapheme(sel.Head), End: sel.Head}, "")
}

// deleteForward deletes the character after the caret. In virtual space the
// next line is joined at the caret's column.
func (e *Engine) deleteForward() error {
	sel := e.RealSelection()
	if !sel.IsEmpty() {
		return e.edit(sel.Range(), "")
	}
	if sel.Head >= e.buf.Len() {
		return ErrAtBoundary
	}
	_, virtual := e.Caret()
	r := Range{Start: sel.Head, End: e.nextGrapheme(sel.Head)}
	return e.edit(r, strings.Repeat(" ", virtual))
}

// lineSpan returns the lines touched by the selection. A multi-line
// selection ending at column zero does not include that last line.
func (e *Engine) lineSpan(sel Selection) (first, last uint32) {
	r := sel.Range()
	first = e.buf.LineOf(r.Start)
	last = e.buf.LineOf(r.End)
	if last > first && r.End == e.buf.LineStartOffset(last) {
		last--
	}
	return first, last
}

// group runs fn as one undo step and restores the selection through the
// tracked anchor and head afterwards.
func (e *Engine) group(name string, fn func() error) error {
	if e.readOnly {
		return ErrReadOnly
	}
	sel := e.RealSelection()
	anchor, head := e.Track(sel.Anchor), e.Track(sel.Head)

	scope := e.history.GroupScope(name)
	err := fn()
	scope.End()

	e.setSelection(cursor.NewSelection(e.Resolve(anchor), e.Resolve(head)))
	return err
}

// toggleComment comments out the selected lines, or uncomments them when
// every non-blank line already carries the comment prefix.
func (e *Engine) toggleComment() error {
	first, last := e.lineSpan(e.RealSelection())
	prefix := e.commentPrefix

	commented := true
	blank := true
	indent := -1
	for line := first; line <= last; line++ {
		text := e.buf.LineText(line)
		ws := leadingWhitespace(text)
		if len(ws) == len(text) {
			continue
		}
		blank = false
		if indent < 0 || len(ws) < indent {
			indent = len(ws)
		}
		if !strings.HasPrefix(text[len(ws):], prefix) {
			commented = false
		}
	}
	if blank {
		return ErrAtBoundary
	}

	return e.group("toggle comment", func() error {
		// Bottom up so earlier offsets stay valid.
		for line := last; ; line-- {
			text := e.buf.LineText(line)
			ws := leadingWhitespace(text)
			if len(ws) < len(text) {
				start := e.buf.LineStartOffset(line)
				var err error
				if commented {
					at := start + ByteOffset(len(ws))
					n := ByteOffset(len(prefix))
					if strings.HasPrefix(text[len(ws)+len(prefix):], " ") {
						n++
					}
					err = e.edit(Range{Start: at, End: at + n}, "")
				} else {
					at := start + ByteOffset(indent)
					err = e.edit(Range{Start: at, End: at}, prefix+" ")
				}
				if err != nil {
					return err
				}
			}
			if line == first {
				return nil
			}
		}
	})
}

// mapCase rewrites the selection, or the word at the caret, with fn and
// keeps it selected.
func (e *Engine) mapCase(fn func(string) string) error {
	sel := e.RealSelection()
	r := sel.Range()
	if r.IsEmpty() {
		w, ok := e.wordAt(sel.Head)
		if !ok {
			return ErrNoSelection
		}
		r = w
		sel = cursor.NewRangeSelection(w, false)
	}

	text := e.buf.TextRange(r.Start, r.End)
	mapped := fn(text)
	if mapped == text {
		e.setSelection(sel)
		return nil
	}
	if err := e.edit(r, mapped); err != nil {
		return err
	}
	e.setSelection(cursor.NewRangeSelection(Range{Start: r.Start, End: r.Start + ByteOffset(len(mapped))}, sel.IsBackward()))
	return nil
}

// moveLines swaps the selected lines with the line above (dir < 0) or
// below (dir > 0). The selection moves with them.
func (e *Engine) moveLines(dir int) error {
	sel := e.RealSelection()
	first, last := e.lineSpan(sel)
	sep := e.buf.LineEnding().Sequence()

	var r Range
	var text string
	var shift ByteOffset
	block := e.buf.TextRange(e.buf.LineStartOffset(first), e.buf.LineEndOffset(last))
	if dir < 0 {
		if first == 0 {
			return ErrAtBoundary
		}
		above := e.buf.LineText(first - 1)
		r = Range{Start: e.buf.LineStartOffset(first - 1), End: e.buf.LineEndOffset(last)}
		text = block + sep + above
		shift = -ByteOffset(len(above) + len(sep))
	} else {
		if last+1 >= e.buf.LineCount() {
			return ErrAtBoundary
		}
		below := e.buf.LineText(last + 1)
		r = Range{Start: e.buf.LineStartOffset(first), End: e.buf.LineEndOffset(last + 1)}
		text = below + sep + block
		shift = ByteOffset(len(below) + len(sep))
	}

	if err := e.edit(r, text); err != nil {
		return err
	}
	e.setSelection(cursor.NewSelection(sel.Anchor+shift, sel.Head+shift).Clamp(e.buf.Len()))
	return nil
}

func (e *Engine) copySelection(cut bool) error {
	r := e.RealSelection().Range()
	if r.IsEmpty() {
		return ErrNoSelection
	}
	if err := e.clip.WriteText(e.buf.TextRange(r.Start, r.End)); err != nil {
		return err
	}
	if !cut {
		return nil
	}
	return e.edit(r, "")
}

func (e *Engine) paste() error {
	text, err := e.clip.ReadText()
	if err != nil {
		return err
	}
	if text == "" {
		return ErrEmptyClipboard
	}
	return e.insert(text, false)
}

func (e *Engine) cancel() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sel.IsEmpty() {
		return handler.NoOp()
	}
	e.sel = e.sel.Collapse()
	return handler.Success()
}

func (e *Engine) toggle(flag *bool) func(Command) Result {
	return func(Command) Result {
		e.mu.Lock()
		defer e.mu.Unlock()
		*flag = !*flag
		return handler.Success()
	}
}
