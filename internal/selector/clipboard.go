package selector

import (
	"strings"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/log"
)

// clipboardSeparator joins multi-cursor clipboard entries.
const clipboardSeparator = "\n"

// copyCut copies or cuts every ranged unit in text order. The texts are
// kept as the multi-cursor clipboard and placed on the system clipboard
// joined by newlines.
func (s *Selector) copyCut(cmd Command) Result {
	if s.set.Len() == 1 {
		return s.view.Exec(cmd)
	}

	result := handler.NoOpWithReason(ErrNoSelection)

	s.openUndoContext(cmd.Name)
	var texts []string
	for _, u := range s.set.SortedByCaret(s.view, false) {
		span, ok := u.Span(s.view)
		if !ok || span.IsEmpty() {
			continue
		}
		s.view.Select(span, false)
		if text := s.view.Text(span); text != "" {
			texts = append(texts, text)
			u.CopiedText = text
		}
		result = s.view.Exec(cmd)
	}
	s.lastClipboard = texts

	if s.clipboard != nil {
		if err := s.clipboard.WriteText(strings.Join(texts, clipboardSeparator)); err != nil {
			log.ErrorErr(log.CatClipboard, "clipboard write failed", err, "selector", s.id)
		}
	}
	// Cut leaves empty ranges behind. Clear them before the set is saved
	// so redo restores carets.
	for _, u := range s.set.Units() {
		if span, ok := u.Span(s.view); ok && span.IsEmpty() {
			u.ClearRange()
		}
	}
	s.closeUndoContext()
	s.parkOnLast()

	log.Debug(log.CatClipboard, "multi copy", "selector", s.id, "command", cmd.Name, "entries", len(texts))
	return result
}

// useLastClipboard reports whether a paste should distribute the last
// multi-cursor copy. A clipboard changed elsewhere invalidates it.
func (s *Selector) useLastClipboard() bool {
	if len(s.lastClipboard) == 0 || s.clipboard == nil {
		return false
	}
	text, err := s.clipboard.ReadText()
	if err != nil {
		log.ErrorErr(log.CatClipboard, "clipboard read failed", err, "selector", s.id)
		return false
	}
	if text != strings.Join(s.lastClipboard, clipboardSeparator) {
		s.lastClipboard = nil
		return false
	}
	return true
}

// multiPaste inserts one clipboard entry per unit in text order. Units past
// the last entry are left alone.
func (s *Selector) multiPaste() Result {
	s.openUndoContext("paste")
	for i, u := range s.set.SortedByCaret(s.view, false) {
		if i == len(s.lastClipboard) {
			break
		}
		text := s.lastClipboard[i]
		if text == "" {
			continue
		}
		if span, ok := u.Span(s.view); ok && !span.IsEmpty() {
			s.view.Select(span, false)
		} else {
			s.view.MoveCaret(u.CaretOffset(s.view), u.VirtualSpaces)
		}
		s.view.InsertText(text)
		u.ClearRange()
		u.VirtualSpaces = 0
	}
	s.closeUndoContext()

	s.parkOnLast()
	return handler.Success()
}
