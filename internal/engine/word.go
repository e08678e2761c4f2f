package engine

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// segment is one word-break segment of a line, in buffer offsets.
type segment struct {
	Range
	word bool
}

// lineSegments splits a line into Unicode word-break segments. Runs of
// letters, digits and underscores are words; whitespace and punctuation
// are not.
func (e *Engine) lineSegments(line uint32) []segment {
	lr := e.LineRange(line)
	text := e.buf.TextRange(lr.Start, lr.End)

	var segs []segment
	offset := lr.Start
	state := -1
	for len(text) > 0 {
		var w string
		w, text, state = uniseg.FirstWordInString(text, state)
		segs = append(segs, segment{
			Range: Range{Start: offset, End: offset + ByteOffset(len(w))},
			word:  isWordSegment(w),
		})
		offset += ByteOffset(len(w))
	}
	return segs
}

func isWordSegment(s string) bool {
	for _, r := range s {
		return isWordRune(r)
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordAt returns the word segment touching offset. A caret right after a
// word belongs to that word.
func (e *Engine) wordAt(offset ByteOffset) (Range, bool) {
	var before Range
	found := false
	for _, seg := range e.lineSegments(e.buf.LineOf(offset)) {
		if !seg.word {
			continue
		}
		if seg.Start <= offset && offset < seg.End {
			return seg.Range, true
		}
		if seg.End == offset {
			before, found = seg.Range, true
		}
	}
	return before, found
}

// wordForward returns the end of the word at or after offset, crossing
// into the next line at a line end.
func (e *Engine) wordForward(offset ByteOffset) ByteOffset {
	line := e.buf.LineOf(offset)
	lineEnd := e.buf.LineEndOffset(line)
	if offset >= lineEnd {
		if line+1 < e.buf.LineCount() {
			return e.buf.LineStartOffset(line + 1)
		}
		return offset
	}
	for _, seg := range e.lineSegments(line) {
		if seg.word && seg.End > offset {
			return seg.End
		}
	}
	return lineEnd
}

// wordBackward returns the start of the word before offset, crossing into
// the previous line at a line start.
func (e *Engine) wordBackward(offset ByteOffset) ByteOffset {
	line := e.buf.LineOf(offset)
	lineStart := e.buf.LineStartOffset(line)
	if offset <= lineStart {
		if line > 0 {
			return e.buf.LineEndOffset(line - 1)
		}
		return offset
	}
	target := lineStart
	for _, seg := range e.lineSegments(line) {
		if seg.Start >= offset {
			break
		}
		if seg.word {
			target = seg.Start
		}
	}
	return target
}

// nextGrapheme returns the offset after the grapheme cluster at offset.
// A line end moves to the start of the next line.
func (e *Engine) nextGrapheme(offset ByteOffset) ByteOffset {
	line := e.buf.LineOf(offset)
	lineEnd := e.buf.LineEndOffset(line)
	if offset >= lineEnd {
		if line+1 < e.buf.LineCount() {
			return e.buf.LineStartOffset(line + 1)
		}
		return offset
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(e.buf.TextRange(offset, lineEnd), -1)
	return offset + ByteOffset(len(cluster))
}

// prevGrapheme returns the start of the grapheme cluster before offset.
// A line start moves to the end of the previous line.
func (e *Engine) prevGrapheme(offset ByteOffset) ByteOffset {
	line := e.buf.LineOf(offset)
	lineStart := e.buf.LineStartOffset(line)
	if offset <= lineStart {
		if line > 0 {
			return e.buf.LineEndOffset(line - 1)
		}
		return offset
	}
	prev := lineStart
	gr := uniseg.NewGraphemes(e.buf.TextRange(lineStart, offset))
	for gr.Next() {
		start, _ := gr.Positions()
		prev = lineStart + ByteOffset(start)
	}
	return prev
}

// graphemeEnd returns the offset n grapheme clusters after offset, not
// crossing the line end.
func (e *Engine) graphemeEnd(offset ByteOffset, n int) ByteOffset {
	lineEnd := e.buf.LineEndOffset(e.buf.LineOf(offset))
	text := e.buf.TextRange(offset, lineEnd)
	state := -1
	for ; n > 0 && len(text) > 0; n-- {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		offset += ByteOffset(len(cluster))
	}
	return offset
}

// leadingWhitespace returns the indentation of s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}
