package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(uint32(i)); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestBufferTrailingNewline(t *testing.T) {
	b := NewBufferFromString("abc\n")

	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.LineCount())
	}
	if b.LineText(1) != "" {
		t.Errorf("expected empty last line, got %q", b.LineText(1))
	}
	if b.LineStartOffset(1) != 4 || b.LineEndOffset(1) != 4 {
		t.Errorf("last line bounds = [%d,%d), want [4,4)", b.LineStartOffset(1), b.LineEndOffset(1))
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	if _, err := b.Insert(100, "X"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if _, err := b.Insert(-1, "X"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferDeleteInvalidRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	if err := b.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := b.Delete(0, 100); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBufferApplyEditReturnsChange(t *testing.T) {
	b := NewBufferFromString("Hello World")

	change, err := b.ApplyEdit(Edit{Range: Range{Start: 6, End: 11}, NewText: "Go"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if change.OldText != "World" {
		t.Errorf("OldText = %q, want World", change.OldText)
	}
	if got := change.NewRange(); got != (Range{Start: 6, End: 8}) {
		t.Errorf("NewRange = %v, want [6:8)", got)
	}

	inv := change.Invert()
	if _, err := b.ApplyEdit(inv.ToEdit()); err != nil {
		t.Fatalf("apply inverse failed: %v", err)
	}
	if b.Text() != "Hello World" {
		t.Errorf("inverse did not restore text: %q", b.Text())
	}
}

func TestBufferLineStartEnd(t *testing.T) {
	b := NewBufferFromString("abc\ndefgh\nij")

	tests := []struct {
		line          uint32
		expectedStart ByteOffset
		expectedEnd   ByteOffset
	}{
		{0, 0, 3},
		{1, 4, 9},
		{2, 10, 12},
	}

	for _, tt := range tests {
		if start := b.LineStartOffset(tt.line); start != tt.expectedStart {
			t.Errorf("LineStartOffset(%d) = %d, want %d", tt.line, start, tt.expectedStart)
		}
		if end := b.LineEndOffset(tt.line); end != tt.expectedEnd {
			t.Errorf("LineEndOffset(%d) = %d, want %d", tt.line, end, tt.expectedEnd)
		}
	}
}

func TestBufferOffsetToPoint(t *testing.T) {
	b := NewBufferFromString("abc\ndefgh\nij")

	tests := []struct {
		offset   ByteOffset
		expected Point
	}{
		{0, Point{Line: 0, Column: 0}},
		{3, Point{Line: 0, Column: 3}},
		{4, Point{Line: 1, Column: 0}},
		{7, Point{Line: 1, Column: 3}},
		{10, Point{Line: 2, Column: 0}},
		{12, Point{Line: 2, Column: 2}},
		{99, Point{Line: 2, Column: 2}},
	}

	for _, tt := range tests {
		if got := b.OffsetToPoint(tt.offset); got != tt.expected {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.expected)
		}
	}
}

func TestBufferPointToOffset(t *testing.T) {
	b := NewBufferFromString("abc\ndefgh\nij")

	tests := []struct {
		point    Point
		expected ByteOffset
	}{
		{Point{Line: 0, Column: 0}, 0},
		{Point{Line: 1, Column: 2}, 6},
		{Point{Line: 0, Column: 10}, 3}, // clamped to line end
		{Point{Line: 5, Column: 0}, 12},
	}

	for _, tt := range tests {
		if got := b.PointToOffset(tt.point); got != tt.expected {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.expected)
		}
	}
}

func TestBufferLineEndingNormalization(t *testing.T) {
	b := NewBufferFromString("line1\r\nline2\r\n")
	if b.Text() != "line1\nline2\n" {
		t.Errorf("CRLF not normalized to LF: got %q", b.Text())
	}

	b = NewBufferFromString("line1\rline2\r")
	if b.Text() != "line1\nline2\n" {
		t.Errorf("CR not normalized to LF: got %q", b.Text())
	}
}

func TestBufferWithCRLFLineEnding(t *testing.T) {
	b := NewBufferFromString("line1\nline2", WithLineEnding(LineEndingCRLF))

	if b.Text() != "line1\r\nline2" {
		t.Errorf("expected CRLF, got %q", b.Text())
	}
	if b.LineText(0) != "line1" {
		t.Errorf("LineText(0) = %q, want line1", b.LineText(0))
	}

	b.Insert(b.Len(), "\nline3")
	if want := "line1\r\nline2\r\nline3"; b.Text() != want {
		t.Errorf("expected %q, got %q", want, b.Text())
	}
}

func TestBufferRevisionID(t *testing.T) {
	b := NewBuffer()
	rev1 := b.RevisionID()

	b.Insert(0, "Hello")
	rev2 := b.RevisionID()
	if rev2 <= rev1 {
		t.Error("revision ID should increase after insert")
	}

	b.Delete(0, 5)
	if b.RevisionID() <= rev2 {
		t.Error("revision ID should increase after delete")
	}
}

func TestBufferRuneNeighbours(t *testing.T) {
	b := NewBufferFromString("aé")

	if r, size := b.RuneAt(1); r != 'é' || size != 2 {
		t.Errorf("RuneAt(1) = %q/%d", r, size)
	}
	if r, size := b.RuneBefore(3); r != 'é' || size != 2 {
		t.Errorf("RuneBefore(3) = %q/%d", r, size)
	}
	if _, size := b.RuneBefore(0); size != 0 {
		t.Errorf("RuneBefore(0) size = %d, want 0", size)
	}
}

func TestBufferConcurrentReadWrite(t *testing.T) {
	b := NewBufferFromString("Hello")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				b.Insert(0, "X")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = b.Text()
				_ = b.LineCount()
			}
		}()
	}
	wg.Wait()

	if xCount := strings.Count(b.Text(), "X"); xCount != 100 {
		t.Errorf("expected 100 X's, got %d", xCount)
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text     string
		expected LineEnding
	}{
		{"no newlines", LineEndingLF},
		{"unix\nstyle\n", LineEndingLF},
		{"windows\r\nstyle\r\n", LineEndingCRLF},
		{"old mac\rstyle\r", LineEndingCR},
		{"mixed\r\nmore\nlines", LineEndingCRLF},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.expected {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestRangeOperations(t *testing.T) {
	r1 := Range{Start: 0, End: 10}
	r2 := Range{Start: 5, End: 15}
	r3 := Range{Start: 10, End: 30}

	if !r1.Overlaps(r2) {
		t.Error("r1 should overlap r2")
	}
	if r1.Overlaps(r3) {
		t.Error("adjacent ranges should not overlap")
	}
	if r1.Contains(10) {
		t.Error("r1 should not contain 10 (exclusive end)")
	}
	if u := r1.Union(r2); u != (Range{Start: 0, End: 15}) {
		t.Errorf("union should be [0:15), got %v", u)
	}
	if n := NewRange(7, 3); n != (Range{Start: 3, End: 7}) {
		t.Errorf("NewRange should normalize, got %v", n)
	}
}
