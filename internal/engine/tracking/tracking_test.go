package tracking

import (
	"testing"

	"github.com/dshills/multicursor/internal/engine/buffer"
)

func TestTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset ByteOffset
		edit   Edit
		want   ByteOffset
	}{
		{"insert before", 10, buffer.NewInsert(2, "abc"), 13},
		{"insert at offset pushes forward", 10, buffer.NewInsert(10, "abc"), 13},
		{"insert after", 10, buffer.NewInsert(11, "abc"), 10},
		{"delete before", 10, buffer.NewDelete(2, 5), 7},
		{"delete ending at offset", 10, buffer.NewDelete(7, 10), 7},
		{"delete starting at offset", 10, buffer.NewDelete(10, 12), 10},
		{"delete spanning offset", 10, buffer.NewDelete(8, 12), 8},
		{"replace spanning offset", 10, Edit{Range: buffer.Range{Start: 8, End: 12}, NewText: "xyz"}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.edit); got != tt.want {
				t.Errorf("TransformOffset(%d, %v) = %d, want %d", tt.offset, tt.edit, got, tt.want)
			}
		})
	}
}

func TestTrackerResolve(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")
	tr := NewTracker()

	first := tr.Track(0, buf.RevisionID())
	second := tr.Track(8, buf.RevisionID())

	apply := func(e Edit) {
		t.Helper()
		if _, err := buf.ApplyEdit(e); err != nil {
			t.Fatalf("apply %v: %v", e, err)
		}
		tr.Record(buf.RevisionID(), e)
	}

	apply(buffer.NewInsert(0, "x"))
	late := tr.Track(9, buf.RevisionID())
	apply(buffer.NewInsert(9, "x"))

	tests := []struct {
		name string
		pos  Position
		want ByteOffset
	}{
		{"first", first, 1},
		{"second", second, 10},
		{"taken mid-way", late, 10},
	}
	for _, tt := range tests {
		got, ok := tr.Resolve(tt.pos)
		if !ok {
			t.Errorf("%s: resolve reported eviction", tt.name)
		}
		if got != tt.want {
			t.Errorf("%s: Resolve = %d, want %d", tt.name, got, tt.want)
		}
	}

	if buf.Text() != "xfoo bar xfoo" {
		t.Errorf("unexpected text %q", buf.Text())
	}
}

func TestTrackerEviction(t *testing.T) {
	tr := NewTracker(WithMaxChanges(2))

	old := tr.Track(5, 0)
	tr.Record(1, buffer.NewInsert(0, "a"))
	tr.Record(2, buffer.NewInsert(0, "b"))
	tr.Record(3, buffer.NewInsert(0, "c"))

	if tr.ChangeCount() != 2 {
		t.Fatalf("expected 2 retained changes, got %d", tr.ChangeCount())
	}

	got, ok := tr.Resolve(old)
	if ok {
		t.Error("expected eviction to be reported")
	}
	if got != 7 {
		t.Errorf("best effort offset = %d, want 7", got)
	}

	recent := tr.Track(5, 2)
	if got, ok := tr.Resolve(recent); !ok || got != 6 {
		t.Errorf("Resolve(recent) = %d, %v; want 6, true", got, ok)
	}
}

func TestTrackerChangesSince(t *testing.T) {
	tr := NewTracker()
	tr.Record(1, buffer.NewInsert(0, "a"))
	tr.Record(2, buffer.NewInsert(1, "b"))
	tr.Record(3, buffer.NewInsert(2, "c"))
	tr.Record(4, buffer.NewInsert(3, "")) // no-op, ignored

	got := tr.ChangesSince(1)
	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0].NewText != "b" || got[1].NewText != "c" {
		t.Errorf("changes out of order: %v", got)
	}

	tr.Clear()
	if tr.ChangeCount() != 0 {
		t.Error("Clear should drop all changes")
	}
	if _, ok := tr.Resolve(tr.Track(0, 1)); ok {
		t.Error("positions older than a Clear should report eviction")
	}
}
