package tracking

import "sync"

// DefaultMaxChanges is the default maximum number of changes to track.
const DefaultMaxChanges = 10000

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the maximum number of changes to track.
// It must only be used during Tracker creation via NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges > 0 {
			t.maxChanges = maxChanges
		}
	}
}

// trackedChange pairs an edit with the revision it produced.
type trackedChange struct {
	revision RevisionID
	edit     Edit
}

// Tracker records the edits applied to one buffer and resolves positions
// taken at earlier revisions.
type Tracker struct {
	mu sync.RWMutex

	// Recent changes in a ring buffer
	changes    []trackedChange
	head       int // Index of oldest entry
	count      int // Number of entries
	maxChanges int

	// Highest revision that has been pushed out of the ring buffer.
	evicted RevisionID
}

// NewTracker creates a new change tracker with default settings.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{maxChanges: DefaultMaxChanges}

	for _, opt := range opts {
		opt(t)
	}

	t.changes = make([]trackedChange, t.maxChanges)
	return t
}

// Track creates a Position for offset at revision rev.
func (t *Tracker) Track(offset ByteOffset, rev RevisionID) Position {
	return Position{Offset: offset, Revision: rev}
}

// Record records an edit. rev is the revision the buffer reached by
// applying it; revisions must be recorded in increasing order.
func (t *Tracker) Record(rev RevisionID, edit Edit) {
	if edit.IsNoOp() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		// Ring buffer is full, advance head
		t.evicted = t.changes[t.head].revision
		t.head = (t.head + 1) % t.maxChanges
	}

	t.changes[idx] = trackedChange{revision: rev, edit: edit}
}

// Resolve returns the offset pos refers to after every recorded edit.
// ok is false when edits newer than pos were evicted; the returned offset
// then only reflects the retained edits.
func (t *Tracker) Resolve(pos Position) (offset ByteOffset, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	offset = pos.Offset
	for i := 0; i < t.count; i++ {
		tc := t.changes[(t.head+i)%t.maxChanges]
		if tc.revision > pos.Revision {
			offset = TransformOffset(offset, tc.edit)
		}
	}

	return offset, pos.Revision >= t.evicted
}

// ChangesSince returns all edits recorded after a revision, in
// chronological order.
func (t *Tracker) ChangesSince(rev RevisionID) []Edit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []Edit
	for i := 0; i < t.count; i++ {
		tc := t.changes[(t.head+i)%t.maxChanges]
		if tc.revision > rev {
			result = append(result, tc.edit)
		}
	}
	return result
}

// ChangeCount returns the number of tracked changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// Clear removes all tracked changes.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count > 0 {
		t.evicted = t.changes[(t.head+t.count-1)%t.maxChanges].revision
	}
	t.head = 0
	t.count = 0
}
