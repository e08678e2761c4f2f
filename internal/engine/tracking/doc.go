// Package tracking keeps buffer positions valid across edits.
//
// A [Position] is an offset paired with the buffer revision it was taken
// at. It is a plain value: it holds no pointer into the buffer and never
// goes stale. To learn where a Position sits in the current text, ask the
// [Tracker] that recorded the buffer's edits to resolve it; the tracker
// replays every edit made after the Position's revision through
// [TransformOffset].
//
// # Usage
//
//	tracker := tracking.NewTracker()
//
//	pos := tracker.Track(10, buf.RevisionID())
//
//	change, _ := buf.ApplyEdit(buffer.NewInsert(0, "abc"))
//	tracker.Record(buf.RevisionID(), change.ToEdit())
//
//	off, ok := tracker.Resolve(pos) // 13, true
//
// # Tracking mode
//
// Positions track positively: text inserted exactly at a position pushes
// it forward, and a position inside a replaced span moves to the end of
// the replacement text.
//
// # Retention
//
// Edits are kept in a bounded ring buffer (see [WithMaxChanges]). A
// Position older than the oldest retained edit can no longer be resolved
// exactly; Resolve reports this with ok == false and returns the best
// effort offset.
//
// # Thread Safety
//
// All Tracker operations are thread-safe through internal locking.
package tracking
