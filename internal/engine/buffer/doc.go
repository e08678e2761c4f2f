// Package buffer provides the text buffer behind the reference editor view.
//
// The buffer stores its content as an immutable Go string together with a
// line-start index. Every mutation produces a new string and a new revision
// ID, so callers that hold on to a previous Text() value keep a consistent
// copy for free.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between byte offsets and line/column positions
//   - Line ending normalization
//   - Revision IDs for change tracking
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo bar\nfoo baz")
//
//	// Replace the first "foo"
//	end, _ := buf.Replace(0, 3, "xfoo") // end == 4
//
//	// Convert between coordinate systems
//	p := buf.OffsetToPoint(9)   // (1:0)
//	off := buf.PointToOffset(p) // 9
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the buffer
//   - Point: Line and column position (0-indexed, column in bytes)
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
