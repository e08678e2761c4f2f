package tracking

import (
	"fmt"

	"github.com/dshills/multicursor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// RevisionID is an alias for buffer.RevisionID for convenience.
type RevisionID = buffer.RevisionID

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// Position is an offset bound to the buffer revision it was created at.
type Position struct {
	Offset   ByteOffset
	Revision RevisionID
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d@r%d", p.Offset, p.Revision)
}

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit ends at or before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}

	if edit.Range.Start >= offset {
		return offset
	}

	return edit.Range.Start + ByteOffset(len(edit.NewText))
}
