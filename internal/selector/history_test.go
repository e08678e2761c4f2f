package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/multicursor/internal/engine/cursor"
)

func states(carets ...ByteOffset) []cursor.State {
	out := make([]cursor.State, len(carets))
	for i, c := range carets {
		out[i] = cursor.State{Caret: c}
	}
	return out
}

func TestHistoryManagerSave(t *testing.T) {
	h := NewHistoryManager()

	h.Store(0, states(1, 5))
	require.True(t, h.Save(1, states(2, 7)))
	assert.Equal(t, 1, h.StoredVersion())

	undo, err := h.UndoSnapshot(0)
	require.NoError(t, err)
	assert.Equal(t, states(1, 5), undo.Units)

	redo, err := h.RedoSnapshot(1)
	require.NoError(t, err)
	assert.Equal(t, states(2, 7), redo.Units)
}

func TestHistoryManagerIgnoresUnchangedVersion(t *testing.T) {
	h := NewHistoryManager()

	h.Store(3, states(1))
	assert.False(t, h.Save(3, states(9)), "same version records nothing")
	assert.False(t, h.Save(2, states(9)), "older version records nothing")

	_, err := h.UndoSnapshot(3)
	assert.ErrorIs(t, err, ErrHistorySnapshotMissing)
}

func TestHistoryManagerStoreCopies(t *testing.T) {
	h := NewHistoryManager()
	units := states(4)

	h.Store(0, units)
	units[0].Caret = 99
	require.True(t, h.Save(1, states(5)))

	undo, err := h.UndoSnapshot(0)
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(4), undo.Units[0].Caret)
}
