package selector

import (
	"fmt"
	"slices"

	"github.com/dshills/multicursor/internal/engine/cursor"
)

// HistorySnapshot is the cursor set recorded for one view version.
type HistorySnapshot struct {
	Version int
	Units   []cursor.State
}

// HistoryManager records cursor sets keyed by view version.
//
// Before a command runs, Store remembers the current set. After it ran,
// Save files the remembered set as the undo target of the old version and
// the new set as the redo target of the new version. Commands that did not
// change the version leave both maps untouched.
type HistoryManager struct {
	undo   map[int]HistorySnapshot
	redo   map[int]HistorySnapshot
	stored HistorySnapshot
}

// NewHistoryManager creates an empty manager.
func NewHistoryManager() *HistoryManager {
	return &HistoryManager{
		undo: make(map[int]HistorySnapshot),
		redo: make(map[int]HistorySnapshot),
	}
}

// Store remembers units as the set at version.
func (h *HistoryManager) Store(version int, units []cursor.State) {
	h.stored = HistorySnapshot{Version: version, Units: slices.Clone(units)}
}

// Save records units as the set at version. It reports whether anything
// was recorded, which happens only when version is newer than the stored
// one.
func (h *HistoryManager) Save(version int, units []cursor.State) bool {
	if version <= h.stored.Version {
		return false
	}
	h.undo[h.stored.Version] = h.stored
	h.Store(version, units)
	h.redo[version] = h.stored
	return true
}

// StoredVersion returns the version of the stored set.
func (h *HistoryManager) StoredVersion() int {
	return h.stored.Version
}

// UndoSnapshot returns the set to restore after undoing back to version.
func (h *HistoryManager) UndoSnapshot(version int) (HistorySnapshot, error) {
	return lookupSnapshot(h.undo, version)
}

// RedoSnapshot returns the set to restore after redoing up to version.
func (h *HistoryManager) RedoSnapshot(version int) (HistorySnapshot, error) {
	return lookupSnapshot(h.redo, version)
}

func lookupSnapshot(m map[int]HistorySnapshot, version int) (HistorySnapshot, error) {
	snap, ok := m[version]
	if !ok {
		return HistorySnapshot{}, fmt.Errorf("version %d: %w", version, ErrHistorySnapshotMissing)
	}
	return snap, nil
}
