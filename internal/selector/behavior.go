package selector

import (
	"fmt"
	"maps"
	"sort"
)

// Behavior describes how a command is replayed across units.
type Behavior uint8

// Command behaviors.
const (
	// Replay runs the command once per unit; selections the view leaves
	// behind are dropped.
	Replay Behavior = iota
	// Move runs the command per unit, then strips every range.
	Move
	// VerticalMove is Move with column-preserving caret placement.
	VerticalMove
	// Extend grows or shrinks each unit's range to follow its caret.
	Extend
	// VerticalExtend is Extend with column-preserving caret placement.
	VerticalExtend
	// Adopt takes over the selection the view produced for each unit.
	Adopt
	// MoveLinesUp is Adopt processed from the top of the text down.
	MoveLinesUp
	// MoveLinesDown is Adopt processed from the bottom of the text up.
	MoveLinesDown
	// Cancel leaves multi-cursor mode.
	Cancel
	// Discard leaves multi-cursor mode and runs the command once.
	Discard
	// ViewToggle runs the command once without touching the units.
	ViewToggle
	// Copy copies every unit's range.
	Copy
	// Cut cuts every unit's range.
	Cut
	// Paste distributes the last multi-cursor copy over the units.
	Paste
	// Undo runs the view's undo and restores the matching cursors.
	Undo
	// Redo runs the view's redo and restores the matching cursors.
	Redo
	// PassThrough runs the command once, as if no units existed.
	PassThrough
)

var behaviorNames = [...]string{
	Replay:         "replay",
	Move:           "move",
	VerticalMove:   "verticalMove",
	Extend:         "extend",
	VerticalExtend: "verticalExtend",
	Adopt:          "adopt",
	MoveLinesUp:    "moveLinesUp",
	MoveLinesDown:  "moveLinesDown",
	Cancel:         "cancel",
	Discard:        "discard",
	ViewToggle:     "viewToggle",
	Copy:           "copy",
	Cut:            "cut",
	Paste:          "paste",
	Undo:           "undo",
	Redo:           "redo",
	PassThrough:    "passThrough",
}

// String returns the behavior's configuration name.
func (b Behavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return fmt.Sprintf("Behavior(%d)", b)
}

// ParseBehavior returns the behavior with the given configuration name.
func ParseBehavior(name string) (Behavior, error) {
	for b, n := range behaviorNames {
		if n == name {
			return Behavior(b), nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", name)
}

func (b Behavior) extends() bool  { return b == Extend || b == VerticalExtend }
func (b Behavior) vertical() bool { return b == VerticalMove || b == VerticalExtend }
func (b Behavior) moves() bool    { return b == Move || b == VerticalMove }
func (b Behavior) adopts() bool {
	return b == Adopt || b == MoveLinesUp || b == MoveLinesDown
}

// order returns the order units are processed in.
func (b Behavior) order() processOrder {
	switch b {
	case MoveLinesUp:
		return topToBottom
	case MoveLinesDown:
		return bottomToTop
	default:
		return normalOrder
	}
}

type processOrder uint8

const (
	normalOrder processOrder = iota
	topToBottom
	bottomToTop
)

// CommandTable maps command names to behaviors. Unlisted commands replay.
type CommandTable struct {
	behaviors map[string]Behavior
}

// NewCommandTable creates an empty table.
func NewCommandTable() *CommandTable {
	return &CommandTable{behaviors: make(map[string]Behavior)}
}

// DefaultCommandTable returns the classification of the reference view's
// commands.
func DefaultCommandTable() *CommandTable {
	t := NewCommandTable()
	for name, b := range map[string]Behavior{
		"cursor.moveLeft":      Move,
		"cursor.moveRight":     Move,
		"cursor.wordBackward":  Move,
		"cursor.wordForward":   Move,
		"cursor.moveUp":        VerticalMove,
		"cursor.moveDown":      VerticalMove,
		"cursor.moveLineStart": Discard,
		"cursor.moveLineEnd":   Discard,
		"cursor.pageUp":        Discard,
		"cursor.pageDown":      Discard,

		"select.left":         Extend,
		"select.right":        Extend,
		"select.wordBackward": Extend,
		"select.wordForward":  Extend,
		"select.lineStart":    Extend,
		"select.lineEnd":      Extend,
		"select.up":           VerticalExtend,
		"select.down":         VerticalExtend,

		"editor.toggleComment": Adopt,
		"editor.upperCase":     Adopt,
		"editor.lowerCase":     Adopt,
		"editor.moveLinesUp":   MoveLinesUp,
		"editor.moveLinesDown": MoveLinesDown,
		"editor.copy":          Copy,
		"editor.cut":           Cut,
		"editor.paste":         Paste,
		"editor.undo":          Undo,
		"editor.redo":          Redo,
		"editor.cancel":        Cancel,

		"view.toggleWordWrap":   ViewToggle,
		"view.toggleWhitespace": ViewToggle,
		"view.toggleOvertype":   ViewToggle,
	} {
		t.Set(name, b)
	}
	return t
}

// Set classifies a command.
func (t *CommandTable) Set(name string, b Behavior) {
	t.behaviors[name] = b
}

// Lookup returns the behavior of a command.
func (t *CommandTable) Lookup(name string) Behavior {
	if b, ok := t.behaviors[name]; ok {
		return b
	}
	return Replay
}

// Apply merges overrides of the form name → behavior name. Nothing is
// changed if any behavior name is unknown.
func (t *CommandTable) Apply(overrides map[string]string) error {
	parsed := make(map[string]Behavior, len(overrides))
	for name, bname := range overrides {
		b, err := ParseBehavior(bname)
		if err != nil {
			return fmt.Errorf("command %q: %w", name, err)
		}
		parsed[name] = b
	}
	maps.Copy(t.behaviors, parsed)
	return nil
}

// Names returns the classified command names, sorted.
func (t *CommandTable) Names() []string {
	names := make([]string, 0, len(t.behaviors))
	for name := range t.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (t *CommandTable) Clone() *CommandTable {
	return &CommandTable{behaviors: maps.Clone(t.behaviors)}
}
