package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/multicursor/internal/engine/buffer"
	"github.com/dshills/multicursor/internal/engine/cursor"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Target is the document a command operates on.
type Target interface {
	// ApplyEdit applies edit and returns the change that was made.
	ApplyEdit(edit buffer.Edit) (buffer.Change, error)

	// Selection returns the host selection.
	Selection() Selection

	// SetSelection replaces the host selection.
	SetSelection(sel Selection)
}

// Command represents an edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(t Target) error

	// Undo reverses the command and returns an error if it fails.
	Undo(t Target) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand applies a single buffer edit and places the caret after the
// inserted text.
type EditCommand struct {
	Edit buffer.Edit

	change    buffer.Change
	selBefore Selection
	selAfter  Selection
}

// NewEditCommand creates a command for edit.
func NewEditCommand(edit buffer.Edit) *EditCommand {
	return &EditCommand{Edit: edit}
}

// Execute applies the edit.
func (c *EditCommand) Execute(t Target) error {
	c.selBefore = t.Selection()

	change, err := t.ApplyEdit(c.Edit)
	if err != nil {
		return fmt.Errorf("edit at %v: %w", c.Edit.Range, err)
	}
	c.change = change
	c.selAfter = cursor.NewCursorSelection(change.NewRange().End)
	t.SetSelection(c.selAfter)
	return nil
}

// Undo restores the replaced text and the selection from before Execute.
func (c *EditCommand) Undo(t Target) error {
	if _, err := t.ApplyEdit(c.change.Invert().ToEdit()); err != nil {
		return fmt.Errorf("undo edit at %v: %w", c.change.Range, err)
	}
	t.SetSelection(c.selBefore)
	return nil
}

// Change returns the change recorded by the last Execute.
func (c *EditCommand) Change() buffer.Change {
	return c.change
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	text := c.Edit.NewText
	switch {
	case c.Edit.Range.IsEmpty() && text == "\n":
		return "Insert newline"
	case c.Edit.Range.IsEmpty() && text == "\t":
		return "Insert tab"
	case c.Edit.Range.IsEmpty() && utf8.RuneCountInString(text) == 1:
		return fmt.Sprintf("Type '%s'", text)
	case text == "":
		return fmt.Sprintf("Delete %d bytes", c.Edit.Range.Len())
	case c.Edit.Range.IsEmpty() && utf8.RuneCountInString(text) <= 20:
		return fmt.Sprintf("Insert \"%s\"", text)
	case c.Edit.Range.IsEmpty():
		return fmt.Sprintf("Insert %d characters", utf8.RuneCountInString(text))
	}
	return fmt.Sprintf("Replace %d bytes with %d characters", c.Edit.Range.Len(), utf8.RuneCountInString(text))
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(t Target) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(t); err != nil {
			// On error, try to undo what we've done
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(t)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(t Target) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(t); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
