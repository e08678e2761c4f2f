package main

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine"
	"github.com/dshills/multicursor/internal/selector"
)

// Script is a list of steps run against one view.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one action. Exactly one action field must be set, except that
// Text is the argument of Command when both are given.
type Step struct {
	// Command runs a named view command through the selector.
	Command string `yaml:"command,omitempty"`
	// Text types text at every cursor, or is the argument of Command.
	Text *string `yaml:"text,omitempty"`

	SelectNext     bool `yaml:"selectNext,omitempty"`
	SelectPrevious bool `yaml:"selectPrevious,omitempty"`
	SelectAll      bool `yaml:"selectAll,omitempty"`
	Skip           bool `yaml:"skip,omitempty"`
	UndoOccurrence bool `yaml:"undoOccurrence,omitempty"`
	CaretAbove     bool `yaml:"caretAbove,omitempty"`
	CaretBelow     bool `yaml:"caretBelow,omitempty"`
	Convert        bool `yaml:"convert,omitempty"`

	MoveCaret *int64      `yaml:"moveCaret,omitempty"`
	Select    *SelectStep `yaml:"select,omitempty"`
	Click     *ClickStep  `yaml:"click,omitempty"`

	// Exact makes selectNext and selectPrevious match case and whole words.
	Exact bool `yaml:"exact,omitempty"`
	// Backward makes skip search backward.
	Backward bool `yaml:"backward,omitempty"`
	// Repeat runs the step this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`
}

// SelectStep selects a range in the view.
type SelectStep struct {
	Start    int64 `yaml:"start"`
	End      int64 `yaml:"end"`
	Reversed bool  `yaml:"reversed,omitempty"`
}

// ClickStep clicks at an offset.
type ClickStep struct {
	Offset int64 `yaml:"offset"`
	Alt    bool  `yaml:"alt,omitempty"`
}

// ErrInvalidStep indicates a step without exactly one action.
var ErrInvalidStep = errors.New("step must have exactly one action")

// ParseScript decodes a YAML script and validates every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range s.Steps {
		if _, err := step.action(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// action returns the name of the step's single action.
func (s Step) action() (string, error) {
	var actions []string
	add := func(set bool, name string) {
		if set {
			actions = append(actions, name)
		}
	}
	add(s.Command != "", "command")
	add(s.Text != nil && s.Command == "", "text")
	add(s.SelectNext, "selectNext")
	add(s.SelectPrevious, "selectPrevious")
	add(s.SelectAll, "selectAll")
	add(s.Skip, "skip")
	add(s.UndoOccurrence, "undoOccurrence")
	add(s.CaretAbove, "caretAbove")
	add(s.CaretBelow, "caretBelow")
	add(s.Convert, "convert")
	add(s.MoveCaret != nil, "moveCaret")
	add(s.Select != nil, "select")
	add(s.Click != nil, "click")

	if len(actions) != 1 {
		return "", fmt.Errorf("%w, got [%s]", ErrInvalidStep, strings.Join(actions, " "))
	}
	return actions[0], nil
}

// Run executes the step on e. The last result is returned.
func (s Step) Run(e *engine.Engine) (handler.Result, error) {
	name, err := s.action()
	if err != nil {
		return handler.Result{}, err
	}

	var res handler.Result
	for i := 0; i < max(1, s.Repeat); i++ {
		res = s.runOnce(name, e)
		if res.IsError() {
			return res, fmt.Errorf("%s: %w", name, res.Error)
		}
	}
	return res, nil
}

func (s Step) runOnce(name string, e *engine.Engine) handler.Result {
	sel := e.Selector()
	dir := selector.Forward
	if s.Backward {
		dir = selector.Backward
	}

	switch name {
	case "command":
		cmd := engine.Command{Name: s.Command}
		if s.Text != nil {
			cmd.Text = *s.Text
		}
		return e.Execute(cmd)
	case "text":
		return e.Type(*s.Text)
	case "selectNext":
		return sel.SelectOccurrence(selector.Forward, s.Exact)
	case "selectPrevious":
		return sel.SelectOccurrence(selector.Backward, s.Exact)
	case "selectAll":
		return sel.SelectAllOccurrences()
	case "skip":
		return sel.SkipOccurrence(dir)
	case "undoOccurrence":
		return sel.UndoOccurrence()
	case "caretAbove":
		return sel.AddCaretAbove()
	case "caretBelow":
		return sel.AddCaretBelow()
	case "convert":
		return sel.ConvertSelectionToCursors()
	case "moveCaret":
		e.MoveCaret(*s.MoveCaret, 0)
	case "select":
		e.Select(engine.Range{Start: s.Select.Start, End: s.Select.End}, s.Select.Reversed)
	case "click":
		e.Click(s.Click.Offset, s.Click.Alt)
	}
	return handler.Success()
}
