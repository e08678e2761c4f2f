// Package clipboard provides clipboard access for the reference editor.
//
// System talks to the OS clipboard and keeps an in-process copy that it
// falls back to when no OS clipboard is reachable, e.g. on a headless CI
// machine. Memory never touches the OS and is what tests use.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/multicursor/internal/log"
)

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText returns the stored text.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText replaces the stored text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// System is the OS clipboard with an in-process fallback.
type System struct {
	fallback Memory
}

// NewSystem creates a clipboard backed by the OS.
func NewSystem() *System {
	return &System{}
}

// Available reports whether an OS clipboard can be used.
func Available() bool {
	return !clipboard.Unsupported
}

// ReadText reads the OS clipboard. If that fails, the last text written
// through this clipboard is returned.
func (s *System) ReadText() (string, error) {
	if Available() {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, nil
		}
		log.Warn(log.CatClipboard, "system read failed, using fallback", "error", err)
	}
	return s.fallback.ReadText()
}

// WriteText writes the OS clipboard and always updates the fallback copy.
// OS failures are logged, never returned.
func (s *System) WriteText(text string) error {
	_ = s.fallback.WriteText(text)

	if !Available() {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Warn(log.CatClipboard, "system write failed, kept in memory", "error", err)
	}
	return nil
}
