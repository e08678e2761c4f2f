package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	text, err := m.ReadText()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, m.WriteText("cat\ndog"))
	text, err = m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "cat\ndog", text)
}

func TestSystemFallsBackWithoutOSClipboard(t *testing.T) {
	if Available() {
		t.Skip("OS clipboard present; fallback path not reachable")
	}
	s := NewSystem()

	require.NoError(t, s.WriteText("kept"))
	text, err := s.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}
