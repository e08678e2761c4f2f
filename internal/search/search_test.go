package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/multicursor/internal/engine/buffer"
)

func newEngine(text string) (*Engine, *buffer.Buffer) {
	buf := buffer.NewBufferFromString(text)
	return New(buf), buf
}

func TestFindNextForward(t *testing.T) {
	e, _ := newEngine("foo bar foo baz foo")

	r, ok := e.FindNext(1, false, "foo", Options{})
	require.True(t, ok)
	assert.Equal(t, Range{Start: 8, End: 11}, r)

	r, ok = e.FindNext(8, false, "foo", Options{})
	require.True(t, ok)
	assert.Equal(t, Range{Start: 8, End: 11}, r, "a match starting at the probe counts")

	_, ok = e.FindNext(17, false, "foo", Options{})
	assert.False(t, ok)

	r, ok = e.FindNext(17, true, "foo", Options{})
	require.True(t, ok)
	assert.Equal(t, Range{Start: 0, End: 3}, r, "wraps to the first match")
}

func TestFindNextReverse(t *testing.T) {
	e, _ := newEngine("foo bar foo baz foo")
	rev := Options{Reverse: true}

	r, ok := e.FindNext(16, false, "foo", rev)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 8, End: 11}, r)

	r, ok = e.FindNext(11, false, "foo", rev)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 8, End: 11}, r, "a match ending at the probe counts")

	_, ok = e.FindNext(2, false, "foo", rev)
	assert.False(t, ok)

	r, ok = e.FindNext(2, true, "foo", rev)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 16, End: 19}, r, "wraps to the last match")
}

func TestFindOptions(t *testing.T) {
	e, _ := newEngine("Foo food foo")

	r, ok := e.FindNext(0, false, "foo", Options{})
	require.True(t, ok)
	assert.Equal(t, ByteOffset(0), r.Start, "case-insensitive by default")

	r, ok = e.FindNext(0, false, "foo", Options{MatchCase: true})
	require.True(t, ok)
	assert.Equal(t, ByteOffset(4), r.Start)

	r, ok = e.FindNext(1, false, "foo", Options{WholeWord: true})
	require.True(t, ok)
	assert.Equal(t, ByteOffset(9), r.Start, "food is not a whole word match")
}

func TestFindLiteralMetacharacters(t *testing.T) {
	e, _ := newEngine("a.b a*b a.b")

	all := e.FindAll("a.b", Options{})
	assert.Equal(t, []Range{{Start: 0, End: 3}, {Start: 8, End: 11}}, all)

	r, ok := e.FindNext(0, false, "a*b", Options{WholeWord: true})
	require.True(t, ok)
	assert.Equal(t, Range{Start: 4, End: 7}, r)
}

func TestFindMultibyteOffsets(t *testing.T) {
	e, _ := newEngine("héllo wörld héllo")

	all := e.FindAll("héllo", Options{MatchCase: true})
	require.Len(t, all, 2)
	assert.Equal(t, Range{Start: 0, End: 6}, all[0])
	assert.Equal(t, Range{Start: 14, End: 20}, all[1])

	r, ok := e.FindNext(1, false, "héllo", Options{})
	require.True(t, ok)
	assert.Equal(t, all[1], r)
}

func TestFindTracksBufferChanges(t *testing.T) {
	e, buf := newEngine("abc")

	_, ok := e.FindNext(0, false, "xyz", Options{})
	require.False(t, ok)

	_, err := buf.Insert(3, " xyz")
	require.NoError(t, err)

	r, ok := e.FindNext(0, false, "xyz", Options{})
	require.True(t, ok)
	assert.Equal(t, Range{Start: 4, End: 7}, r)
}

func TestEmptyPattern(t *testing.T) {
	e, _ := newEngine("abc")

	_, err := e.Compile("", Options{})
	assert.ErrorIs(t, err, ErrEmptyPattern)
	_, ok := e.FindNext(0, true, "", Options{})
	assert.False(t, ok)
	assert.Empty(t, e.FindAll("", Options{}))
}

func TestCompileCaches(t *testing.T) {
	e, _ := newEngine("abc")

	a, err := e.Compile("b", Options{})
	require.NoError(t, err)
	b, err := e.Compile("b", Options{})
	require.NoError(t, err)
	c, err := e.Compile("b", Options{MatchCase: true})
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestCompileSetsMatchTimeout(t *testing.T) {
	e, _ := newEngine("abc")

	re, err := e.Compile("b", Options{WholeWord: true, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, MatchTimeout, re.MatchTimeout)
}

// ===========================================================================
// Property-Based Tests (using pgregory.net/rapid)
// ===========================================================================

func TestProperty_FindAllMatchesAreDisjointAndExact(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.RuneFrom([]rune("abé ")), 0, 40, -1).Draw(rt, "text")
		term := rapid.StringOfN(rapid.RuneFrom([]rune("abé")), 1, 3, -1).Draw(rt, "term")

		e, _ := newEngine(text)
		all := e.FindAll(term, Options{MatchCase: true})

		for i, r := range all {
			require.Equal(rt, term, text[r.Start:r.End])
			if i > 0 {
				require.LessOrEqual(rt, all[i-1].End, r.Start)
			}
		}
	})
}

func TestProperty_FindNextReturnsFirstAtOrAfter(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.RuneFrom([]rune("ab ")), 0, 40, -1).Draw(rt, "text")
		term := rapid.StringOfN(rapid.RuneFrom([]rune("ab")), 1, 2, -1).Draw(rt, "term")
		from := ByteOffset(rapid.IntRange(0, len(text)).Draw(rt, "from"))

		e, _ := newEngine(text)
		r, ok := e.FindNext(from, false, term, Options{MatchCase: true})

		// Reference: the first byte position at or after from where term occurs.
		want := -1
		for i := int(from); i+len(term) <= len(text); i++ {
			if text[i:i+len(term)] == term {
				want = i
				break
			}
		}
		if want < 0 {
			require.False(rt, ok)
			return
		}
		require.True(rt, ok)
		require.Equal(rt, ByteOffset(want), r.Start)
	})
}
