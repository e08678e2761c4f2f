package search

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/multicursor/internal/engine/buffer"
	"github.com/dshills/multicursor/internal/log"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Cache lifetimes for compiled patterns.
const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// MatchTimeout bounds a single match attempt.
const MatchTimeout = time.Second

// ErrEmptyPattern is returned when compiling an empty search term.
var ErrEmptyPattern = errors.New("search: empty pattern")

// Options controls how a term matches.
type Options struct {
	MatchCase bool
	WholeWord bool
	Reverse   bool
}

func (o Options) key(term string) string {
	return fmt.Sprintf("%t|%t|%t|%s", o.MatchCase, o.WholeWord, o.Reverse, term)
}

// Source provides the text to search.
type Source interface {
	Text() string
	RevisionID() buffer.RevisionID
}

// Engine searches a Source.
type Engine struct {
	src   Source
	cache *gocache.Cache

	mu      sync.Mutex
	rev     buffer.RevisionID
	runes   []rune
	byteIdx []ByteOffset
	indexed bool
}

// New creates a search engine over src.
func New(src Source) *Engine {
	return &Engine{
		src:   src,
		cache: gocache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

// Compile returns the compiled expression for term, using the cache.
func (e *Engine) Compile(term string, opts Options) (*regexp2.Regexp, error) {
	if term == "" {
		return nil, ErrEmptyPattern
	}

	key := opts.key(term)
	if v, ok := e.cache.Get(key); ok {
		if re, ok := v.(*regexp2.Regexp); ok {
			return re, nil
		}
		log.Error(log.CatSearch, "wrong type in pattern cache", "key", key)
	}

	expr := regexp2.Escape(term)
	if opts.WholeWord {
		expr = `(?<!\w)` + expr + `(?!\w)`
	}
	var flags regexp2.RegexOptions
	if !opts.MatchCase {
		flags |= regexp2.IgnoreCase
	}
	if opts.Reverse {
		flags |= regexp2.RightToLeft
	}

	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", term, err)
	}
	re.MatchTimeout = MatchTimeout
	e.cache.SetDefault(key, re)
	return re, nil
}

// index returns the text as runes together with the byte offset of every
// rune, plus one trailing entry for the end of the text.
func (e *Engine) index() ([]rune, []ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rev := e.src.RevisionID()
	if e.indexed && rev == e.rev {
		return e.runes, e.byteIdx
	}

	text := e.src.Text()
	runes := make([]rune, 0, utf8.RuneCountInString(text))
	byteIdx := make([]ByteOffset, 0, cap(runes)+1)
	for i, r := range text {
		runes = append(runes, r)
		byteIdx = append(byteIdx, ByteOffset(i))
	}
	byteIdx = append(byteIdx, ByteOffset(len(text)))

	e.rev, e.runes, e.byteIdx, e.indexed = rev, runes, byteIdx, true
	return runes, byteIdx
}

// runeIndex converts a byte offset to the index of the first rune starting
// at or after it.
func runeIndex(byteIdx []ByteOffset, offset ByteOffset) int {
	return sort.Search(len(byteIdx), func(i int) bool { return byteIdx[i] >= offset })
}

func toRange(byteIdx []ByteOffset, m *regexp2.Match) Range {
	return Range{Start: byteIdx[m.Index], End: byteIdx[m.Index+m.Length]}
}

// FindNext returns the first match at or after from, or with opts.Reverse
// the last match ending at or before from. With wrap, the search continues
// from the other end of the buffer.
func (e *Engine) FindNext(from ByteOffset, wrap bool, term string, opts Options) (Range, bool) {
	re, err := e.Compile(term, opts)
	if err != nil {
		log.Debug(log.CatSearch, "find skipped", "error", err)
		return Range{}, false
	}
	runes, byteIdx := e.index()

	start := min(runeIndex(byteIdx, max(from, 0)), len(runes))
	m, err := re.FindRunesMatchStartingAt(runes, start)
	if err != nil {
		log.ErrorErr(log.CatSearch, "match failed", err, "term", term)
		return Range{}, false
	}
	if m == nil && wrap {
		restart := 0
		if opts.Reverse {
			restart = len(runes)
		}
		if m, err = re.FindRunesMatchStartingAt(runes, restart); err != nil {
			log.ErrorErr(log.CatSearch, "match failed", err, "term", term)
			return Range{}, false
		}
	}
	if m == nil {
		return Range{}, false
	}
	return toRange(byteIdx, m), true
}

// FindAll returns every non-overlapping match in document order.
func (e *Engine) FindAll(term string, opts Options) []Range {
	opts.Reverse = false
	re, err := e.Compile(term, opts)
	if err != nil {
		return nil
	}
	runes, byteIdx := e.index()

	var found []Range
	m, err := re.FindRunesMatch(runes)
	for m != nil && err == nil {
		found = append(found, toRange(byteIdx, m))
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		log.ErrorErr(log.CatSearch, "match failed", err, "term", term)
	}
	return found
}
