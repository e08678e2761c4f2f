// Package search finds literal occurrences of a search term in a buffer.
//
// Terms are escaped and compiled with regexp2 so that whole-word matching
// can use lookarounds and reverse searches can run right to left from the
// probe. Compiled patterns are cached per term and option set.
//
// Offsets in and out are byte offsets; regexp2 works on rune indexes and
// the Engine converts between the two.
package search
