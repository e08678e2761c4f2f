package cursor

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// runeColumns returns the number of display columns r occupies when it
// starts at column col.
func runeColumns(r rune, col, tabSize int) int {
	if r == '\t' {
		if tabSize <= 0 {
			tabSize = 4
		}
		return tabSize - col%tabSize
	}
	w := runewidth.RuneWidth(r)
	if w == 0 && r >= ' ' {
		// Combining marks share the previous cell.
		return 0
	}
	return max(w, 1)
}

// DisplayColumn returns the display column of byte offset byteCol within
// line, expanding tabs to tabSize stops and counting wide runes twice.
func DisplayColumn(line string, byteCol, tabSize int) int {
	col := 0
	for i, r := range line {
		if i >= byteCol {
			break
		}
		col += runeColumns(r, col, tabSize)
	}
	return col
}

// DisplayWidth returns the display width of an entire line.
func DisplayWidth(line string, tabSize int) int {
	return DisplayColumn(line, len(line), tabSize)
}

// ByteColumnForDisplay walks line and returns the byte offset of the first
// rune starting at or after display column target. If target is past the
// end of the line, len(line) is returned.
func ByteColumnForDisplay(line string, target, tabSize int) int {
	col := 0
	for i := 0; i < len(line); {
		if col >= target {
			return i
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		col += runeColumns(r, col, tabSize)
		i += size
	}
	return len(line)
}
