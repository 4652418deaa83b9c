package textobject

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textobjects/internal/engine/buffer"
)

// CharAt reads the grapheme cluster at p. The end-of-line column yields the
// empty string, representing the line break (or true end of buffer on the
// last line). An unreadable position yields ok=false; callers treat that as
// "not whitespace" rather than an error.
func CharAt(snap *buffer.Snapshot, p buffer.Point) (string, bool) {
	if p.Row < 0 || p.Row >= snap.LineCount() {
		return "", false
	}
	n := snap.LineLen(p.Row)
	if p.Col < 0 || p.Col > n {
		return "", false
	}
	if p.Col == n {
		return "", true
	}
	c, err := snap.ClusterAt(p.Row, p.Col)
	if err != nil {
		return "", false
	}
	return c, true
}

// IsWhitespaceAfter reports whether the character at p is whitespace for the
// purpose of range extension. The end-of-line sentinel counts as whitespace
// unless p.Row is the last line: there is no newline to cross there, which
// keeps extension from wrapping past the end of the buffer.
func IsWhitespaceAfter(snap *buffer.Snapshot, p buffer.Point) bool {
	c, ok := CharAt(snap, p)
	if !ok {
		return false
	}
	if c == "" {
		return p.Row < snap.LineCount()-1
	}
	r, _ := utf8.DecodeRuneInString(c)
	return unicode.IsSpace(r)
}

// Advance computes the next valid position from p in the given direction,
// or ok=false when the buffer boundary is exhausted.
//
// Forward motion treats end-of-line as a single step to the next line's
// column 0; backward motion treats column 0 as a step to the previous line's
// end column. The two directions are intentionally not symmetric inverses at
// line boundaries: this walks whitespace runs, newlines included, as a flat
// stream of positions.
func Advance(snap *buffer.Snapshot, p buffer.Point, forward bool) (buffer.Point, bool) {
	if p.Row < 0 || p.Row >= snap.LineCount() {
		return buffer.Point{}, false
	}
	if forward {
		if p.Col >= snap.LineLen(p.Row) {
			if p.Row == snap.LineCount()-1 {
				return buffer.Point{}, false
			}
			return buffer.Point{Row: p.Row + 1, Col: 0}, true
		}
		return buffer.Point{Row: p.Row, Col: p.Col + 1}, true
	}
	if p.Col <= 0 {
		if p.Row == 0 {
			return buffer.Point{}, false
		}
		return buffer.Point{Row: p.Row - 1, Col: snap.LineLen(p.Row - 1)}, true
	}
	return buffer.Point{Row: p.Row, Col: p.Col - 1}, true
}
