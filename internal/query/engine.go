package query

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textobjects/internal/engine/buffer"
	"github.com/dshills/textobjects/internal/textobject"
)

// Query identifiers the engine understands.
const (
	QueryWord      = "word"
	QueryWORD      = "WORD"
	QueryLine      = "line"
	QueryParagraph = "paragraph"
	QueryQuote     = "quote"
	QueryBlock     = "block"
)

// Engine locates textobjects by scanning a snapshot around the cursor.
// It implements the resolver's query collaborator and the keymap glue's
// query set.
type Engine struct{}

// NewEngine creates a scanning engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Defines reports whether the engine understands a query identifier.
func (e *Engine) Defines(queryID string) bool {
	switch queryID {
	case QueryWord, QueryWORD, QueryLine, QueryParagraph, QueryQuote, QueryBlock:
		return true
	}
	return false
}

// FindTextobjectAt locates a candidate range for the query at or near the
// cursor. The search window bounds how many lines beyond the cursor the
// word-like queries look for a candidate.
func (e *Engine) FindTextobjectAt(snap *buffer.Snapshot, cursor buffer.Point, queryID string, window textobject.SearchWindow) (*buffer.Snapshot, buffer.Range, bool) {
	if snap == nil || cursor.Row < 0 || cursor.Row >= snap.LineCount() {
		return nil, buffer.Range{}, false
	}

	var r buffer.Range
	var found bool
	switch queryID {
	case QueryWord:
		r, found = findRun(snap, cursor, window, isWordCluster)
	case QueryWORD:
		r, found = findRun(snap, cursor, window, isGraphicCluster)
	case QueryLine:
		r, found = findLine(snap, cursor)
	case QueryParagraph:
		r, found = findParagraph(snap, cursor, window)
	case QueryQuote:
		r, found = findQuote(snap, cursor, window)
	case QueryBlock:
		r, found = findBlock(snap, cursor)
	}
	if !found {
		return nil, buffer.Range{}, false
	}
	return snap, r, true
}

// findRun expands a run of member clusters at or after the cursor.
// Runs never cross line boundaries.
func findRun(snap *buffer.Snapshot, cursor buffer.Point, window textobject.SearchWindow, member func(string) bool) (buffer.Range, bool) {
	p, ok := seek(snap, cursor, window, member)
	if !ok {
		return buffer.Range{}, false
	}

	start := p
	for start.Col > 0 {
		prev := buffer.Point{Row: start.Row, Col: start.Col - 1}
		c, ok := textobject.CharAt(snap, prev)
		if !ok || !member(c) {
			break
		}
		start = prev
	}

	end := p
	for end.Col < snap.LineLen(end.Row) {
		c, ok := textobject.CharAt(snap, end)
		if !ok || !member(c) {
			break
		}
		end.Col++
	}

	return buffer.Range{Start: start, End: end}, true
}

// seek returns the first position at or after the cursor whose cluster is a
// member, looking ahead at most window.Lookahead lines, then at most
// window.Lookbehind lines backward from the cursor.
func seek(snap *buffer.Snapshot, cursor buffer.Point, window textobject.SearchWindow, member func(string) bool) (buffer.Point, bool) {
	if c, ok := textobject.CharAt(snap, cursor); ok && member(c) {
		return cursor, true
	}

	p := cursor
	for {
		next, ok := textobject.Advance(snap, p, true)
		if !ok || next.Row > cursor.Row+window.Lookahead {
			break
		}
		p = next
		if c, ok := textobject.CharAt(snap, p); ok && member(c) {
			return p, true
		}
	}

	p = cursor
	for {
		prev, ok := textobject.Advance(snap, p, false)
		if !ok || prev.Row < cursor.Row-window.Lookbehind {
			break
		}
		p = prev
		if c, ok := textobject.CharAt(snap, p); ok && member(c) {
			return p, true
		}
	}

	return buffer.Point{}, false
}

// findLine covers the cursor's entire line.
func findLine(snap *buffer.Snapshot, cursor buffer.Point) (buffer.Range, bool) {
	return buffer.Range{
		Start: buffer.Point{Row: cursor.Row, Col: 0},
		End:   buffer.Point{Row: cursor.Row, Col: snap.LineLen(cursor.Row)},
	}, true
}

// findParagraph covers the blank-line-delimited block around the cursor.
// A cursor on a blank line seeks the next paragraph within the lookahead
// window.
func findParagraph(snap *buffer.Snapshot, cursor buffer.Point, window textobject.SearchWindow) (buffer.Range, bool) {
	row := cursor.Row
	if blankLine(snap, row) {
		limit := cursor.Row + window.Lookahead
		for row < snap.LineCount()-1 && row < limit {
			row++
			if !blankLine(snap, row) {
				break
			}
		}
		if blankLine(snap, row) {
			return buffer.Range{}, false
		}
	}

	first := row
	for first > 0 && !blankLine(snap, first-1) {
		first--
	}
	last := row
	for last < snap.LineCount()-1 && !blankLine(snap, last+1) {
		last++
	}

	return buffer.Range{
		Start: buffer.Point{Row: first, Col: 0},
		End:   buffer.Point{Row: last, Col: snap.LineLen(last)},
	}, true
}

// findQuote covers a double-quoted span, quotes included, on the cursor's
// line or a following line within the lookahead window.
func findQuote(snap *buffer.Snapshot, cursor buffer.Point, window textobject.SearchWindow) (buffer.Range, bool) {
	limit := cursor.Row + window.Lookahead
	if limit > snap.LineCount()-1 {
		limit = snap.LineCount() - 1
	}

	for row := cursor.Row; row <= limit; row++ {
		if r, ok := quoteOnLine(snap, row, cursor); ok {
			return r, true
		}
	}
	return buffer.Range{}, false
}

// quoteOnLine finds the first quoted span on the row that contains the
// cursor or starts after it (for the cursor's own row), or the first span
// at all (for later rows).
func quoteOnLine(snap *buffer.Snapshot, row int, cursor buffer.Point) (buffer.Range, bool) {
	n := snap.LineLen(row)
	open := -1
	for col := 0; col < n; col++ {
		c, ok := textobject.CharAt(snap, buffer.Point{Row: row, Col: col})
		if !ok || c != `"` {
			continue
		}
		if open < 0 {
			open = col
			continue
		}
		r := buffer.Range{
			Start: buffer.Point{Row: row, Col: open},
			End:   buffer.Point{Row: row, Col: col + 1},
		}
		if row != cursor.Row || col >= cursor.Col || r.Contains(cursor) {
			return r, true
		}
		open = -1
	}
	return buffer.Range{}, false
}

// findBlock covers the innermost balanced parenthesis pair enclosing the
// cursor, parentheses included.
func findBlock(snap *buffer.Snapshot, cursor buffer.Point) (buffer.Range, bool) {
	open, ok := scanBack(snap, cursor)
	if !ok {
		return buffer.Range{}, false
	}
	closing, ok := scanForward(snap, open)
	if !ok {
		return buffer.Range{}, false
	}
	end, ok := textobject.Advance(snap, closing, true)
	if !ok {
		// Closing paren is the last character of the buffer.
		end = buffer.Point{Row: closing.Row, Col: closing.Col + 1}
	}
	return buffer.Range{Start: open, End: end}, true
}

// scanBack walks backward from the cursor to the nearest unmatched opening
// parenthesis.
func scanBack(snap *buffer.Snapshot, cursor buffer.Point) (buffer.Point, bool) {
	depth := 0
	p := cursor
	// A cursor sitting on the opening paren itself counts.
	if c, ok := textobject.CharAt(snap, p); ok && c == "(" {
		return p, true
	}
	for {
		prev, ok := textobject.Advance(snap, p, false)
		if !ok {
			return buffer.Point{}, false
		}
		p = prev
		c, ok := textobject.CharAt(snap, p)
		if !ok {
			continue
		}
		switch c {
		case ")":
			depth++
		case "(":
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}

// scanForward walks forward from the opening parenthesis to its match.
func scanForward(snap *buffer.Snapshot, open buffer.Point) (buffer.Point, bool) {
	depth := 0
	p := open
	for {
		next, ok := textobject.Advance(snap, p, true)
		if !ok {
			return buffer.Point{}, false
		}
		p = next
		c, ok := textobject.CharAt(snap, p)
		if !ok {
			continue
		}
		switch c {
		case "(":
			depth++
		case ")":
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}

func blankLine(snap *buffer.Snapshot, row int) bool {
	n := snap.LineLen(row)
	for col := 0; col < n; col++ {
		c, err := snap.ClusterAt(row, col)
		if err != nil {
			return false
		}
		r, _ := utf8.DecodeRuneInString(c)
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isWordCluster reports whether a cluster belongs to a word run: letters,
// digits, and underscore.
func isWordCluster(c string) bool {
	if c == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(c)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isGraphicCluster reports whether a cluster belongs to a WORD run: anything
// that is not whitespace.
func isGraphicCluster(c string) bool {
	if c == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(c)
	return !unicode.IsSpace(r)
}
