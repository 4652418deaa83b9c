package query

import (
	"testing"

	"github.com/dshills/textobjects/internal/engine/buffer"
	"github.com/dshills/textobjects/internal/textobject"
)

func pt(row, col int) buffer.Point {
	return buffer.Point{Row: row, Col: col}
}

func rng(startRow, startCol, endRow, endCol int) buffer.Range {
	return buffer.Range{Start: pt(startRow, startCol), End: pt(endRow, endCol)}
}

func find(t *testing.T, snap *buffer.Snapshot, cursor buffer.Point, queryID string, window textobject.SearchWindow) (buffer.Range, bool) {
	t.Helper()
	_, r, ok := NewEngine().FindTextobjectAt(snap, cursor, queryID, window)
	return r, ok
}

func TestDefines(t *testing.T) {
	e := NewEngine()
	for _, q := range []string{QueryWord, QueryWORD, QueryLine, QueryParagraph, QueryQuote, QueryBlock} {
		if !e.Defines(q) {
			t.Errorf("expected %q defined", q)
		}
	}
	if e.Defines("function.outer") {
		t.Error("unexpected query defined")
	}
}

func TestFindWordUnderCursor(t *testing.T) {
	snap := buffer.NewSnapshotFromString("foo bar_baz qux")

	tests := []struct {
		name   string
		cursor buffer.Point
		want   buffer.Range
	}{
		{"start of word", pt(0, 4), rng(0, 4, 0, 11)},
		{"middle of word", pt(0, 7), rng(0, 4, 0, 11)},
		{"last char of word", pt(0, 10), rng(0, 4, 0, 11)},
		{"first word", pt(0, 0), rng(0, 0, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := find(t, snap, tt.cursor, QueryWord, textobject.SearchWindow{})
			if !ok {
				t.Fatal("expected a candidate")
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFindWordSeeksForward(t *testing.T) {
	// Cursor on whitespace: the next word on the same line is found even
	// with no lookahead window.
	snap := buffer.NewSnapshotFromString("foo   bar")

	got, ok := find(t, snap, pt(0, 4), QueryWord, textobject.SearchWindow{})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if want := rng(0, 6, 0, 9); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindWordLookahead(t *testing.T) {
	snap := buffer.NewSnapshotFromString("   \n\nword here")

	// Without lookahead the cursor's whitespace-only line yields nothing.
	if _, ok := find(t, snap, pt(0, 0), QueryWord, textobject.SearchWindow{}); ok {
		t.Fatal("expected no candidate without lookahead")
	}

	// A two-line lookahead reaches the word.
	got, ok := find(t, snap, pt(0, 0), QueryWord, textobject.SearchWindow{Lookahead: 2})
	if !ok {
		t.Fatal("expected a candidate with lookahead")
	}
	if want := rng(2, 0, 2, 4); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindWordLookbehind(t *testing.T) {
	snap := buffer.NewSnapshotFromString("word\n\n   ")

	if _, ok := find(t, snap, pt(2, 1), QueryWord, textobject.SearchWindow{}); ok {
		t.Fatal("expected no candidate without lookbehind")
	}

	got, ok := find(t, snap, pt(2, 1), QueryWord, textobject.SearchWindow{Lookbehind: 2})
	if !ok {
		t.Fatal("expected a candidate with lookbehind")
	}
	if want := rng(0, 0, 0, 4); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindWORD(t *testing.T) {
	// WORD runs include punctuation.
	snap := buffer.NewSnapshotFromString("foo(bar) baz")

	got, ok := find(t, snap, pt(0, 4), QueryWORD, textobject.SearchWindow{})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if want := rng(0, 0, 0, 8); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindLine(t *testing.T) {
	snap := buffer.NewSnapshotFromString("first\nsecond line")

	got, ok := find(t, snap, pt(1, 3), QueryLine, textobject.SearchWindow{})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if want := rng(1, 0, 1, 11); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindParagraph(t *testing.T) {
	snap := buffer.NewSnapshotFromString("one\ntwo\n\nthree\nfour\n\nfive")

	got, ok := find(t, snap, pt(3, 0), QueryParagraph, textobject.SearchWindow{})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if want := rng(3, 0, 4, 4); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindParagraphFromBlankLine(t *testing.T) {
	snap := buffer.NewSnapshotFromString("one\n\nthree")

	if _, ok := find(t, snap, pt(1, 0), QueryParagraph, textobject.SearchWindow{}); ok {
		t.Fatal("expected no candidate from blank line without lookahead")
	}

	got, ok := find(t, snap, pt(1, 0), QueryParagraph, textobject.SearchWindow{Lookahead: 1})
	if !ok {
		t.Fatal("expected a candidate with lookahead")
	}
	if want := rng(2, 0, 2, 5); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindQuote(t *testing.T) {
	snap := buffer.NewSnapshotFromString(`say "hello world" twice`)

	tests := []struct {
		name   string
		cursor buffer.Point
	}{
		{"inside the quotes", pt(0, 8)},
		{"on the opening quote", pt(0, 4)},
		{"before the quotes", pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := find(t, snap, tt.cursor, QueryQuote, textobject.SearchWindow{})
			if !ok {
				t.Fatal("expected a candidate")
			}
			if want := rng(0, 4, 0, 17); got != want {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestFindQuoteNone(t *testing.T) {
	snap := buffer.NewSnapshotFromString("no quotes here")

	if _, ok := find(t, snap, pt(0, 0), QueryQuote, textobject.SearchWindow{}); ok {
		t.Error("expected no candidate")
	}
}

func TestFindBlock(t *testing.T) {
	snap := buffer.NewSnapshotFromString("foo(bar(baz) qux)")

	tests := []struct {
		name   string
		cursor buffer.Point
		want   buffer.Range
	}{
		{"inner block", pt(0, 9), rng(0, 7, 0, 12)},
		{"outer block", pt(0, 14), rng(0, 3, 0, 17)},
		{"on inner open paren", pt(0, 7), rng(0, 7, 0, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := find(t, snap, tt.cursor, QueryBlock, textobject.SearchWindow{})
			if !ok {
				t.Fatal("expected a candidate")
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFindBlockMultiline(t *testing.T) {
	snap := buffer.NewSnapshotFromString("call(\n  arg,\n)")

	got, ok := find(t, snap, pt(1, 3), QueryBlock, textobject.SearchWindow{})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if want := rng(0, 4, 2, 1); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindBlockUnbalanced(t *testing.T) {
	snap := buffer.NewSnapshotFromString("no parens")

	if _, ok := find(t, snap, pt(0, 2), QueryBlock, textobject.SearchWindow{}); ok {
		t.Error("expected no candidate")
	}
}

func TestUnknownQuery(t *testing.T) {
	snap := buffer.NewSnapshotFromString("text")

	if _, ok := find(t, snap, pt(0, 0), "mystery", textobject.SearchWindow{}); ok {
		t.Error("expected no candidate for unknown query")
	}
}

func TestCursorOutOfRange(t *testing.T) {
	snap := buffer.NewSnapshotFromString("text")

	if _, ok := find(t, snap, pt(9, 0), QueryWord, textobject.SearchWindow{}); ok {
		t.Error("expected no candidate for out-of-range cursor")
	}
}
