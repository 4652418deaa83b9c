package textobject

import (
	"github.com/dshills/textobjects/internal/engine/buffer"
)

// ExtendWhitespace grows r outward across contiguous whitespace and returns
// the result; r itself is never mutated.
//
// Extension is asymmetric: the end is tried first, and if it moved at all the
// start is left alone. Selecting a token with trailing whitespace must not
// also eat its leading whitespace. Only when there is nothing to consume
// after the end does the start walk backward instead.
//
// For line-wise selections, a start that walked backward is snapped forward
// one position. A line-wise range already accounts for its leading line-start
// offset, and the backward walk would otherwise pull the previous line into
// the selection.
func ExtendWhitespace(snap *buffer.Snapshot, r buffer.Range, mode SelectionMode) buffer.Range {
	end := r.End
	extended := false
	for IsWhitespaceAfter(snap, end) {
		next, ok := Advance(snap, end, true)
		if !ok {
			break
		}
		end = next
		extended = true
	}
	if extended {
		return buffer.Range{Start: r.Start, End: end}
	}

	start := r.Start
	moved := false
	for {
		prev, ok := Advance(snap, start, false)
		if !ok {
			break
		}
		if !IsWhitespaceAfter(snap, prev) {
			break
		}
		start = prev
		moved = true
	}
	if mode == SelectLine && moved {
		if next, ok := Advance(snap, start, true); ok {
			start = next
		}
	}
	return buffer.Range{Start: start, End: r.End}
}
