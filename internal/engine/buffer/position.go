package buffer

import "fmt"

// Point represents a line and column position in a snapshot.
// Both Row and Col are 0-indexed. Col is measured in grapheme clusters;
// a Col equal to the line's cluster count denotes the end-of-line position.
type Point struct {
	Row int // 0-indexed line number
	Col int // 0-indexed column (grapheme cluster offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other
// in buffer reading order (row-major, then column).
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Row == 0 && p.Col == 0
}
