// Package buffer provides an immutable, line-addressed view of buffer text
// for textobject resolution. The host editor owns the text; this package only
// reads a snapshot of it.
//
// The buffer package provides:
//
//   - Snapshot: a read-only view built once from the buffer's current text
//   - Point: a 0-indexed (row, column) position
//   - Range: a start-inclusive, end-exclusive span between two points
//
// Columns are measured in grapheme clusters rather than bytes, so moving a
// column by one always crosses exactly one user-perceived character. A column
// equal to the line's cluster count addresses the end-of-line position, which
// is valid but holds no cluster.
//
// Basic usage:
//
//	snap := buffer.NewSnapshotFromString("foo bar\nbaz")
//	snap.LineCount()     // 2
//	snap.Line(0)         // "foo bar"
//	snap.LineLen(0)      // 7
//	snap.ClusterAt(0, 4) // "b"
//
// A Snapshot never changes after construction, so it is safe to share and
// re-read for the duration of a resolution call. The snapshot reflects the
// buffer at the moment it was built; edits made afterwards are not visible.
package buffer
