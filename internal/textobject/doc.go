// Package textobject resolves a candidate textobject range into a final
// selectable range and the selection mode it should be applied with.
//
// The package is deliberately agnostic to how candidate ranges are produced:
// a query collaborator (typically backed by a syntax-query engine) locates
// the candidate, and a selection applier performs the terminal side effect.
// Everything in between is pure arithmetic over an immutable buffer snapshot:
//
//   - navigate.go walks (row, col) positions one grapheme cluster at a time,
//     treating line breaks as single steps in a flat token stream
//   - extend.go grows a range outward across contiguous whitespace with an
//     asymmetric forward-first policy
//   - resolve.go orchestrates candidate retrieval, selection-mode detection
//     (including the live visual submode override), and whitespace extension
//
// A resolution call is a pure function of the snapshot and the candidate
// range; no state persists between calls. Missing candidates and exhausted
// buffer boundaries are normal outcomes, never errors.
package textobject
