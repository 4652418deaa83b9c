package buffer

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

// Errors returned by snapshot accessors.
var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrColOutOfRange = errors.New("column out of range")
)

// Snapshot is a read-only, line-addressed view of buffer text.
// It is built once and never modified, so it is safe to share across a
// resolution call without locking.
type Snapshot struct {
	lines    []string   // line text without line endings
	clusters [][]string // grapheme clusters per line
}

// NewSnapshot creates a snapshot from a slice of lines.
// An empty slice yields a snapshot with a single empty line, matching the
// convention that a buffer always has at least one line.
func NewSnapshot(lines []string) *Snapshot {
	if len(lines) == 0 {
		lines = []string{""}
	}
	s := &Snapshot{
		lines:    make([]string, len(lines)),
		clusters: make([][]string, len(lines)),
	}
	for i, line := range lines {
		s.lines[i] = line
		s.clusters[i] = splitClusters(line)
	}
	return s
}

// NewSnapshotFromString creates a snapshot from raw text.
// Both LF and CRLF line endings are accepted.
func NewSnapshotFromString(text string) *Snapshot {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return NewSnapshot(strings.Split(text, "\n"))
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns the text of a specific line (without line ending).
// Out-of-range rows return the empty string.
func (s *Snapshot) Line(row int) string {
	if row < 0 || row >= len(s.lines) {
		return ""
	}
	return s.lines[row]
}

// LineLen returns the length of a specific line in grapheme clusters.
// Out-of-range rows return 0.
func (s *Snapshot) LineLen(row int) int {
	if row < 0 || row >= len(s.clusters) {
		return 0
	}
	return len(s.clusters[row])
}

// ClusterAt returns the grapheme cluster at the given row and column.
// The end-of-line column holds no cluster and reports ErrColOutOfRange;
// callers that treat it as a virtual position must check for it first.
func (s *Snapshot) ClusterAt(row, col int) (string, error) {
	if row < 0 || row >= len(s.clusters) {
		return "", ErrRowOutOfRange
	}
	if col < 0 || col >= len(s.clusters[row]) {
		return "", ErrColOutOfRange
	}
	return s.clusters[row][col], nil
}

// Text returns the full snapshot content joined with LF line endings.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}

// splitClusters segments a line into grapheme clusters.
func splitClusters(line string) []string {
	if line == "" {
		return nil
	}
	clusters := make([]string, 0, len(line))
	state := -1
	var c string
	for len(line) > 0 {
		c, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		clusters = append(clusters, c)
	}
	return clusters
}
