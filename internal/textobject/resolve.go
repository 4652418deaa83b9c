package textobject

import (
	"github.com/dshills/textobjects/internal/engine/buffer"
)

// SearchWindow bounds how far from the cursor the query collaborator
// searches for a candidate, in lines. Zero disables search in that
// direction. The values are forwarded opaquely; only the query collaborator
// interprets them.
type SearchWindow struct {
	Lookahead  int
	Lookbehind int
}

// Query locates candidate textobject ranges. It is an external collaborator;
// this package never inspects how candidates are produced.
type Query interface {
	// FindTextobjectAt returns the snapshot the candidate belongs to and
	// its range, or ok=false when no candidate exists. A missing candidate
	// is a normal outcome, not an error.
	FindTextobjectAt(snap *buffer.Snapshot, cursor buffer.Point, queryID string, window SearchWindow) (*buffer.Snapshot, buffer.Range, bool)
}

// Applier performs the terminal side effect of a successful resolution.
type Applier interface {
	ApplySelection(snap *buffer.Snapshot, r buffer.Range, mode SelectionMode)
}

// Env carries the live editor context for a single resolution. It is
// injected per call rather than read from globals so the resolver can be
// exercised without a host editor.
type Env struct {
	// Snap is the buffer view at invocation time. It must remain stable
	// for the duration of the call.
	Snap *buffer.Snapshot

	// Cursor is the position the query searches around.
	Cursor buffer.Point

	// Submode is the live visual submode, or SubmodeNone when the editor
	// is in the neutral operator-pending state.
	Submode Submode
}

// Options are the policy inputs a Resolver consumes, already resolved from
// configuration by the glue layer.
type Options struct {
	// Window is forwarded to the query collaborator.
	Window SearchWindow

	// ModeFor returns the configured selection mode for a query and
	// method. Nil means charwise for everything.
	ModeFor func(queryID string, method Method) SelectionMode

	// SurroundWhitespace decides whether whitespace extension applies,
	// given the query and the already-detected selection mode. Nil means
	// never extend.
	SurroundWhitespace func(queryID string, mode SelectionMode) bool
}

// Resolver orchestrates candidate retrieval, selection-mode detection, and
// whitespace extension. It holds no per-call state and is safe to reuse.
type Resolver struct {
	query   Query
	applier Applier
	opts    Options
}

// NewResolver creates a resolver with the given collaborators and policy.
func NewResolver(query Query, applier Applier, opts Options) *Resolver {
	return &Resolver{
		query:   query,
		applier: applier,
		opts:    opts,
	}
}

// Resolve runs one resolution: find a candidate for queryID around the
// cursor, detect the selection mode, optionally extend across surrounding
// whitespace, and apply the selection. It returns false, with no side
// effect, when no candidate is found.
func (r *Resolver) Resolve(queryID string, invocation Invocation, env Env) bool {
	snap, rng, ok := r.query.FindTextobjectAt(env.Snap, env.Cursor, queryID, r.opts.Window)
	if !ok {
		return false
	}

	mode := SelectChar
	if r.opts.ModeFor != nil {
		mode = r.opts.ModeFor(queryID, invocation.Method())
	}
	// A live visual submode wins over configuration; the neutral
	// operator-pending indicator does not.
	if live, forced := env.Submode.SelectionMode(); forced {
		mode = live
	}

	if r.opts.SurroundWhitespace != nil && r.opts.SurroundWhitespace(queryID, mode) {
		rng = ExtendWhitespace(snap, rng, mode)
	}

	r.applier.ApplySelection(snap, rng, mode)
	return true
}
