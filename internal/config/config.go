package config

import (
	"fmt"

	"github.com/dshills/textobjects/internal/textobject"
)

// defaultWindowLines is the search distance used when a window option is
// enabled without an explicit line count.
const defaultWindowLines = 5

// Context is the record the surrounding-whitespace policy is evaluated with.
type Context struct {
	// Query is the textobject query identifier.
	Query string

	// Mode is the already-detected selection mode.
	Mode textobject.SelectionMode
}

// ModeContext is the record a computed selection-mode option is evaluated with.
type ModeContext struct {
	// Query is the textobject query identifier.
	Query string

	// Method tags the invocation context (operator-pending or visual).
	Method textobject.Method
}

// Bool is a boolean option that is either a literal or a computation over a
// Context. The zero value is a literal false.
type Bool struct {
	literal bool
	fn      func(Context) bool
}

// LiteralBool creates a Bool holding a fixed value.
func LiteralBool(v bool) Bool {
	return Bool{literal: v}
}

// ComputedBool creates a Bool evaluated per resolution call.
func ComputedBool(fn func(Context) bool) Bool {
	return Bool{fn: fn}
}

// Resolve evaluates the option for the given context.
func (b Bool) Resolve(ctx Context) bool {
	if b.fn != nil {
		return b.fn(ctx)
	}
	return b.literal
}

// Modes maps query identifiers to selection modes, either via a static table
// or a computation over a ModeContext. Unspecified queries resolve charwise.
// The zero value resolves everything charwise.
type Modes struct {
	table map[string]textobject.SelectionMode
	fn    func(ModeContext) textobject.SelectionMode
}

// ModeTable creates a Modes backed by a static mapping.
func ModeTable(table map[string]textobject.SelectionMode) Modes {
	return Modes{table: table}
}

// ComputedModes creates a Modes evaluated per resolution call.
func ComputedModes(fn func(ModeContext) textobject.SelectionMode) Modes {
	return Modes{fn: fn}
}

// Resolve evaluates the option for the given context.
func (m Modes) Resolve(ctx ModeContext) textobject.SelectionMode {
	if m.fn != nil {
		return m.fn(ctx)
	}
	if mode, ok := m.table[ctx.Query]; ok {
		return mode
	}
	return textobject.SelectChar
}

// Window is a lookahead or lookbehind bound: disabled, enabled with the
// default distance, or an explicit line distance.
type Window struct {
	enabled bool
	lines   int
}

// WindowDisabled is the zero Window; no search in that direction.
var WindowDisabled = Window{}

// WindowEnabled creates a Window using the default distance.
func WindowEnabled() Window {
	return Window{enabled: true, lines: defaultWindowLines}
}

// WindowLines creates a Window with an explicit line distance.
// Non-positive counts disable the window.
func WindowLines(n int) Window {
	if n <= 0 {
		return Window{}
	}
	return Window{enabled: true, lines: n}
}

// Lines returns the search distance in lines, 0 when disabled.
func (w Window) Lines() int {
	if !w.enabled {
		return 0
	}
	return w.lines
}

// Keymap binds a trigger key to a textobject query.
type Keymap struct {
	// Query is the textobject query identifier to resolve.
	Query string

	// Description documents the binding.
	Description string
}

// Config is the full configuration surface. It is consumed by the keymap
// glue and the resolver; nothing in this package mutates it after loading.
type Config struct {
	// Lookahead bounds forward candidate search.
	Lookahead Window

	// Lookbehind bounds backward candidate search.
	Lookbehind Window

	// IncludeSurroundingWhitespace decides whether a resolved range grows
	// across adjacent whitespace.
	IncludeSurroundingWhitespace Bool

	// SelectionModes maps queries to selection modes.
	SelectionModes Modes

	// Keymaps maps trigger keys to queries.
	Keymaps map[string]Keymap
}

// Default returns a configuration with everything disabled or empty.
func Default() *Config {
	return &Config{
		Keymaps: make(map[string]Keymap),
	}
}

// ResolverOptions adapts the configuration into the policy inputs the
// resolver consumes.
func (c *Config) ResolverOptions() textobject.Options {
	return textobject.Options{
		Window: textobject.SearchWindow{
			Lookahead:  c.Lookahead.Lines(),
			Lookbehind: c.Lookbehind.Lines(),
		},
		ModeFor: func(queryID string, method textobject.Method) textobject.SelectionMode {
			return c.SelectionModes.Resolve(ModeContext{Query: queryID, Method: method})
		},
		SurroundWhitespace: func(queryID string, mode textobject.SelectionMode) bool {
			return c.IncludeSurroundingWhitespace.Resolve(Context{Query: queryID, Mode: mode})
		},
	}
}

// ParseSelectionMode parses a selection mode name. Both the long names and
// the Vim-style key notations are accepted.
func ParseSelectionMode(s string) (textobject.SelectionMode, error) {
	switch s {
	case "charwise", "v":
		return textobject.SelectChar, nil
	case "linewise", "V":
		return textobject.SelectLine, nil
	case "blockwise", "<c-v>", "ctrl-v":
		return textobject.SelectBlock, nil
	default:
		return textobject.SelectChar, fmt.Errorf("%w: %q", ErrInvalidSelectionMode, s)
	}
}
