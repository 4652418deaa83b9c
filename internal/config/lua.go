package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textobjects/internal/textobject"
)

// Overlay owns the Lua state backing computed configuration options. It must
// stay open for as long as the configuration it was applied to is in use,
// and is single-threaded like resolution itself.
type Overlay struct {
	state *lua.LState
}

// OpenLua runs a Lua configuration script and returns its overlay.
func OpenLua(path string) (*Overlay, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Overlay{state: L}, nil
}

// OpenLuaSource runs Lua configuration source directly. The name is used
// only for error reporting.
func OpenLuaSource(name, source string) (*Overlay, error) {
	L := lua.NewState()
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, &ParseError{Path: name, Err: err}
	}
	return &Overlay{state: L}, nil
}

// Close releases the Lua state. Computed options from this overlay must not
// be resolved afterwards.
func (o *Overlay) Close() {
	o.state.Close()
}

// Apply overlays options defined by the script onto cfg. Script globals
// recognized: lookahead, lookbehind, include_surrounding_whitespace,
// selection_modes, keymaps. The function-capable options may be Lua
// functions; they are wrapped as computed options evaluated per resolution
// call. Type errors fail here, never later.
func (o *Overlay) Apply(cfg *Config) error {
	if v := o.state.GetGlobal("lookahead"); v != lua.LNil {
		w, err := o.luaWindow(v)
		if err != nil {
			return &ParseError{Field: "lookahead", Err: err}
		}
		cfg.Lookahead = w
	}
	if v := o.state.GetGlobal("lookbehind"); v != lua.LNil {
		w, err := o.luaWindow(v)
		if err != nil {
			return &ParseError{Field: "lookbehind", Err: err}
		}
		cfg.Lookbehind = w
	}

	if v := o.state.GetGlobal("include_surrounding_whitespace"); v != lua.LNil {
		switch val := v.(type) {
		case lua.LBool:
			cfg.IncludeSurroundingWhitespace = LiteralBool(bool(val))
		case *lua.LFunction:
			cfg.IncludeSurroundingWhitespace = ComputedBool(o.boolFn(val))
		default:
			return &ParseError{Field: "include_surrounding_whitespace", Err: ErrTypeMismatch}
		}
	}

	if v := o.state.GetGlobal("selection_modes"); v != lua.LNil {
		switch val := v.(type) {
		case *lua.LTable:
			table, err := o.modeTable(val)
			if err != nil {
				return &ParseError{Field: "selection_modes", Err: err}
			}
			cfg.SelectionModes = ModeTable(table)
		case *lua.LFunction:
			cfg.SelectionModes = ComputedModes(o.modeFn(val))
		default:
			return &ParseError{Field: "selection_modes", Err: ErrTypeMismatch}
		}
	}

	if v := o.state.GetGlobal("keymaps"); v != lua.LNil {
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return &ParseError{Field: "keymaps", Err: ErrTypeMismatch}
		}
		if err := o.keymaps(tbl, cfg); err != nil {
			return err
		}
	}

	return nil
}

// luaWindow accepts a boolean or a numeric line count.
func (o *Overlay) luaWindow(v lua.LValue) (Window, error) {
	switch val := v.(type) {
	case lua.LBool:
		if bool(val) {
			return WindowEnabled(), nil
		}
		return WindowDisabled, nil
	case lua.LNumber:
		return WindowLines(int(val)), nil
	default:
		return WindowDisabled, ErrTypeMismatch
	}
}

// boolFn wraps a Lua function as a computed boolean option. The function
// receives a table with query and selection_mode fields. A failed call
// resolves false rather than surfacing an error mid-resolution.
func (o *Overlay) boolFn(fn *lua.LFunction) func(Context) bool {
	return func(ctx Context) bool {
		tbl := o.state.NewTable()
		tbl.RawSetString("query", lua.LString(ctx.Query))
		tbl.RawSetString("selection_mode", lua.LString(ctx.Mode.String()))
		if err := o.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
			return false
		}
		ret := o.state.Get(-1)
		o.state.Pop(1)
		return lua.LVAsBool(ret)
	}
}

// modeFn wraps a Lua function as a computed selection-mode option. The
// function receives a table with query and method fields and returns a mode
// name. Anything unrecognized resolves charwise.
func (o *Overlay) modeFn(fn *lua.LFunction) func(ModeContext) textobject.SelectionMode {
	return func(ctx ModeContext) textobject.SelectionMode {
		tbl := o.state.NewTable()
		tbl.RawSetString("query", lua.LString(ctx.Query))
		tbl.RawSetString("method", lua.LString(ctx.Method.String()))
		if err := o.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
			return textobject.SelectChar
		}
		ret := o.state.Get(-1)
		o.state.Pop(1)
		name, ok := ret.(lua.LString)
		if !ok {
			return textobject.SelectChar
		}
		mode, err := ParseSelectionMode(string(name))
		if err != nil {
			return textobject.SelectChar
		}
		return mode
	}
}

// modeTable converts a Lua table of query -> mode name.
func (o *Overlay) modeTable(tbl *lua.LTable) (map[string]textobject.SelectionMode, error) {
	table := make(map[string]textobject.SelectionMode)
	var convErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		query, ok := k.(lua.LString)
		if !ok {
			convErr = ErrTypeMismatch
			return
		}
		name, ok := v.(lua.LString)
		if !ok {
			convErr = fmt.Errorf("%w: %s", ErrTypeMismatch, query)
			return
		}
		mode, err := ParseSelectionMode(string(name))
		if err != nil {
			convErr = err
			return
		}
		table[string(query)] = mode
	})
	if convErr != nil {
		return nil, convErr
	}
	return table, nil
}

// keymaps merges a Lua keymap table into cfg. Values are a query string or
// a table with query and description fields.
func (o *Overlay) keymaps(tbl *lua.LTable, cfg *Config) error {
	var convErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		trigger, ok := k.(lua.LString)
		if !ok {
			convErr = &ParseError{Field: "keymaps", Err: ErrInvalidKeymap}
			return
		}
		switch val := v.(type) {
		case lua.LString:
			cfg.Keymaps[string(trigger)] = Keymap{Query: string(val)}
		case *lua.LTable:
			query, ok := val.RawGetString("query").(lua.LString)
			if !ok {
				convErr = &ParseError{Field: "keymaps." + string(trigger), Err: ErrInvalidKeymap}
				return
			}
			km := Keymap{Query: string(query)}
			if desc, ok := val.RawGetString("description").(lua.LString); ok {
				km.Description = string(desc)
			}
			cfg.Keymaps[string(trigger)] = km
		default:
			convErr = &ParseError{Field: "keymaps." + string(trigger), Err: ErrInvalidKeymap}
		}
	})
	return convErr
}
