package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textobjects/internal/textobject"
)

// fileConfig is the raw TOML shape before validation.
type fileConfig struct {
	Lookahead                    any               `toml:"lookahead"`
	Lookbehind                   any               `toml:"lookbehind"`
	IncludeSurroundingWhitespace any               `toml:"include_surrounding_whitespace"`
	SelectionModes               map[string]string `toml:"selection_modes"`
	Keymaps                      map[string]any    `toml:"keymaps"`
}

// Load reads configuration from a TOML file. A missing file is not an
// error; it yields the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates raw TOML configuration data. The path is used only for
// error reporting.
func Parse(data []byte, path string) (*Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg := Default()

	var err error
	if cfg.Lookahead, err = parseWindow(fc.Lookahead); err != nil {
		return nil, &ParseError{Path: path, Field: "lookahead", Err: err}
	}
	if cfg.Lookbehind, err = parseWindow(fc.Lookbehind); err != nil {
		return nil, &ParseError{Path: path, Field: "lookbehind", Err: err}
	}

	if fc.IncludeSurroundingWhitespace != nil {
		v, ok := fc.IncludeSurroundingWhitespace.(bool)
		if !ok {
			return nil, &ParseError{Path: path, Field: "include_surrounding_whitespace", Err: ErrTypeMismatch}
		}
		cfg.IncludeSurroundingWhitespace = LiteralBool(v)
	}

	if len(fc.SelectionModes) > 0 {
		table := make(map[string]textobject.SelectionMode, len(fc.SelectionModes))
		for query, name := range fc.SelectionModes {
			mode, err := ParseSelectionMode(name)
			if err != nil {
				return nil, &ParseError{Path: path, Field: "selection_modes." + query, Err: err}
			}
			table[query] = mode
		}
		cfg.SelectionModes = ModeTable(table)
	}

	for trigger, v := range fc.Keymaps {
		km, err := parseKeymap(v)
		if err != nil {
			return nil, &ParseError{Path: path, Field: "keymaps." + trigger, Err: err}
		}
		cfg.Keymaps[trigger] = km
	}

	return cfg, nil
}

// parseWindow accepts a bool (enable with the default distance) or an
// integer line count. Nil leaves the window disabled.
func parseWindow(v any) (Window, error) {
	switch val := v.(type) {
	case nil:
		return WindowDisabled, nil
	case bool:
		if val {
			return WindowEnabled(), nil
		}
		return WindowDisabled, nil
	case int64:
		return WindowLines(int(val)), nil
	default:
		return WindowDisabled, ErrTypeMismatch
	}
}

// parseKeymap accepts a bare query string or a table with query and
// description fields.
func parseKeymap(v any) (Keymap, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return Keymap{}, ErrInvalidKeymap
		}
		return Keymap{Query: val}, nil
	case map[string]any:
		query, ok := val["query"].(string)
		if !ok || query == "" {
			return Keymap{}, ErrInvalidKeymap
		}
		km := Keymap{Query: query}
		if desc, ok := val["description"].(string); ok {
			km.Description = desc
		}
		return km, nil
	default:
		return Keymap{}, ErrInvalidKeymap
	}
}
