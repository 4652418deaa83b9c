package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/textobjects/internal/textobject"
)

func TestLuaLiteralOptions(t *testing.T) {
	overlay, err := OpenLuaSource("test", `
lookahead = 4
lookbehind = true
include_surrounding_whitespace = true
selection_modes = {
  ["function.outer"] = "linewise",
}
keymaps = {
  f = "function.outer",
  c = { query = "class.outer", description = "select a class" },
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	cfg := Default()
	if err := overlay.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lookahead.Lines() != 4 {
		t.Errorf("expected lookahead 4, got %d", cfg.Lookahead.Lines())
	}
	if cfg.Lookbehind.Lines() != defaultWindowLines {
		t.Errorf("expected default lookbehind, got %d", cfg.Lookbehind.Lines())
	}
	if !cfg.IncludeSurroundingWhitespace.Resolve(Context{}) {
		t.Error("expected whitespace policy true")
	}
	if got := cfg.SelectionModes.Resolve(ModeContext{Query: "function.outer"}); got != textobject.SelectLine {
		t.Errorf("expected linewise, got %v", got)
	}
	if km := cfg.Keymaps["c"]; km.Query != "class.outer" || km.Description != "select a class" {
		t.Errorf("unexpected keymap %+v", km)
	}
}

func TestLuaComputedWhitespacePolicy(t *testing.T) {
	overlay, err := OpenLuaSource("test", `
include_surrounding_whitespace = function(ctx)
  return ctx.query == "word.outer" and ctx.selection_mode == "charwise"
end
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	cfg := Default()
	if err := overlay.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IncludeSurroundingWhitespace.Resolve(Context{Query: "word.outer", Mode: textobject.SelectChar}) {
		t.Error("expected true for word.outer charwise")
	}
	if cfg.IncludeSurroundingWhitespace.Resolve(Context{Query: "word.outer", Mode: textobject.SelectLine}) {
		t.Error("expected false for linewise")
	}
	if cfg.IncludeSurroundingWhitespace.Resolve(Context{Query: "class.outer", Mode: textobject.SelectChar}) {
		t.Error("expected false for other queries")
	}
}

func TestLuaComputedSelectionModes(t *testing.T) {
	overlay, err := OpenLuaSource("test", `
selection_modes = function(ctx)
  if ctx.method == "visual" then
    return "blockwise"
  end
  if ctx.query == "function.outer" then
    return "linewise"
  end
  return "charwise"
end
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	cfg := Default()
	if err := overlay.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.SelectionModes.Resolve(ModeContext{Query: "x", Method: textobject.MethodVisual}); got != textobject.SelectBlock {
		t.Errorf("expected blockwise, got %v", got)
	}
	if got := cfg.SelectionModes.Resolve(ModeContext{Query: "function.outer", Method: textobject.MethodOperatorPending}); got != textobject.SelectLine {
		t.Errorf("expected linewise, got %v", got)
	}
}

func TestLuaComputedModeBadReturn(t *testing.T) {
	// Unrecognized return values resolve charwise instead of failing
	// mid-resolution.
	overlay, err := OpenLuaSource("test", `
selection_modes = function(ctx)
  return "diagonal"
end
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	cfg := Default()
	if err := overlay.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.SelectionModes.Resolve(ModeContext{Query: "x"}); got != textobject.SelectChar {
		t.Errorf("expected charwise fallback, got %v", got)
	}
}

func TestLuaTypeMismatch(t *testing.T) {
	overlay, err := OpenLuaSource("test", `include_surrounding_whitespace = "yes"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	if err := overlay.Apply(Default()); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestLuaInvalidModeInTable(t *testing.T) {
	overlay, err := OpenLuaSource("test", `
selection_modes = { ["word.outer"] = "diagonal" }
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	if err := overlay.Apply(Default()); !errors.Is(err, ErrInvalidSelectionMode) {
		t.Errorf("expected ErrInvalidSelectionMode, got %v", err)
	}
}

func TestLuaSyntaxError(t *testing.T) {
	if _, err := OpenLuaSource("test", `this is not lua`); err == nil {
		t.Fatal("expected error for invalid script")
	}
}

func TestOpenLuaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textobjects.lua")
	if err := os.WriteFile(path, []byte(`lookahead = 2`), 0o644); err != nil {
		t.Fatal(err)
	}

	overlay, err := OpenLua(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer overlay.Close()

	cfg := Default()
	if err := overlay.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lookahead.Lines() != 2 {
		t.Errorf("expected lookahead 2, got %d", cfg.Lookahead.Lines())
	}
}
