// Package app is the interactive demo for textobject resolution: a tcell
// viewer that opens a file, moves a cursor, and turns trigger keys into
// resolved selections.
package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textobjects/internal/config"
	"github.com/dshills/textobjects/internal/engine/buffer"
	"github.com/dshills/textobjects/internal/input/keymap"
	"github.com/dshills/textobjects/internal/query"
	"github.com/dshills/textobjects/internal/textobject"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configure the application.
type Options struct {
	// File is the text file to open.
	File string

	// ConfigPath is an optional TOML configuration file.
	ConfigPath string

	// LuaPath is an optional Lua configuration overlay.
	LuaPath string

	// Watch reloads the TOML configuration when it changes on disk.
	Watch bool
}

// selection is the last applied selection, if any.
type selection struct {
	rng    buffer.Range
	mode   textobject.SelectionMode
	active bool
}

// App owns the demo state. It acts as the keymap host, the environment
// source, and the selection applier for the resolution core.
type App struct {
	opts   Options
	screen tcell.Screen

	snap    *buffer.Snapshot
	cursor  buffer.Point
	submode textobject.Submode
	sel     selection
	status  string

	engine   *query.Engine
	cfg      *config.Config
	overlay  *config.Overlay
	resolver *textobject.Resolver
	att      *keymap.Attachment
	watcher  *config.Watcher

	bindings map[bindingKey]boundHandler
	nextID   keymap.BindingID
	byID     map[keymap.BindingID]bindingKey
}

type bindingKey struct {
	inv     textobject.Invocation
	trigger string
}

type boundHandler struct {
	handler     func()
	description string
}

// New creates the application and loads the file and configuration.
func New(opts Options) (*App, error) {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", opts.File, err)
	}

	a := &App{
		opts:     opts,
		snap:     buffer.NewSnapshotFromString(string(data)),
		engine:   query.NewEngine(),
		bindings: make(map[bindingKey]boundHandler),
		byID:     make(map[keymap.BindingID]bindingKey),
	}

	if err := a.loadConfig(); err != nil {
		return nil, err
	}
	return a, nil
}

// SetScreen injects a screen; used by tests with a simulation screen.
// Run creates a real terminal screen when none was injected.
func (a *App) SetScreen(screen tcell.Screen) {
	a.screen = screen
}

// loadConfig (re)loads configuration and re-attaches the keymaps.
func (a *App) loadConfig() error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}

	if a.opts.LuaPath != "" {
		overlay, err := config.OpenLua(a.opts.LuaPath)
		if err != nil {
			return err
		}
		if err := overlay.Apply(cfg); err != nil {
			overlay.Close()
			return err
		}
		if a.overlay != nil {
			a.overlay.Close()
		}
		a.overlay = overlay
	}

	if len(cfg.Keymaps) == 0 {
		defaultKeymaps(cfg)
	}

	if a.att != nil {
		a.att.Detach()
	}

	a.cfg = cfg
	a.resolver = textobject.NewResolver(a.engine, a, cfg.ResolverOptions())

	att, err := keymap.Attach(a, cfg, a.engine, a.resolver, a.env)
	if err != nil {
		return err
	}
	a.att = att
	return nil
}

// defaultKeymaps installs the built-in triggers when no configuration
// provides any.
func defaultKeymaps(cfg *config.Config) {
	cfg.Lookahead = config.WindowEnabled()
	cfg.IncludeSurroundingWhitespace = config.LiteralBool(false)
	cfg.Keymaps["w"] = config.Keymap{Query: query.QueryWord, Description: "select a word"}
	cfg.Keymaps["W"] = config.Keymap{Query: query.QueryWORD, Description: "select a WORD"}
	cfg.Keymaps["p"] = config.Keymap{Query: query.QueryParagraph, Description: "select a paragraph"}
	cfg.Keymaps["b"] = config.Keymap{Query: query.QueryBlock, Description: "select a block"}
	cfg.Keymaps["q"] = config.Keymap{Query: query.QueryQuote, Description: "select a quote"}
	cfg.Keymaps["n"] = config.Keymap{Query: query.QueryLine, Description: "select a line"}
	cfg.SelectionModes = config.ModeTable(map[string]textobject.SelectionMode{
		query.QueryLine:      textobject.SelectLine,
		query.QueryParagraph: textobject.SelectLine,
	})
}

// env captures the live environment at keypress time.
func (a *App) env() textobject.Env {
	return textobject.Env{
		Snap:    a.snap,
		Cursor:  a.cursor,
		Submode: a.submode,
	}
}

// Bind implements keymap.Host.
func (a *App) Bind(inv textobject.Invocation, trigger, description string, handler func()) (keymap.BindingID, error) {
	key := bindingKey{inv: inv, trigger: trigger}
	if _, exists := a.bindings[key]; exists {
		return 0, fmt.Errorf("trigger %q already bound for %s", trigger, inv)
	}
	a.nextID++
	a.bindings[key] = boundHandler{handler: handler, description: description}
	a.byID[a.nextID] = key
	return a.nextID, nil
}

// Unbind implements keymap.Host.
func (a *App) Unbind(id keymap.BindingID) error {
	key, ok := a.byID[id]
	if !ok {
		return fmt.Errorf("unknown binding %d", id)
	}
	delete(a.bindings, key)
	delete(a.byID, id)
	return nil
}

// ApplySelection implements the resolution core's applier: the terminal
// side effect of a successful resolution.
func (a *App) ApplySelection(snap *buffer.Snapshot, r buffer.Range, mode textobject.SelectionMode) {
	a.sel = selection{rng: r, mode: mode, active: true}
	a.status = fmt.Sprintf("selected %s %s", mode, r)
}

// Run drives the event loop until quit.
func (a *App) Run() error {
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		a.screen = screen
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	if a.opts.Watch && a.opts.ConfigPath != "" {
		if err := a.startWatcher(); err != nil {
			return err
		}
		defer a.watcher.Stop()
	}
	if a.overlay != nil {
		defer a.overlay.Close()
	}

	a.draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
			a.draw()
		case *tcell.EventInterrupt:
			// Config changed on disk.
			if err := a.loadConfig(); err != nil {
				a.status = fmt.Sprintf("config reload failed: %v", err)
			} else {
				a.status = "config reloaded"
			}
			a.draw()
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			a.draw()
		}
	}
}

// startWatcher forwards config change signals into the event loop.
func (a *App) startWatcher() error {
	w, err := config.NewWatcher(a.opts.ConfigPath, 250*time.Millisecond)
	if err != nil {
		return err
	}
	ch, err := w.Start()
	if err != nil {
		w.Stop()
		return err
	}
	a.watcher = w
	go func() {
		for range ch {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()
	return nil
}

// handleKey processes one key event.
func (a *App) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyEscape:
		a.submode = textobject.SubmodeNone
		a.sel = selection{}
		a.status = ""
		return nil
	case tcell.KeyCtrlV:
		a.toggleSubmode(textobject.SubmodeBlock)
		return nil
	case tcell.KeyUp:
		a.moveCursor(-1, 0)
		return nil
	case tcell.KeyDown:
		a.moveCursor(1, 0)
		return nil
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
		return nil
	case tcell.KeyRight:
		a.moveCursor(0, 1)
		return nil
	}

	if ev.Key() != tcell.KeyRune {
		return nil
	}
	switch r := ev.Rune(); r {
	case 'h':
		a.moveCursor(0, -1)
	case 'j':
		a.moveCursor(1, 0)
	case 'k':
		a.moveCursor(-1, 0)
	case 'l':
		a.moveCursor(0, 1)
	case 'v':
		a.toggleSubmode(textobject.SubmodeChar)
	case 'V':
		a.toggleSubmode(textobject.SubmodeLine)
	default:
		a.trigger(string(r))
	}
	return nil
}

// trigger dispatches a bound textobject key for the current invocation
// context: visual when a visual submode is live, operator-pending otherwise.
func (a *App) trigger(key string) {
	inv := textobject.InvokeOperatorPending
	if a.submode != textobject.SubmodeNone {
		inv = textobject.InvokeVisual
	}
	bound, ok := a.bindings[bindingKey{inv: inv, trigger: key}]
	if !ok {
		return
	}
	a.status = ""
	a.sel = selection{}
	bound.handler()
	if !a.sel.active {
		a.status = "no textobject found"
	}
}

func (a *App) toggleSubmode(s textobject.Submode) {
	if a.submode == s {
		a.submode = textobject.SubmodeNone
	} else {
		a.submode = s
	}
}

func (a *App) moveCursor(dRow, dCol int) {
	row := a.cursor.Row + dRow
	if row < 0 {
		row = 0
	}
	if row > a.snap.LineCount()-1 {
		row = a.snap.LineCount() - 1
	}
	col := a.cursor.Col + dCol
	if col < 0 {
		col = 0
	}
	if n := a.snap.LineLen(row); col > n {
		col = n
	}
	a.cursor = buffer.Point{Row: row, Col: col}
}
