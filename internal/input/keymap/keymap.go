package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/textobjects/internal/config"
	"github.com/dshills/textobjects/internal/textobject"
)

// BindingID identifies a binding registered with a Host.
type BindingID uint64

// Host registers key bindings with the editor's binding table.
type Host interface {
	// Bind registers a handler for the given trigger in the given
	// invocation context and returns an identifier for later removal.
	Bind(inv textobject.Invocation, trigger, description string, handler func()) (BindingID, error)

	// Unbind removes a previously registered binding.
	Unbind(id BindingID) error
}

// QuerySet reports which textobject queries the active language defines.
type QuerySet interface {
	Defines(queryID string) bool
}

// Resolver is the resolution entry point a binding handler invokes.
type Resolver interface {
	Resolve(queryID string, invocation textobject.Invocation, env textobject.Env) bool
}

// EnvFunc captures the live editor environment at keypress time.
type EnvFunc func() textobject.Env

// Attachment tracks the bindings registered by a single Attach call.
type Attachment struct {
	mu   sync.Mutex
	host Host
	ids  []BindingID
}

// Attach registers the configured keymaps with the host. Each trigger whose
// query the language defines is bound twice: once for operator-pending and
// once for visual invocation. Triggers whose query is undefined for the
// language are skipped entirely.
//
// On error, any bindings already registered are removed before returning.
func Attach(host Host, cfg *config.Config, queries QuerySet, res Resolver, env EnvFunc) (*Attachment, error) {
	att := &Attachment{host: host}

	// Deterministic registration order.
	triggers := make([]string, 0, len(cfg.Keymaps))
	for trigger := range cfg.Keymaps {
		triggers = append(triggers, trigger)
	}
	sort.Strings(triggers)

	for _, trigger := range triggers {
		km := cfg.Keymaps[trigger]
		if !queries.Defines(km.Query) {
			continue
		}
		for _, inv := range []textobject.Invocation{textobject.InvokeOperatorPending, textobject.InvokeVisual} {
			queryID := km.Query
			invocation := inv
			id, err := host.Bind(invocation, trigger, km.Description, func() {
				res.Resolve(queryID, invocation, env())
			})
			if err != nil {
				att.Detach()
				return nil, fmt.Errorf("binding %q for %s: %w", trigger, invocation, err)
			}
			att.ids = append(att.ids, id)
		}
	}

	return att, nil
}

// Detach removes exactly the bindings this attachment registered.
// It is safe to call more than once.
func (a *Attachment) Detach() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, id := range a.ids {
		// Unbind failures are ignored; the host may already have
		// dropped the binding (e.g. on buffer close).
		_ = a.host.Unbind(id)
	}
	a.ids = nil
}

// Len returns the number of live bindings.
func (a *Attachment) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ids)
}
