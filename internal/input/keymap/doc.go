// Package keymap is the registration glue between configured textobject
// keymaps and a host editor's binding table.
//
// Attach registers each configured trigger in both the operator-pending and
// visual invocation contexts, skipping any query the active language does
// not define. Detach removes exactly the bindings Attach registered, and
// nothing else. The package performs no resolution itself; handlers delegate
// to a Resolver with the environment captured at keypress time.
package keymap
