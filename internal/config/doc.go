// Package config holds the configuration surface consumed by textobject
// resolution: query search windows, the surrounding-whitespace policy,
// per-query selection modes, and keymap definitions.
//
// Several options accept either a literal value or a computation over a
// fixed context record, mirroring how host editors let users supply
// functions in place of values. These are modeled as small tagged unions
// (Bool, Modes) resolved once per resolution call.
//
// Static values load from a TOML file. A Lua overlay may replace the
// function-capable options with actual script functions; see Overlay.
// Malformed configuration fails at load time with a ParseError, never
// during a resolution call.
package config
