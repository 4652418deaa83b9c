// Package query provides a scanning textobject engine for the demo
// application and for exercising the resolver end to end.
//
// It locates candidates by walking the snapshot character by character, the
// same way a user would eyeball it: word and WORD runs, the current line,
// blank-line-delimited paragraphs, quoted spans, and balanced parenthesis
// blocks. The resolution core never depends on this package; a syntax-aware
// engine can replace it behind the same interface.
package query
