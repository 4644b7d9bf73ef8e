// Package render turns IR statements into binding source text.
//
// Rendering is a pure function of the statement. Invariants are enforced by
// the translator; a statement that violates them is rendered as-is.
package render
