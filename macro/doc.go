// Package macro implements the closed set of built-in parametric
// components a flow declaration can instantiate without importing any
// user-supplied node class: InlineValue, GetAttribute, and Conditional. A
// [Registry] resolves a macro name to a constructor; [Builtins] returns one
// pre-populated with all three.
package macro
