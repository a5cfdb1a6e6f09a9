// Package observe carries the structured logger a flow runtime uses for
// worker errors, delivery errors, and graph lifecycle events.
//
// It is deliberately narrow: this runtime has no tracer or metrics surface
// of its own (spec Non-goals exclude an observability layer), but it still
// needs injectable, leveled, structured logging the way every other part of
// this codebase is logged, so this package adapts the teacher's
// observability.Logger/Attribute shape down to just that.
package observe
