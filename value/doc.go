// Package value defines the payload type carried on every port: a small
// closed sum type covering the primitive and container shapes a flow
// declaration can express, plus an escape hatch for values the runtime never
// introspects.
//
// A [Value] is constructed with one of [Number], [String], [Bool], [Binary],
// [Sequence], [Mapping], or [Opaque] and inspected with [Value.Kind] and the
// matching accessor. [Value.Clone] performs the deep copy used by VALUE-mode
// output fan-out.
package value
