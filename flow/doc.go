// Package flow is the top-level entry point this module exposes to an
// embedding application: [Flow] loads a declaration file into a wired,
// validated root graph and drives its lifecycle — start, cooperative stop,
// forceful cancellation via context, and resource shutdown — the way a
// caller of the teacher's top-level client package would drive one request.
package flow
