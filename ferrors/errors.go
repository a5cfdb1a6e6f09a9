package ferrors

import "fmt"

// LoadError reports a failure to parse a flow declaration or resolve one of
// its imports: malformed YAML, an unknown import source, an instance whose
// nodeId resolves to neither a registered node class nor a built-in macro,
// or a cyclic import chain. It is always fatal and always surfaces
// synchronously from the Loader, never from a running worker.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// GraphValidationError reports that a child's REQUIRED input has neither an
// incoming connection nor a static value once a graph is wired. A connection
// naming an instance or pin that does not exist is a [ConnectionError]
// instead, and pin types are not checked. It is fatal and surfaces from
// graph construction, before any worker runs.
type GraphValidationError struct {
	NodeID string
	PinID  string
	Reason string
}

func (e *GraphValidationError) Error() string {
	if e.PinID != "" {
		return fmt.Sprintf("graph validation: node %q pin %q: %s", e.NodeID, e.PinID, e.Reason)
	}
	return fmt.Sprintf("graph validation: node %q: %s", e.NodeID, e.Reason)
}

// ConnectionError reports a failure to wire a specific connection because a
// referenced instance or pin does not exist. It is fatal and surfaces from
// graph construction.
type ConnectionError struct {
	From, To string
	Reason   string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s -> %s: %s", e.From, e.To, e.Reason)
}

// WorkerError reports that a single component's process call returned an
// error. It is localized to that component: the runtime logs it, closes the
// component's outputs (propagating EOS downstream), and lets every other
// node in the graph keep running.
type WorkerError struct {
	NodeID string
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %q: %v", e.NodeID, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// DeliveryError reports that a value could not be handed to a downstream
// input (the destination queue reported a permanent, non-backpressure
// failure). It is logged and the value is dropped; it never stops the
// sending component.
type DeliveryError struct {
	NodeID string
	PinID  string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery %q pin %q: %v", e.NodeID, e.PinID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
