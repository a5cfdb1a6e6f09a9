package graph

// Option configures graph construction, following the functional-options
// shape used throughout this module (and the teacher's own
// GraphBuilder/NodeOption/EdgeOption surface).
type Option func(*config)

type config struct {
	portCapacity int
}

func defaultConfig() config {
	return config{portCapacity: 256}
}

// WithPortCapacity sets the bounded-queue capacity used for every
// QUEUE-mode graph input/output splice created by [NewGraph]. Capacities
// are rounded up to the next power of two by the underlying queue.
func WithPortCapacity(n int) Option {
	return func(c *config) { c.portCapacity = n }
}
