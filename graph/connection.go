package graph

import "fmt"

// Endpoint names one pin of one instance inside a graph: InstanceID "" (the
// empty string) refers to the graph itself, used by connections that
// terminate at one of the graph's own exposed input/output pins.
type Endpoint struct {
	InstanceID string
	PinID      string
}

func (e Endpoint) String() string {
	if e.InstanceID == "" {
		return "$graph." + e.PinID
	}
	return fmt.Sprintf("%s.%s", e.InstanceID, e.PinID)
}

// Connection wires one output pin to one input pin. Delayed and Hidden are
// copied verbatim from the flow declaration's connection entries by the
// loader; the scheduler never interprets either of them —
// spec.md leaves their runtime meaning as an open question this module
// does not resolve beyond carrying the data.
type Connection struct {
	From    Endpoint
	To      Endpoint
	Delayed bool
	Hidden  bool
}
