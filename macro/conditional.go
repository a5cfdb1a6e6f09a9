package macro

import (
	"context"
	"fmt"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
	"github.com/flowruntime/fbp/value"
)

// caseSpec is one branch of a Conditional: when the input value equals
// Equals, route it to the output pin named Output.
type caseSpec struct {
	equals value.Value
	output string
}

// NewConditional builds a Conditional instance: a single required input,
// "value", routed to one of several output pins by equality against a
// closed list of configured cases, or to a default output pin when none
// match.
//
// macroData shape:
//
//	cases:
//	  - equals: {type: string, value: "retry"}
//	    output: retryPin
//	defaultOutput: fallthroughPin
//
// This resolves spec.md's open-ended "closed enum of condition kinds" by
// choosing equality-against-a-literal as the one condition kind this module
// implements; it is the simplest shape that still lets a flow declaration
// express branching without embedding a general expression language in the
// flow file format.
func NewConditional(id, displayName string, macroData map[string]any) (node.Node, error) {
	rawCases, _ := macroData["cases"].([]any)
	cases := make([]caseSpec, 0, len(rawCases))
	outputs := map[string]*port.Output{}

	for i, rc := range rawCases {
		m, ok := rc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("macro Conditional %q: case %d is not a mapping", id, i)
		}
		eqRaw, ok := m["equals"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("macro Conditional %q: case %d missing {type,value} \"equals\"", id, i)
		}
		eqVal, ok := value.Unwrap(eqRaw)
		if !ok {
			return nil, fmt.Errorf("macro Conditional %q: case %d \"equals\" is not a well-formed wrapper", id, i)
		}
		outPin, ok := m["output"].(string)
		if !ok || outPin == "" {
			return nil, fmt.Errorf("macro Conditional %q: case %d missing \"output\"", id, i)
		}
		cases = append(cases, caseSpec{equals: eqVal, output: outPin})
		if _, exists := outputs[outPin]; !exists {
			outputs[outPin] = port.NewOutput(outPin, port.Ref)
		}
	}

	defaultOutput, _ := macroData["defaultOutput"].(string)
	if defaultOutput != "" {
		if _, exists := outputs[defaultOutput]; !exists {
			outputs[defaultOutput] = port.NewOutput(defaultOutput, port.Ref)
		}
	}

	in := port.NewQueueInput("value", port.Required, 64)
	processor := node.ProcessorFunc(func(ctx context.Context, in *node.ProcessInput) (*node.ProcessOutput, error) {
		v := in.Args["value"]
		for _, c := range cases {
			if v.Equal(c.equals) {
				return node.ByPin(map[string]value.Value{c.output: v}), nil
			}
		}
		if defaultOutput == "" {
			return node.Nothing(), nil
		}
		return node.ByPin(map[string]value.Value{defaultOutput: v}), nil
	})

	return node.NewComponent(id, displayName, []string{"value"},
		map[string]*port.Input{"value": in}, outputs, macroData, nil, processor), nil
}
