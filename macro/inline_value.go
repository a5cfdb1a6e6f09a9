package macro

import (
	"context"
	"fmt"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
	"github.com/flowruntime/fbp/value"
)

// NewInlineValue builds an InlineValue instance: a zero-input, one-output
// ("value") component that emits its configured value exactly once and
// then closes — the macro data shape is `{value: {type, value}}`, the same
// `{type, value}` wrapper used for node input defaults throughout this
// module (see value.Typed).
func NewInlineValue(id, displayName string, macroData map[string]any) (node.Node, error) {
	raw, ok := macroData["value"]
	if !ok {
		return nil, fmt.Errorf("macro InlineValue %q: macroData missing \"value\"", id)
	}
	wrapper, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("macro InlineValue %q: \"value\" must be a {type, value} mapping", id)
	}
	v, ok := value.Unwrap(wrapper)
	if !ok {
		return nil, fmt.Errorf("macro InlineValue %q: \"value\" is not a well-formed {type, value} wrapper", id)
	}

	out := port.NewOutput("value", port.Ref)
	return node.NewComponent(id, displayName, nil, nil,
		map[string]*port.Output{"value": out}, macroData, nil,
		node.ProcessorFunc(func(ctx context.Context, in *node.ProcessInput) (*node.ProcessOutput, error) {
			return node.SingleDone(v), nil
		})), nil
}
