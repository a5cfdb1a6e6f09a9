package macro

import (
	"context"
	"fmt"

	"github.com/flowruntime/fbp/node"
	"github.com/flowruntime/fbp/port"
	"github.com/flowruntime/fbp/value"
)

// NewGetAttribute builds a GetAttribute instance: looks up a key in a
// Mapping (or an Opaque value whose underlying Go type is map[string]any)
// and emits the result on its "value" output.
//
// macroData must carry `{key: {type: "dynamic" | "string", value?: string}}`.
// type="string" fixes the key to the given literal value (value is
// required) and the instance has a single required input, "object";
// type="dynamic" exposes a second required input, "key", read fresh every
// iteration and value is ignored.
func NewGetAttribute(id, displayName string, macroData map[string]any) (node.Node, error) {
	keySpec, ok := macroData["key"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("macro GetAttribute %q: macroData.key must be a {type, value} mapping", id)
	}
	keyType, _ := keySpec["type"].(string)

	inputs := map[string]*port.Input{
		"object": port.NewQueueInput("object", port.Required, 64),
	}
	inputOrder := []string{"object"}
	var sampled []string
	var staticKey *string

	switch keyType {
	case "string":
		s, ok := keySpec["value"].(string)
		if !ok {
			return nil, fmt.Errorf("macro GetAttribute %q: key.type is \"string\" but key.value is missing or not a string", id)
		}
		staticKey = &s
	case "dynamic":
		inputs["key"] = port.NewQueueInput("key", port.Required, 64)
		inputOrder = append(inputOrder, "key")
	default:
		return nil, fmt.Errorf("macro GetAttribute %q: key.type must be \"dynamic\" or \"string\", got %q", id, keyType)
	}

	out := port.NewOutput("value", port.Ref)
	processor := node.ProcessorFunc(func(ctx context.Context, in *node.ProcessInput) (*node.ProcessOutput, error) {
		var key string
		if staticKey != nil {
			key = *staticKey
		} else {
			keyVal, ok := in.Args["key"]
			if !ok {
				return nil, fmt.Errorf("macro GetAttribute %q: missing \"key\" input", id)
			}
			s, ok := keyVal.Str()
			if !ok {
				return nil, fmt.Errorf("macro GetAttribute %q: \"key\" input must be a string, got %s", id, keyVal.Kind())
			}
			key = s
		}

		object := in.Args["object"]
		var m map[string]value.Value
		switch object.Kind() {
		case value.KindMapping:
			m, _ = object.MappingItems()
		case value.KindOpaque:
			if raw, ok := object.Any().(map[string]any); ok {
				m = make(map[string]value.Value, len(raw))
				for k, v := range raw {
					m[k] = value.FromAny(v)
				}
			}
		}
		if m == nil {
			return nil, fmt.Errorf("macro GetAttribute %q: object is not a mapping (kind %s)", id, object.Kind())
		}
		v, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("macro GetAttribute %q: object has no attribute %q", id, key)
		}
		return node.Single(v), nil
	})

	return node.NewComponent(id, displayName, inputOrder, inputs,
		map[string]*port.Output{"value": out}, macroData, sampled, processor), nil
}
