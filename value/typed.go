package value

import "fmt"

// Typed is the `{type, value}` wrapper shape used by flow declaration files
// wherever a static or literal payload must carry an explicit type alongside
// its data (node input defaults, the InlineValue macro's configured value).
// Type is normally one of "number", "string", "bool", "binary", "sequence",
// "mapping"; for those, [Typed.Decode] reports an error when the decoded kind
// differs. Any other string (including "") decodes the wrapped value with
// [FromAny] without a kind check, and the type name is not kept.
type Typed struct {
	Type  string `yaml:"type" json:"type"`
	Value any    `yaml:"value" json:"value"`
}

// Decode converts a Typed wrapper into a Value, honoring the declared Type
// where it names one of the six non-opaque kinds and falling back to [FromAny] for
// anything else (including structured Sequence/Mapping values nested inside
// the wrapper, which arrive already as []any / map[string]any from the YAML
// or JSON decoder).
func (t Typed) Decode() (Value, error) {
	switch t.Type {
	case "number":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindNumber)
	case "string":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindString)
	case "bool":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindBool)
	case "binary":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindBinary)
	case "sequence":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindSequence)
	case "mapping":
		return FromAny(t.Value), matchKind(FromAny(t.Value), KindMapping)
	case "":
		return FromAny(t.Value), nil
	default:
		return FromAny(t.Value), nil
	}
}

func matchKind(v Value, want Kind) error {
	if v.Kind() != want {
		return fmt.Errorf("value: declared type %s does not match decoded kind %s", want, v.Kind())
	}
	return nil
}

// Unwrap inspects a plain decoded map (as produced by yaml.v3/encoding/json,
// i.e. map[string]any) and, if it has exactly the two keys "type" and
// "value", decodes it as a Typed wrapper. It reports ok=false for anything
// else, including maps that merely happen to have a "type" field alongside
// other data.
//
// This mirrors the schema-unwrapping a large-language-model output parser
// needs when a model echoes back a type descriptor instead of a literal
// value; here the same shape is the deliberate, well-formed encoding a flow
// declaration uses for typed literals, so no JSON-repair retry is needed.
func Unwrap(raw map[string]any) (Value, bool) {
	if len(raw) != 2 {
		return Value{}, false
	}
	typ, hasType := raw["type"]
	val, hasValue := raw["value"]
	if !hasType || !hasValue {
		return Value{}, false
	}
	typName, ok := typ.(string)
	if !ok {
		return Value{}, false
	}
	v, err := Typed{Type: typName, Value: val}.Decode()
	if err != nil {
		return FromAny(val), true
	}
	return v, true
}
