package value

import "fmt"

// Kind identifies which variant of the sum type a [Value] holds.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindBinary
	KindSequence
	KindMapping
	KindOpaque
)

// String renders a Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindBinary:
		return "binary"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the payload carried through a port. It is a closed sum type, not
// an interface: every variant is known to this package, so Clone and the
// accessors never need a type switch over unbounded implementations.
//
// The zero Value is KindNumber with value 0, matching the zero value of
// float64; callers that need a defined "empty" sentinel should use an
// explicit Value such as String("").
type Value struct {
	kind    Kind
	num     float64
	str     string
	boolean bool
	bin     []byte
	seq     []Value
	mapping map[string]Value
	opaque  any
}

// Number constructs a numeric Value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// String constructs a string Value.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Bool constructs a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, boolean: v} }

// Binary constructs a byte-string Value. The slice is not copied; callers
// that mutate it afterward should pass a copy.
func Binary(v []byte) Value { return Value{kind: KindBinary, bin: v} }

// Sequence constructs an ordered-list Value.
func Sequence(v []Value) Value { return Value{kind: KindSequence, seq: v} }

// Mapping constructs a string-keyed Value.
func Mapping(v map[string]Value) Value { return Value{kind: KindMapping, mapping: v} }

// Opaque wraps an arbitrary Go value the runtime never inspects. It is the
// escape hatch for payloads that do not fit the other six variants; user
// components are expected to type-assert it back to their own type.
func Opaque(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric payload and whether v holds one.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Str returns the string payload and whether v holds one.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Bool returns the boolean payload and whether v holds one.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBool }

// BinaryBytes returns the byte-string payload and whether v holds one.
func (v Value) BinaryBytes() ([]byte, bool) { return v.bin, v.kind == KindBinary }

// SequenceItems returns the ordered-list payload and whether v holds one.
func (v Value) SequenceItems() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// MappingItems returns the string-keyed payload and whether v holds one.
func (v Value) MappingItems() (map[string]Value, bool) { return v.mapping, v.kind == KindMapping }

// OpaqueValue returns the wrapped payload and whether v holds one.
func (v Value) OpaqueValue() (any, bool) { return v.opaque, v.kind == KindOpaque }

// Clone deep-copies v. Sequence and Mapping are copied recursively so a
// VALUE-mode output fan-out gives each consumer an independent tree; Binary
// is copied byte-for-byte. Opaque payloads are returned unchanged: the
// runtime cannot introspect their content, so it cannot clone them either,
// and an Opaque-carrying node must not rely on VALUE-mode isolation.
func (v Value) Clone() Value {
	switch v.kind {
	case KindBinary:
		cp := make([]byte, len(v.bin))
		copy(cp, v.bin)
		return Value{kind: KindBinary, bin: cp}
	case KindSequence:
		cp := make([]Value, len(v.seq))
		for i, item := range v.seq {
			cp[i] = item.Clone()
		}
		return Value{kind: KindSequence, seq: cp}
	case KindMapping:
		cp := make(map[string]Value, len(v.mapping))
		for k, item := range v.mapping {
			cp[k] = item.Clone()
		}
		return Value{kind: KindMapping, mapping: cp}
	default:
		return v
	}
}

// Equal reports whether v and other hold the same kind and content. Opaque
// values compare equal only when the wrapped value is comparable and equal
// under ==; incomparable opaque payloads (e.g. slices or maps) are never
// equal, even to themselves.
func (v Value) Equal(other Value) (eq bool) {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.boolean == other.boolean
	case KindBinary:
		if len(v.bin) != len(other.bin) {
			return false
		}
		for i := range v.bin {
			if v.bin[i] != other.bin[i] {
				return false
			}
		}
		return true
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapping) != len(other.mapping) {
			return false
		}
		for k, item := range v.mapping {
			o, ok := other.mapping[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	case KindOpaque:
		defer func() {
			if recover() != nil {
				eq = false
			}
		}()
		return v.opaque == other.opaque
	default:
		return false
	}
}

// Any converts v back into plain Go data (string, float64, bool, []byte,
// []any, map[string]any, or whatever was passed to Opaque). It is the
// inverse of [FromAny] and is used where a node body expects ordinary Go
// values rather than a tagged [Value].
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.boolean
	case KindBinary:
		return v.bin
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Any()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapping))
		for k, item := range v.mapping {
			out[k] = item.Any()
		}
		return out
	case KindOpaque:
		return v.opaque
	default:
		return nil
	}
}

// FromAny converts a plain Go value decoded from YAML or JSON (the shapes
// produced by gopkg.in/yaml.v3 and encoding/json: string, bool, int, float64,
// []byte, []any, map[string]any, nil) into a Value. Any other Go type is
// wrapped with Opaque.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return String("")
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case []byte:
		return Binary(t)
	case []any:
		seq := make([]Value, len(t))
		for i, item := range t {
			seq[i] = FromAny(item)
		}
		return Sequence(seq)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			m[k] = FromAny(item)
		}
		return Mapping(m)
	case map[any]any:
		// gopkg.in/yaml.v3 decodes untyped mapping nodes with string keys
		// through map[string]any already; map[any]any only shows up for
		// non-string-keyed YAML maps, which this runtime does not support
		// as flow data and passes through as Opaque instead of panicking.
		return Opaque(t)
	default:
		return Opaque(t)
	}
}
