package value

import "testing"

func TestCloneDeepCopiesContainers(t *testing.T) {
	original := Sequence([]Value{
		Mapping(map[string]Value{"a": Number(1)}),
		String("x"),
	})
	clone := original.Clone()

	seq, _ := original.SequenceItems()
	m, _ := seq[0].MappingItems()
	m["a"] = Number(99)

	cloneSeq, _ := clone.SequenceItems()
	cloneMap, _ := cloneSeq[0].MappingItems()
	n, _ := cloneMap["a"].Number()
	if n != 1 {
		t.Fatalf("clone observed mutation of original: got %v, want 1", n)
	}
}

func TestCloneBinaryIsIndependent(t *testing.T) {
	b := []byte{1, 2, 3}
	original := Binary(b)
	clone := original.Clone()
	b[0] = 99

	cloned, _ := clone.BinaryBytes()
	if cloned[0] != 1 {
		t.Fatalf("clone shares backing array with original: got %v", cloned)
	}
}

func TestCloneOpaqueIsUnchanged(t *testing.T) {
	type handle struct{ id int }
	h := &handle{id: 1}
	v := Opaque(h)
	clone := v.Clone()
	got, ok := clone.OpaqueValue()
	if !ok || got.(*handle) != h {
		t.Fatalf("expected Clone to return the same opaque pointer, got %v", got)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers equal", Number(1), Number(1), true},
		{"numbers differ", Number(1), Number(2), false},
		{"kinds differ", Number(1), String("1"), false},
		{"sequences equal", Sequence([]Value{Number(1), Bool(true)}), Sequence([]Value{Number(1), Bool(true)}), true},
		{"sequences differ by length", Sequence([]Value{Number(1)}), Sequence([]Value{Number(1), Number(2)}), false},
		{"mappings equal", Mapping(map[string]Value{"k": String("v")}), Mapping(map[string]Value{"k": String("v")}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromAnyRoundTrip(t *testing.T) {
	raw := map[string]any{
		"name":   "flow",
		"count":  float64(3),
		"active": true,
		"tags":   []any{"a", "b"},
	}
	v := FromAny(raw)
	if v.Kind() != KindMapping {
		t.Fatalf("expected mapping kind, got %s", v.Kind())
	}
	back := v.Any().(map[string]any)
	if back["name"] != "flow" || back["count"] != float64(3) {
		t.Fatalf("round trip lost data: %#v", back)
	}
}

func TestTypedUnwrap(t *testing.T) {
	raw := map[string]any{"type": "string", "value": "hello"}
	v, ok := Unwrap(raw)
	if !ok {
		t.Fatal("expected ok=true for a well-formed {type,value} wrapper")
	}
	s, _ := v.Str()
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestUnwrapRejectsNonWrapperMaps(t *testing.T) {
	raw := map[string]any{"type": "string", "value": "x", "extra": 1}
	if _, ok := Unwrap(raw); ok {
		t.Fatal("expected ok=false when the map has more than the two wrapper keys")
	}
}
