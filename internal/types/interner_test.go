package types

import (
	"testing"

	"gul/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if b.Invalid != NoTypeID {
		t.Fatalf("invalid builtin must be NoTypeID, got %d", b.Invalid)
	}
	for name, id := range map[string]TypeID{"any": b.Any, "unit": b.Unit, "bool": b.Bool, "str": b.String, "int": b.Int, "float": b.Float} {
		if id == NoTypeID {
			t.Fatalf("builtin %s not initialized", name)
		}
	}
	unit, _ := in.Lookup(b.Unit)
	if unit.Kind != KindUnit {
		t.Fatalf("expected unit kind, got %v", unit.Kind)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if in.List(b.String) != in.List(b.String) {
		t.Fatalf("list types should be deduplicated")
	}
	if in.Dict(b.String, b.Int) == in.Dict(b.Int, b.String) {
		t.Fatalf("dict key and value must affect identity")
	}
	if in.RegisterTuple([]TypeID{b.Int, b.Bool}) != in.RegisterTuple([]TypeID{b.Int, b.Bool}) {
		t.Fatalf("tuple types should be deduplicated")
	}
	if in.RegisterFn([]TypeID{b.Int}, b.Int, false) == in.RegisterFn([]TypeID{b.Int}, b.Int, true) {
		t.Fatalf("async must affect fn identity")
	}
}

func TestNominalTypesAreDistinct(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	name := strs.Intern("Point")
	first := in.RegisterStruct(name, source.Span{})
	second := in.RegisterStruct(name, source.Span{})
	if first == second {
		t.Fatalf("each struct registration must produce a fresh type")
	}
	x := strs.Intern("x")
	in.SetStructFields(first, []StructField{{Name: x, Type: in.Builtins().Float}})
	info, ok := in.StructInfo(first)
	if !ok {
		t.Fatalf("struct info missing")
	}
	if f, ok := info.Field(x); !ok || f.Type != in.Builtins().Float {
		t.Fatalf("field lookup failed: %+v", f)
	}
	if in.RegisterModule("std.io") != in.RegisterModule("std.io") {
		t.Fatalf("module types should be deduplicated by path")
	}
}

func TestLabel(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	color := in.RegisterEnum(strs.Intern("Color"), source.Span{}, nil)
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "int"},
		{b.String, "str"},
		{b.Unit, "()"},
		{NoTypeID, "?"},
		{in.List(b.Int), "list[int]"},
		{in.Dict(b.String, in.Set(b.Float)), "dict[str, set[float]]"},
		{in.RegisterTuple([]TypeID{b.Int, b.Bool}), "tuple[int, bool]"},
		{in.RegisterFn([]TypeID{b.Int, b.Any}, b.Unit, true), "async fn(int, any) -> ()"},
		{color, "Color"},
		{in.RegisterModule("std.http"), "module std.http"},
	}
	for _, tc := range cases {
		if got := Label(in, tc.id); got != tc.want {
			t.Errorf("Label = %q, want %q", got, tc.want)
		}
	}
}

func TestAssignableAndJoin(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if !in.Assignable(b.Float, b.Int) {
		t.Errorf("int should widen to float")
	}
	if in.Assignable(b.Int, b.Float) {
		t.Errorf("float must not narrow to int")
	}
	if !in.Assignable(in.List(b.Int), in.List(b.Any)) {
		t.Errorf("empty list literal should fit any list")
	}
	if in.Assignable(in.List(b.Int), in.Set(b.Int)) {
		t.Errorf("set is not a list")
	}
	if j, ok := in.Join(b.Int, b.Float); !ok || j != b.Float {
		t.Errorf("join(int, float) = %s, %v", Label(in, j), ok)
	}
	if _, ok := in.Join(b.Int, b.String); ok {
		t.Errorf("join(int, str) should fail")
	}
}
