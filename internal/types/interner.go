package types

import (
	"fmt"

	"fortio.org/safecast"

	"gul/internal/source"
)

// Builtins stores TypeIDs for primitive types.
type Builtins struct {
	Invalid TypeID
	Any     TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal types (struct, enum) and modules get a fresh ID per registration.
type Interner struct {
	Strings *source.Interner

	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	tuples   []TupleInfo
	fns      []FnInfo
	structs  []StructInfo
	enums    []EnumInfo
	modules  []ModuleInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
// If strings is nil, a fresh string interner is allocated.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		Strings: strings,
		index:   make(map[typeKey]TypeID, 64),
	}
	in.tuples = append(in.tuples, TupleInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.structs = append(in.structs, StructInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.modules = append(in.modules, ModuleInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[typeKey(t)]; ok {
		return id
	}
	return in.internRaw(t)
}

// List, Set, Dict and Range are shorthands for the matching Make* descriptor.
func (in *Interner) List(elem TypeID) TypeID { return in.Intern(MakeList(elem)) }

func (in *Interner) Set(elem TypeID) TypeID { return in.Intern(MakeSet(elem)) }

func (in *Interner) Dict(key, value TypeID) TypeID { return in.Intern(MakeDict(key, value)) }

func (in *Interner) Range(elem TypeID) TypeID { return in.Intern(MakeRange(elem)) }

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// KindOf returns the kind of id, KindInvalid for unknown IDs.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// IsUnknown reports whether id carries no usable static information:
// either invalid (an error was already reported) or `any`.
func (in *Interner) IsUnknown(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindInvalid || k == KindAny
}

// IsNumeric reports int or float.
func (in *Interner) IsNumeric(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindInt || k == KindFloat
}

// Elem returns the element type of a list, set or range, and the value type of a dict.
func (in *Interner) Elem(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindList, KindSet, KindRange, KindDict:
		return tt.Elem
	default:
		return NoTypeID
	}
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Key     TypeID
	Payload uint32
}

func slotOf(n int, what string) uint32 {
	slot, err := safecast.Conv[uint32](n - 1)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return slot
}

func cloneTypeIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}
