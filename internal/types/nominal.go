package types

import (
	"slices"

	"gul/internal/source"
)

// StructField describes a single field inside a nominal struct type.
type StructField struct {
	Name source.StringID
	Type TypeID
}

// StructMethod is a method declared inside a struct body. Static methods
// take no self parameter and are called as `Type.name(...)`.
type StructMethod struct {
	Name   source.StringID
	Fn     TypeID
	Static bool
	Mut    bool // receiver is `ref self`
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Name    source.StringID
	Decl    source.Span
	Fields  []StructField
	Methods []StructMethod
}

// EnumInfo stores metadata for an enum type.
type EnumInfo struct {
	Name     source.StringID
	Decl     source.Span
	Variants []source.StringID
}

// ModuleInfo describes an imported module path.
type ModuleInfo struct {
	Path string
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
func (in *Interner) RegisterStruct(name source.StringID, decl source.Span) TypeID {
	in.structs = append(in.structs, StructInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindStruct, Payload: slotOf(len(in.structs), "struct")})
}

// SetStructFields stores the resolved field descriptors for the struct type.
func (in *Interner) SetStructFields(id TypeID, fields []StructField) {
	if info, ok := in.StructInfo(id); ok {
		info.Fields = slices.Clone(fields)
	}
}

// AddStructMethod appends a method to the struct type.
func (in *Interner) AddStructMethod(id TypeID, m StructMethod) {
	if info, ok := in.StructInfo(id); ok {
		info.Methods = append(info.Methods, m)
	}
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct || int(tt.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// Field looks up a field by name.
func (info *StructInfo) Field(name source.StringID) (StructField, bool) {
	for _, f := range info.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// Method looks up a method by name.
func (info *StructInfo) Method(name source.StringID) (StructMethod, bool) {
	for _, m := range info.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return StructMethod{}, false
}

// RegisterEnum allocates a nominal enum type.
func (in *Interner) RegisterEnum(name source.StringID, decl source.Span, variants []source.StringID) TypeID {
	in.enums = append(in.enums, EnumInfo{Name: name, Decl: decl, Variants: slices.Clone(variants)})
	return in.internRaw(Type{Kind: KindEnum, Payload: slotOf(len(in.enums), "enum")})
}

// EnumInfo returns metadata for the provided enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum || int(tt.Payload) >= len(in.enums) {
		return nil, false
	}
	return &in.enums[tt.Payload], true
}

// HasVariant reports whether name is one of the enum's variants.
func (info *EnumInfo) HasVariant(name source.StringID) bool {
	return slices.Contains(info.Variants, name)
}

// RegisterModule creates or finds the type of an imported module path.
func (in *Interner) RegisterModule(path string) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind == KindModule && int(tt.Payload) < len(in.modules) && in.modules[tt.Payload].Path == path {
			return id
		}
	}
	in.modules = append(in.modules, ModuleInfo{Path: path})
	return in.internRaw(Type{Kind: KindModule, Payload: slotOf(len(in.modules), "module")})
}

// ModuleInfo returns metadata for a module TypeID.
func (in *Interner) ModuleInfo(id TypeID) (*ModuleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindModule || int(tt.Payload) >= len(in.modules) {
		return nil, false
	}
	return &in.modules[tt.Payload], true
}
