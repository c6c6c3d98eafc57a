package types

import "slices"

// TupleInfo stores the element types for a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// RegisterTuple creates or finds an existing tuple type with the given elements.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind == KindTuple && int(tt.Payload) < len(in.tuples) && slices.Equal(in.tuples[tt.Payload].Elems, elems) {
			return id
		}
	}
	in.tuples = append(in.tuples, TupleInfo{Elems: cloneTypeIDs(elems)})
	return in.internRaw(Type{Kind: KindTuple, Payload: slotOf(len(in.tuples), "tuple")})
}

// TupleInfo returns the element types for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}
