package types

import "slices"

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []TypeID
	Result TypeID
	Async  bool
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(params []TypeID, result TypeID, async bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Result == result && info.Async == async && slices.Equal(info.Params, params) {
			return id
		}
	}
	in.fns = append(in.fns, FnInfo{
		Params: cloneTypeIDs(params),
		Result: result,
		Async:  async,
	})
	return in.internRaw(Type{Kind: KindFn, Payload: slotOf(len(in.fns), "fn")})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
