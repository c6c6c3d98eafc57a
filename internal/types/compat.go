package types

// Assignable reports whether a value of type src may be stored where dst is
// expected. Unknown types are compatible with everything and int widens to float.
func (in *Interner) Assignable(dst, src TypeID) bool {
	if dst == src || in.IsUnknown(dst) || in.IsUnknown(src) {
		return true
	}
	dt, _ := in.Lookup(dst)
	st, _ := in.Lookup(src)
	if dt.Kind == KindFloat && st.Kind == KindInt {
		return true
	}
	if dt.Kind != st.Kind {
		return false
	}
	switch dt.Kind {
	case KindList, KindSet, KindRange:
		return in.Assignable(dt.Elem, st.Elem)
	case KindDict:
		return in.Assignable(dt.Key, st.Key) && in.Assignable(dt.Elem, st.Elem)
	case KindTuple:
		return in.allPairs(in.tupleElems(dst), in.tupleElems(src), in.Assignable)
	case KindFn:
		df, _ := in.FnInfo(dst)
		sf, _ := in.FnInfo(src)
		return in.allPairs(df.Params, sf.Params, in.Assignable) && in.Assignable(df.Result, sf.Result)
	default:
		return false
	}
}

// Comparable reports whether == and != may be applied to the pair.
func (in *Interner) Comparable(a, b TypeID) bool {
	if a == b || in.IsUnknown(a) || in.IsUnknown(b) {
		return true
	}
	if in.IsNumeric(a) && in.IsNumeric(b) {
		return true
	}
	at, _ := in.Lookup(a)
	bt, _ := in.Lookup(b)
	if at.Kind != bt.Kind {
		return false
	}
	switch at.Kind {
	case KindList, KindSet, KindRange:
		return in.Comparable(at.Elem, bt.Elem)
	case KindDict:
		return in.Comparable(at.Key, bt.Key) && in.Comparable(at.Elem, bt.Elem)
	case KindTuple:
		return in.allPairs(in.tupleElems(a), in.tupleElems(b), in.Comparable)
	default:
		return false
	}
}

// Join returns the smallest type both a and b fit into, used for collection
// literal elements and branch results. ok is false when no such type exists.
func (in *Interner) Join(a, b TypeID) (TypeID, bool) {
	switch {
	case a == b:
		return a, true
	case in.KindOf(a) == KindInvalid:
		return b, true
	case in.KindOf(b) == KindInvalid:
		return a, true
	case in.KindOf(a) == KindAny:
		return b, true
	case in.KindOf(b) == KindAny:
		return a, true
	case in.IsNumeric(a) && in.IsNumeric(b):
		return in.builtins.Float, true
	}
	at, _ := in.Lookup(a)
	bt, _ := in.Lookup(b)
	if at.Kind != bt.Kind {
		return in.builtins.Invalid, false
	}
	switch at.Kind {
	case KindList, KindSet, KindRange:
		elem, ok := in.Join(at.Elem, bt.Elem)
		return in.Intern(Type{Kind: at.Kind, Elem: elem}), ok
	case KindDict:
		key, okKey := in.Join(at.Key, bt.Key)
		value, okValue := in.Join(at.Elem, bt.Elem)
		return in.Dict(key, value), okKey && okValue
	default:
		return in.builtins.Invalid, false
	}
}

func (in *Interner) tupleElems(id TypeID) []TypeID {
	if info, ok := in.TupleInfo(id); ok {
		return info.Elems
	}
	return nil
}

func (in *Interner) allPairs(a, b []TypeID, pred func(x, y TypeID) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !pred(a[i], b[i]) {
			return false
		}
	}
	return true
}
