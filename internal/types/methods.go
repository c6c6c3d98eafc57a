package types

// MethodResult says how a container method's result type follows from its
// receiver.
type MethodResult uint8

const (
	ResultUnit MethodResult = iota
	ResultBool
	ResultInt
	ResultString
	ResultSelf     // same type as the receiver
	ResultElem     // list or set element, dict value
	ResultKeyList  // list of dict keys
	ResultElemList // list of dict values
	ResultStrList  // list of strings
)

// ContainerMethod is a method the runtime library provides on lists, sets,
// dicts and strings. Name is the canonical spelling shared by all aliases.
type ContainerMethod struct {
	Name    string
	MinArgs int
	MaxArgs int
	Mutates bool
	Result  MethodResult
}

func method(name string, minArgs, maxArgs int, mutates bool, result MethodResult) ContainerMethod {
	return ContainerMethod{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Mutates: mutates, Result: result}
}

var (
	mLen     = method("len", 0, 0, false, ResultInt)
	mIsEmpty = method("is_empty", 0, 0, false, ResultBool)
	mClear   = method("clear", 0, 0, true, ResultUnit)
	mCopy    = method("copy", 0, 0, false, ResultSelf)
)

var containerMethods = map[Kind]map[string]ContainerMethod{
	KindList: {
		"append":   method("push", 1, 1, true, ResultUnit),
		"push":     method("push", 1, 1, true, ResultUnit),
		"pop":      method("pop", 0, 1, true, ResultElem),
		"insert":   method("insert", 2, 2, true, ResultUnit),
		"remove":   method("remove", 1, 1, true, ResultUnit),
		"extend":   method("extend", 1, 1, true, ResultUnit),
		"reverse":  method("reverse", 0, 0, true, ResultUnit),
		"sort":     method("sort", 0, 0, true, ResultUnit),
		"contains": method("contains", 1, 1, false, ResultBool),
		"index":    method("index", 1, 1, false, ResultInt),
		"count":    method("count", 1, 1, false, ResultInt),
		"len":      mLen,
		"is_empty": mIsEmpty,
		"clear":    mClear,
		"copy":     mCopy,
	},
	KindSet: {
		"add":          method("insert", 1, 1, true, ResultUnit),
		"insert":       method("insert", 1, 1, true, ResultUnit),
		"remove":       method("remove", 1, 1, true, ResultUnit),
		"discard":      method("remove", 1, 1, true, ResultUnit),
		"contains":     method("contains", 1, 1, false, ResultBool),
		"union":        method("union", 1, 1, false, ResultSelf),
		"intersection": method("intersection", 1, 1, false, ResultSelf),
		"difference":   method("difference", 1, 1, false, ResultSelf),
		"len":          mLen,
		"is_empty":     mIsEmpty,
		"clear":        mClear,
		"copy":         mCopy,
	},
	KindDict: {
		"get":          method("get", 1, 2, false, ResultElem),
		"keys":         method("keys", 0, 0, false, ResultKeyList),
		"values":       method("values", 0, 0, false, ResultElemList),
		"contains":     method("contains_key", 1, 1, false, ResultBool),
		"contains_key": method("contains_key", 1, 1, false, ResultBool),
		"has":          method("contains_key", 1, 1, false, ResultBool),
		"insert":       method("insert", 2, 2, true, ResultUnit),
		"set":          method("insert", 2, 2, true, ResultUnit),
		"remove":       method("remove", 1, 1, true, ResultElem),
		"pop":          method("remove", 1, 1, true, ResultElem),
		"len":          mLen,
		"is_empty":     mIsEmpty,
		"clear":        mClear,
		"copy":         mCopy,
	},
	KindString: {
		"upper":       method("to_uppercase", 0, 0, false, ResultSelf),
		"lower":       method("to_lowercase", 0, 0, false, ResultSelf),
		"strip":       method("trim", 0, 0, false, ResultSelf),
		"trim":        method("trim", 0, 0, false, ResultSelf),
		"split":       method("split", 1, 1, false, ResultStrList),
		"join":        method("join", 1, 1, false, ResultString),
		"replace":     method("replace", 2, 2, false, ResultSelf),
		"find":        method("find", 1, 1, false, ResultInt),
		"contains":    method("contains", 1, 1, false, ResultBool),
		"startswith":  method("starts_with", 1, 1, false, ResultBool),
		"starts_with": method("starts_with", 1, 1, false, ResultBool),
		"endswith":    method("ends_with", 1, 1, false, ResultBool),
		"ends_with":   method("ends_with", 1, 1, false, ResultBool),
		"len":         mLen,
		"is_empty":    mIsEmpty,
		"copy":        mCopy,
	},
}

// LookupMethod finds the runtime method name on a receiver of kind k.
func LookupMethod(k Kind, name string) (ContainerMethod, bool) {
	m, ok := containerMethods[k][name]
	return m, ok
}

// MethodType returns the result type of m called on receiver.
func (in *Interner) MethodType(receiver TypeID, m ContainerMethod) TypeID {
	b := in.Builtins()
	switch m.Result {
	case ResultBool:
		return b.Bool
	case ResultInt:
		return b.Int
	case ResultString:
		return b.String
	case ResultSelf:
		return receiver
	case ResultElem:
		if elem := in.Elem(receiver); elem != NoTypeID {
			return elem
		}
		return b.Any
	case ResultKeyList:
		tt, _ := in.Lookup(receiver)
		if tt.Key == NoTypeID {
			return in.List(b.Any)
		}
		return in.List(tt.Key)
	case ResultElemList:
		if elem := in.Elem(receiver); elem != NoTypeID {
			return in.List(elem)
		}
		return in.List(b.Any)
	case ResultStrList:
		return in.List(b.String)
	default:
		return b.Unit
	}
}
