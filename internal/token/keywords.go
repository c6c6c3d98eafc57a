package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"var":      KwVar,
	"fn":       KwFn,
	"async":    KwAsync,
	"await":    KwAwait,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"match":    KwMatch,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"loop":     KwLoop,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"try":      KwTry,
	"catch":    KwCatch,
	"finally":  KwFinally,
	"mn":       KwMn,
	"pass":     KwPass,
	"borrow":   KwBorrow,
	"ref":      KwRef,
	"move":     KwMove,
	"kept":     KwKept,
	"own":      KwOwn,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword reports whether ident is a keyword. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var annotations = map[string]Kind{
	"int":    AtInt,
	"float":  AtFloat,
	"str":    AtStr,
	"bool":   AtBool,
	"list":   AtList,
	"tuple":  AtTuple,
	"set":    AtSet,
	"dict":   AtDict,
	"imp":    AtImp,
	"python": AtPython,
	"rust":   AtRust,
	"sql":    AtSQL,
	"js":     AtJS,
	"ui":     AtUI,
	"c":      AtC,
	"go":     AtGo,
}

// LookupAnnotation maps the identifier after '@' to its annotation kind.
func LookupAnnotation(name string) (Kind, bool) {
	k, ok := annotations[name]
	return k, ok
}

// ForeignTag returns the language tag carried by a foreign-block kind.
func ForeignTag(k Kind) string {
	for name, kind := range annotations {
		if kind == k && k.IsForeign() {
			return name
		}
	}
	return ""
}
