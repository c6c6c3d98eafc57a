package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline ends a logical line.
	Newline
	// Indent opens a block whose lines are indented deeper than the previous level.
	Indent
	// Dedent closes one indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal, hex (0x), binary (0b) or octal (0o) integer.
	IntLit
	// FloatLit is a float with a fraction and/or exponent.
	FloatLit
	// StringLit is a single- or double-quoted string.
	StringLit

	// KwLet represents the 'let' keyword.
	KwLet
	// KwVar represents the 'var' keyword.
	KwVar
	// KwFn represents the 'fn' keyword.
	KwFn
	// KwAsync represents the 'async' keyword.
	KwAsync
	// KwAwait represents the 'await' keyword.
	KwAwait
	// KwStruct represents the 'struct' keyword.
	KwStruct
	// KwEnum represents the 'enum' keyword.
	KwEnum
	// KwMatch represents the 'match' keyword.
	KwMatch
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElif represents the 'elif' keyword.
	KwElif
	// KwElse represents the 'else' keyword.
	KwElse
	// KwFor represents the 'for' keyword.
	KwFor
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwLoop represents the 'loop' keyword.
	KwLoop
	// KwIn represents the 'in' keyword.
	KwIn
	// KwBreak represents the 'break' keyword.
	KwBreak
	// KwContinue represents the 'continue' keyword.
	KwContinue
	// KwReturn represents the 'return' keyword.
	KwReturn
	// KwTry represents the 'try' keyword.
	KwTry
	// KwCatch represents the 'catch' keyword.
	KwCatch
	// KwFinally represents the 'finally' keyword.
	KwFinally
	// KwMn introduces the program entry block.
	KwMn
	// KwPass is an empty statement.
	KwPass
	// KwBorrow marks a read-only borrowed parameter.
	KwBorrow
	// KwRef marks a mutable reference parameter.
	KwRef
	// KwMove marks an owning parameter.
	KwMove
	// KwKept marks a parameter that receives a retained copy.
	KwKept
	// KwOwn is a synonym of KwMove.
	KwOwn
	// KwAnd is the spelled-out '&&'.
	KwAnd
	// KwOr is the spelled-out '||'.
	KwOr
	// KwNot is the spelled-out '!'.
	KwNot
	// KwTrue represents the 'true' literal.
	KwTrue
	// KwFalse represents the 'false' literal.
	KwFalse

	// AtInt is the @int type constructor.
	AtInt
	// AtFloat is the @float type constructor.
	AtFloat
	// AtStr is the @str type constructor.
	AtStr
	// AtBool is the @bool type constructor.
	AtBool
	// AtList is the @list collection constructor.
	AtList
	// AtTuple is the @tuple collection constructor.
	AtTuple
	// AtSet is the @set collection constructor.
	AtSet
	// AtDict is the @dict collection constructor.
	AtDict
	// AtImp is the import marker.
	AtImp
	// AtPython opens a Python foreign block.
	AtPython
	// AtRust opens a Rust foreign block.
	AtRust
	// AtSQL opens an SQL foreign block.
	AtSQL
	// AtJS opens a JavaScript foreign block.
	AtJS
	// AtUI opens a UI markup foreign block.
	AtUI
	// AtC opens a C foreign block.
	AtC
	// AtGo opens a Go foreign block.
	AtGo
	// ForeignBody is the verbatim body of a foreign block.
	ForeignBody

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	StarStar   // **
	Caret      // ^
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	AndAnd     // &&
	OrOr       // ||
	Bang       // !
	Assign     // =
	PlusAssign // +=
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	Arrow    // ->
	FatArrow // =>
	DotDot   // ..
	DotDotEq // ..=

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Newline:       "Newline",
	Indent:        "Indent",
	Dedent:        "Dedent",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	KwLet:         "KwLet",
	KwVar:         "KwVar",
	KwFn:          "KwFn",
	KwAsync:       "KwAsync",
	KwAwait:       "KwAwait",
	KwStruct:      "KwStruct",
	KwEnum:        "KwEnum",
	KwMatch:       "KwMatch",
	KwIf:          "KwIf",
	KwElif:        "KwElif",
	KwElse:        "KwElse",
	KwFor:         "KwFor",
	KwWhile:       "KwWhile",
	KwLoop:        "KwLoop",
	KwIn:          "KwIn",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwReturn:      "KwReturn",
	KwTry:         "KwTry",
	KwCatch:       "KwCatch",
	KwFinally:     "KwFinally",
	KwMn:          "KwMn",
	KwPass:        "KwPass",
	KwBorrow:      "KwBorrow",
	KwRef:         "KwRef",
	KwMove:        "KwMove",
	KwKept:        "KwKept",
	KwOwn:         "KwOwn",
	KwAnd:         "KwAnd",
	KwOr:          "KwOr",
	KwNot:         "KwNot",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	AtInt:         "AtInt",
	AtFloat:       "AtFloat",
	AtStr:         "AtStr",
	AtBool:        "AtBool",
	AtList:        "AtList",
	AtTuple:       "AtTuple",
	AtSet:         "AtSet",
	AtDict:        "AtDict",
	AtImp:         "AtImp",
	AtPython:      "AtPython",
	AtRust:        "AtRust",
	AtSQL:         "AtSQL",
	AtJS:          "AtJS",
	AtUI:          "AtUI",
	AtC:           "AtC",
	AtGo:          "AtGo",
	ForeignBody:   "ForeignBody",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	StarStar:      "StarStar",
	Caret:         "Caret",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Bang:          "Bang",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	Arrow:         "Arrow",
	FatArrow:      "FatArrow",
	DotDot:        "DotDot",
	DotDotEq:      "DotDotEq",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Comma:         "Comma",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Dot:           "Dot",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTypeCtor reports whether k is one of the @int..@dict constructors.
func (k Kind) IsTypeCtor() bool {
	return k >= AtInt && k <= AtDict
}

// IsForeign reports whether k opens a foreign-code block.
func (k Kind) IsForeign() bool {
	return k >= AtPython && k <= AtGo
}

// IsAssign reports whether k is '=' or a compound assignment.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= PercentAssign
}
