package token

import (
	"gul/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value is the decoded payload of string literals and foreign bodies.
	Value   string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token only encodes line structure.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwLet && t.Kind <= KwFalse
}

// IsAnnotation reports whether the token is an @-annotation.
func (t Token) IsAnnotation() bool {
	return t.Kind.IsTypeCtor() || t.Kind == AtImp || t.Kind.IsForeign()
}

// IsOwnership reports whether the token names a parameter ownership mode.
func (t Token) IsOwnership() bool {
	switch t.Kind {
	case KwBorrow, KwRef, KwMove, KwKept, KwOwn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
