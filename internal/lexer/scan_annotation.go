package lexer

import (
	"gul/internal/diag"
	"gul/internal/token"
)

// scanAnnotation lexes '@' plus an identifier as one token. Foreign markers
// switch the lexer into body capture for the next token.
func (lx *Lexer) scanAnnotation() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'
	if !isIdentStartByte(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'@' must be followed by an annotation name")
		return token.Token{}, false
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind, ok := token.LookupAnnotation(text[1:])
	if !ok {
		lx.errLex(diag.LexUnknownAnnotation, sp, "unknown annotation '"+text+"'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}, true
	}
	if kind.IsForeign() {
		lx.foreign = foreignOpen
	}
	return token.Token{Kind: kind, Span: sp, Text: text}, true
}
