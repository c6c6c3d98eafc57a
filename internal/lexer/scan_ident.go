package lexer

import (
	"golang.org/x/text/unicode/norm"

	"gul/internal/diag"
	"gul/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies keywords. Text is
// the exact source slice; non-ASCII identifiers carry their NFC form in
// Value so that visually equal names intern to the same string.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, bool) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{}, false
	}
	ascii := true
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unexpected character '"+lx.text(sp)+"'")
			return token.Token{}, false
		}
		ascii = false
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r2, sz2 := lx.peekRune()
			if sz2 > 0 && isIdentContinueRune(r2) {
				ascii = false
				lx.bumpRune()
				continue
			}
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	name := text
	if !ascii {
		name = norm.NFC.String(text)
	}
	if k, ok := token.LookupKeyword(name); ok {
		return token.Token{Kind: k, Span: sp, Text: text}, true
	}
	tok := token.Token{Kind: token.Ident, Span: sp, Text: text}
	if name != text {
		tok.Value = name
	}
	return tok, true
}
