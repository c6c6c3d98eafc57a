package lexer

import (
	"strconv"
	"strings"

	"gul/internal/diag"
	"gul/internal/token"
)

// scanString scans '...', "..." and triple-quoted """...""" literals.
// The decoded value is accumulated in a strings.Builder; Text keeps the raw
// lexeme. Single-quoted forms stop at a newline.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Peek()
	triple := false
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == quote && b1 == quote && b2 == quote {
		triple = true
		lx.cursor.Off += 3
	} else {
		lx.cursor.Bump()
	}

	var value strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			if !triple {
				lx.cursor.Bump()
				return lx.stringToken(start, &value)
			}
			if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == quote && b1 == quote && b2 == quote {
				lx.cursor.Off += 3
				return lx.stringToken(start, &value)
			}
		}
		if b == '\n' && !triple {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Value: value.String()}
		}
		if b == '\\' {
			lx.scanEscape(&value)
			continue
		}
		value.WriteByte(b)
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Value: value.String()}
}

func (lx *Lexer) stringToken(start Mark, value *strings.Builder) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Value: value.String()}
}

// scanEscape decodes one escape after a single backslash.
func (lx *Lexer) scanEscape(value *strings.Builder) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		value.WriteByte('\n')
	case 't':
		value.WriteByte('\t')
	case 'r':
		value.WriteByte('\r')
	case '0':
		value.WriteByte(0)
	case '\\', '"', '\'', '{', '}':
		value.WriteByte(b)
	case '\n':
		// line continuation inside the literal
	case 'u':
		if !lx.cursor.Eat('{') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), `expected '{' after \u`)
			return
		}
		digits := lx.cursor.Mark()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		hex := lx.text(lx.cursor.SpanFrom(digits))
		if !lx.cursor.Eat('}') || hex == "" {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), `malformed \u{...} escape`)
			return
		}
		cp, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || cp > 0x10FFFF {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "escape is not a valid code point")
			return
		}
		value.WriteRune(rune(cp))
	default:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown escape sequence '\\"+string(b)+"'")
		value.WriteByte(b)
	}
}
