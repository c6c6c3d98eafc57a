package lexer

import (
	"gul/internal/diag"
	"gul/internal/token"
)

// scanNumber accepts 123, 1_000, 0b1010, 0o17, 0xFF, 1.5, .5, 1e-3, 2.5E+10.
// A fraction needs a digit after the dot, so "1..5" and "1.abs()" keep
// their dots. Malformed numbers are reported and still returned as
// literals so the parser does not add a second error.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		goto exponent
	}

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Off += 2
			if lx.eatDigits(digit) == 0 {
				lx.badNumber(start, "missing digits after base prefix")
			}
			goto suffix
		}
	}

	lx.eatDigits(isDec)
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
	}

exponent:
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			// "1e" / "1e+": the suffix check below reports it
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
		}
	}

suffix:
	// digits glued to letters ("12abc", "0xFFz") are one bad literal
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.badNumber(start, "invalid character in number literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// eatDigits consumes digits and '_' separators and counts real digits.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_':
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) {
	lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), msg)
}
