package lexer

import (
	"gul/internal/token"
)

// collectLeadingTrivia gathers blanks and comments before a token. Inside
// brackets newlines are trivia too.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' || b == '\f' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' && lx.depth > 0 {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue
		}

		if lx.atComment() {
			lx.scanCommentIntoHold()
			continue
		}
		return
	}
}

// atComment reports whether a '#' or '//' comment starts here.
func (lx *Lexer) atComment() bool {
	switch lx.cursor.Peek() {
	case '#':
		return true
	case '/':
		return lx.cursor.PeekAt(1) == '/'
	}
	return false
}

// scanCommentIntoHold consumes a comment up to, not including, the newline.
func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
}
