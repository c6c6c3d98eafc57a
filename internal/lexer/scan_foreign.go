package lexer

import (
	"strings"

	"gul/internal/diag"
	"gul/internal/token"
)

// scanForeignBraced captures "{ ... }" verbatim. Braces nest; quoted
// strings are skipped so that "}" inside them does not close the block.
// Text is the whole region, Value the text between the braces.
func (lx *Lexer) scanForeignBraced() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				text := lx.text(sp)
				return token.Token{Kind: token.ForeignBody, Span: sp, Text: text, Value: text[1 : len(text)-1]}
			}
		case '"', '\'', '`':
			lx.skipQuoted(b)
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedForeign, sp, "unterminated foreign block: missing '}'")
	text := lx.text(sp)
	return token.Token{Kind: token.ForeignBody, Span: sp, Text: text, Value: text[1:]}
}

func (lx *Lexer) skipQuoted(q byte) {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == q || (b == '\n' && q != '`') {
			return
		}
	}
}

// scanForeignIndented runs right after "@tag:". Either the rest of the line
// is the body, or the body is every following line indented deeper than the
// current block (blank lines included). The cursor is left on the newline
// that ends the body so that regular layout resumes from there.
func (lx *Lexer) scanForeignIndented() token.Token {
	for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	if lx.atComment() {
		lx.scanCommentIntoHold()
	}
	start := lx.cursor.Mark()

	if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		return token.Token{Kind: token.ForeignBody, Span: sp, Text: text, Value: strings.TrimSpace(text)}
	}

	top := lx.topWidth()
	end := lx.cursor.Off
	for lx.cursor.Eat('\n') {
		lineStart := lx.cursor.Off
		width := lx.measureIndent()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lineEnd := lx.cursor.Off
		blank := strings.TrimSpace(string(lx.file.Content[lineStart:lineEnd])) == ""
		if !blank && width <= top {
			break
		}
		if !blank {
			end = lineEnd
		}
	}
	lx.cursor.Off = end
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	return token.Token{Kind: token.ForeignBody, Span: sp, Text: text, Value: dedentBody(text)}
}

// dedentBody drops the leading newline and the indentation shared by all
// non-blank lines.
func dedentBody(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	common := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		n := len(ln) - len(strings.TrimLeft(ln, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = ln[common:]
	}
	return strings.Join(lines, "\n")
}
