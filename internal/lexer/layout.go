package lexer

import (
	"fmt"

	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

// startLine runs at the beginning of every logical line outside brackets.
// Blank and comment-only lines are folded into trivia; the first line with
// code is measured against the indentation stack.
func (lx *Lexer) startLine() {
	for {
		start := lx.cursor.Mark()
		width := lx.measureIndent()
		if sp := lx.cursor.SpanFrom(start); !sp.Empty() {
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
		}
		if lx.cursor.EOF() {
			return
		}
		switch {
		case lx.cursor.Peek() == '\n':
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(nl)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: "\n"})
			continue
		case lx.atComment():
			lx.scanCommentIntoHold()
			continue
		}
		lx.lineStart = false
		lx.applyIndent(width, lx.EmptySpan())
		return
	}
}

// measureIndent consumes leading blanks and returns their width.
func (lx *Lexer) measureIndent() uint32 {
	var width uint32
	for {
		switch lx.cursor.Peek() {
		case ' ':
			width++
		case '\t':
			width += lx.tabWidth()
		default:
			return width
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) topWidth() uint32 {
	return lx.levels[len(lx.levels)-1].width
}

// applyIndent compares width with the stack and queues Indent/Dedent.
// A dedent that lands between two known levels is an error; the width is
// then pushed as a phantom level so later lines at the same width agree.
func (lx *Lexer) applyIndent(width uint32, at source.Span) {
	top := lx.topWidth()
	if width > top {
		lx.levels = append(lx.levels, level{width: width})
		lx.emit(token.Token{Kind: token.Indent, Span: at})
		return
	}
	if width == top {
		return
	}
	for len(lx.levels) > 1 && width < lx.topWidth() {
		popped := lx.levels[len(lx.levels)-1]
		lx.levels = lx.levels[:len(lx.levels)-1]
		if !popped.phantom {
			lx.emit(token.Token{Kind: token.Dedent, Span: at})
		}
	}
	if lx.topWidth() != width {
		lx.errLex(diag.LexInconsistentIndent, at,
			fmt.Sprintf("inconsistent indentation: width %d does not match any enclosing block (nearest is %d)", width, lx.topWidth()))
		lx.levels = append(lx.levels, level{width: width, phantom: true})
	}
}

// IndentDepth reports the number of open indentation levels, phantom ones included.
func (lx *Lexer) IndentDepth() int {
	return len(lx.levels) - 1
}
