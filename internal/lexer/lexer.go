package lexer

import (
	"gul/internal/source"
	"gul/internal/token"
)

// level is one entry of the indentation stack.
type level struct {
	width uint32
	// phantom levels are pushed while recovering from a misaligned dedent
	// and are popped without emitting a Dedent.
	phantom bool
}

type foreignState uint8

const (
	foreignNone foreignState = iota
	// foreignOpen: a foreign marker was emitted, ':' or '{' must follow.
	foreignOpen
	// foreignIndented: "@tag:" was emitted, the body follows.
	foreignIndented
)

// Lexer turns one source file into tokens, including the synthetic
// Newline/Indent/Dedent layout tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead
	hold   []token.Trivia // leading trivia for the next significant token

	levels        []level
	pending       []token.Token
	lineStart     bool
	lineHasTokens bool
	depth         int // open ( [ { count; layout is off while > 0
	last          token.Kind
	foreign       foreignState
	done          bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		levels:    []level{{width: 0}},
		lineStart: true,
	}
}

// Tokenize lexes the whole file, EOF included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for len(lx.pending) == 0 {
		lx.fill()
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// fill queues at least zero tokens; Next loops until something is queued.
func (lx *Lexer) fill() {
	if lx.done {
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.EmptySpan()})
		return
	}
	if lx.foreign == foreignIndented {
		lx.foreign = foreignNone
		lx.emit(lx.scanForeignIndented())
		return
	}
	if lx.lineStart && lx.depth == 0 {
		lx.startLine()
		if len(lx.pending) > 0 {
			return
		}
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		lx.finishFile()
		return
	}

	if lx.foreign == foreignOpen {
		lx.foreign = foreignNone
		switch lx.cursor.Peek() {
		case '{':
			lx.emit(lx.scanForeignBraced())
			return
		case ':':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.emit(token.Token{Kind: token.Colon, Span: lx.cursor.SpanFrom(start), Text: ":"})
			lx.foreign = foreignIndented
			return
		}
	}

	if lx.cursor.Peek() == '\n' {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.lineStart = true
		if lx.lineHasTokens {
			lx.lineHasTokens = false
			lx.emit(token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"})
			return
		}
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(start), Text: "\n"})
		return
	}

	if tok, ok := lx.scanToken(); ok {
		lx.emit(tok)
	}
}

func (lx *Lexer) scanToken() (token.Token, bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber(), true
	case ch == '"' || ch == '\'':
		return lx.scanString(), true
	case ch == '@':
		return lx.scanAnnotation()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// emit queues a token, attaching held trivia to anything but Indent/Dedent.
func (lx *Lexer) emit(tok token.Token) {
	if tok.Kind != token.Indent && tok.Kind != token.Dedent {
		tok.Leading = lx.hold
		lx.hold = nil
	}
	switch tok.Kind {
	case token.Newline, token.Indent, token.Dedent, token.EOF:
	default:
		lx.lineHasTokens = true
	}
	switch tok.Kind {
	case token.LParen, token.LBracket, token.LBrace:
		lx.depth++
	case token.RParen, token.RBracket, token.RBrace:
		if lx.depth > 0 {
			lx.depth--
		}
	}
	lx.last = tok.Kind
	lx.pending = append(lx.pending, tok)
}

// finishFile closes the last line and every open block.
func (lx *Lexer) finishFile() {
	if lx.lineHasTokens {
		lx.lineHasTokens = false
		nl := token.Token{Kind: token.Newline, Span: lx.EmptySpan()}
		nl.Leading, lx.hold = lx.hold, nil
		lx.pending = append(lx.pending, nl)
	}
	for len(lx.levels) > 1 {
		top := lx.levels[len(lx.levels)-1]
		lx.levels = lx.levels[:len(lx.levels)-1]
		if !top.phantom {
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.EmptySpan()})
		}
	}
	lx.done = true
	eof := token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	eof.Leading, lx.hold = lx.hold, nil
	lx.pending = append(lx.pending, eof)
}

// EmptySpan is a zero-width span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
