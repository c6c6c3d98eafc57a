package lexer_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode"

	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/source"
	"gul/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func (r *testReporter) messages() string {
	var b strings.Builder
	for _, d := range r.diagnostics {
		fmt.Fprintf(&b, "[%s] %s\n", d.Code.ID(), d.Message)
	}
	return b.String()
}

func lexAll(t *testing.T, src string) ([]token.Token, *testReporter, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.gul", []byte(src))
	rep := &testReporter{}
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: rep})
	return toks, rep, fs
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func assertKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds mismatch:\n got: %v\nwant: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind #%d = %v, want %v\n got: %v", i, got[i], want[i], got)
		}
	}
}

func TestSimpleBinding(t *testing.T) {
	toks, rep, _ := lexAll(t, "let x = 1 + 2.5\n")
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	assertKinds(t, toks,
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Plus, token.FloatLit,
		token.Newline, token.EOF)
}

func TestIndentDedent(t *testing.T) {
	src := "fn f(a):\n    if a:\n        return 1\n    return 2\nlet y = 3\n"
	toks, rep, _ := lexAll(t, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	assertKinds(t, toks,
		token.KwFn, token.Ident, token.LParen, token.Ident, token.RParen, token.Colon, token.Newline,
		token.Indent,
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent,
		token.KwReturn, token.IntLit, token.Newline,
		token.Dedent,
		token.KwReturn, token.IntLit, token.Newline,
		token.Dedent,
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Newline,
		token.EOF)
}

func TestDedentsAtEOFWithoutTrailingNewline(t *testing.T) {
	toks, _, _ := lexAll(t, "loop:\n    while x:\n        break")
	n := len(toks)
	assertKinds(t, toks[n-5:], token.KwBreak, token.Newline, token.Dedent, token.Dedent, token.EOF)
}

func TestBlankAndCommentLinesKeepLevel(t *testing.T) {
	src := "if a:\n    x = 1\n\n  # stray comment\n\n    y = 2\n"
	toks, rep, _ := lexAll(t, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	indents, dedents := 0, 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Fatalf("indents=%d dedents=%d, want 1/1: %v", indents, dedents, kinds(toks))
	}
}

func TestInconsistentDedentIsReported(t *testing.T) {
	src := "if a:\n        x = 1\n    y = 2\nz = 3\n"
	toks, rep, _ := lexAll(t, src)
	got := rep.codes()
	if len(got) != 1 || got[0] != diag.LexInconsistentIndent {
		t.Fatalf("codes = %v, want one LexInconsistentIndent", got)
	}
	// the misaligned line stays in the outer block and no extra Dedent is invented
	indents, dedents := 0, 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced layout: %d indents, %d dedents", indents, dedents)
	}
}

// Every dedent lands on a known width or is reported; never both silently.
func TestIndentationConsistencyProperty(t *testing.T) {
	cases := []struct {
		src     string
		wantErr bool
	}{
		{"a:\n  b\n  c\nd\n", false},
		{"a:\n    b:\n        c\n    d\ne\n", false},
		{"a:\n    b:\n        c\n  d\n", true},
		{"a:\n\tb\n    c\n", false}, // a tab is four columns
		{"a:\n   b\n  c\n", true},
	}
	for _, tc := range cases {
		_, rep, _ := lexAll(t, tc.src)
		hasErr := false
		for _, c := range rep.codes() {
			if c == diag.LexInconsistentIndent {
				hasErr = true
			}
		}
		if hasErr != tc.wantErr {
			t.Errorf("%q: inconsistent-indent reported=%v, want %v", tc.src, hasErr, tc.wantErr)
		}
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestRoundTripLexemes(t *testing.T) {
	src := `# module header
@imp std{io, http}
let name = "gul\t\"quoted\""   // trailing comment
var n: int = 0x_FF + 0b1010 - 0o17 * 1.5e-3
fn area(w: borrow float, h: kept float) -> float:
    return w ** 2 ^ h

struct P:
    x: int
    fn get(self) -> int:
        return self.x
mn:
    for i in 0..=10:
        n += i
    let xs = @list[1, 2,
        3]
    let m = {"k": (1, 2)}
    @python:
        import os
        print(os.getcwd())
    @sql { SELECT * FROM t WHERE a = '}' }
    print(name, m, xs)
`
	toks, rep, _ := lexAll(t, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	var b strings.Builder
	for _, tk := range toks {
		for _, tr := range tk.Leading {
			b.WriteString(tr.Text)
		}
		if tk.Kind == token.Indent || tk.Kind == token.Dedent {
			continue
		}
		b.WriteString(tk.Text)
	}
	if got, want := stripSpace(b.String()), stripSpace(src); got != want {
		t.Fatalf("round trip mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestGreedyOperators(t *testing.T) {
	toks, rep, _ := lexAll(t, "a..=b..c**d->e=>f+=g==h!=i<=j>=k&&l||m^n")
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	assertKinds(t, toks,
		token.Ident, token.DotDotEq, token.Ident, token.DotDot, token.Ident, token.StarStar,
		token.Ident, token.Arrow, token.Ident, token.FatArrow, token.Ident, token.PlusAssign,
		token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident, token.LtEq,
		token.Ident, token.GtEq, token.Ident, token.AndAnd, token.Ident, token.OrOr,
		token.Ident, token.Caret, token.Ident, token.Newline, token.EOF)
}

func TestUnknownCharacterReportedAndSkipped(t *testing.T) {
	toks, rep, fs := lexAll(t, "let x = 1 $ 2\nlet y = ?\n")
	got := rep.codes()
	if len(got) != 2 || got[0] != diag.LexUnknownChar || got[1] != diag.LexUnknownChar {
		t.Fatalf("codes = %v, want two LexUnknownChar", got)
	}
	pos := fs.Position(rep.diagnostics[0].Primary)
	if pos.Line != 1 || pos.Col != 11 {
		t.Errorf("'$' reported at %d:%d, want 1:11", pos.Line, pos.Col)
	}
	for _, tk := range toks {
		if tk.Kind == token.Invalid {
			t.Fatalf("invalid token leaked into stream: %q", tk.Text)
		}
	}
	// lexing continued to the second line
	lets := 0
	for _, tk := range toks {
		if tk.Kind == token.KwLet {
			lets++
		}
	}
	if lets != 2 {
		t.Fatalf("lets = %d, want 2", lets)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src   string
		value string
		codes []diag.Code
	}{
		{`"a\nb"`, "a\nb", nil},
		{`'it\'s'`, "it's", nil},
		{`"\u{1F600}!"`, "\U0001F600!", nil},
		{`"""multi
line"""`, "multi\nline", nil},
		{`"bad \q"`, "bad q", []diag.Code{diag.LexBadEscape}},
		{`"open`, "open", []diag.Code{diag.LexUnterminatedString}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, rep, _ := lexAll(t, tt.src)
			if toks[0].Kind != token.StringLit {
				t.Fatalf("kind = %v", toks[0].Kind)
			}
			if toks[0].Value != tt.value {
				t.Errorf("value = %q, want %q", toks[0].Value, tt.value)
			}
			if toks[0].Text != tt.src {
				t.Errorf("text = %q, want raw lexeme %q", toks[0].Text, tt.src)
			}
			got := rep.codes()
			if len(got) != len(tt.codes) {
				t.Fatalf("codes = %v, want %v", got, tt.codes)
			}
			for i := range got {
				if got[i] != tt.codes[i] {
					t.Fatalf("codes = %v, want %v", got, tt.codes)
				}
			}
		})
	}
}

func TestUnterminatedStringDoesNotHideLaterErrors(t *testing.T) {
	_, rep, _ := lexAll(t, "let s = \"open\nlet t = 1 $\n")
	got := rep.codes()
	if len(got) != 2 || got[0] != diag.LexUnterminatedString || got[1] != diag.LexUnknownChar {
		t.Fatalf("codes = %v", got)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
		bad  bool
	}{
		{"42", token.IntLit, false},
		{"1_000_000", token.IntLit, false},
		{"0xDEAD_beef", token.IntLit, false},
		{"0b1010", token.IntLit, false},
		{"0o755", token.IntLit, false},
		{"3.14", token.FloatLit, false},
		{".5", token.FloatLit, false},
		{"1e10", token.FloatLit, false},
		{"2.5E-3", token.FloatLit, false},
		{"0x", token.IntLit, true},
		{"12abc", token.IntLit, true},
		{"1e", token.IntLit, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, rep, _ := lexAll(t, tt.src)
			if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
				t.Fatalf("got %v %q, want %v %q", toks[0].Kind, toks[0].Text, tt.kind, tt.src)
			}
			if bad := len(rep.diagnostics) > 0; bad != tt.bad {
				t.Fatalf("bad=%v, want %v (%s)", bad, tt.bad, rep.messages())
			}
			if tt.bad && rep.diagnostics[0].Code != diag.LexBadNumber {
				t.Fatalf("code = %v", rep.diagnostics[0].Code)
			}
		})
	}
}

func TestRangeAndMemberDotsStaySeparate(t *testing.T) {
	toks, _, _ := lexAll(t, "0..10 t.0 x.len()")
	assertKinds(t, toks,
		token.IntLit, token.DotDot, token.IntLit,
		token.Ident, token.Dot, token.IntLit,
		token.Ident, token.Dot, token.Ident, token.LParen, token.RParen,
		token.Newline, token.EOF)
}

func TestAnnotations(t *testing.T) {
	toks, rep, _ := lexAll(t, "@int(x) @dict{} @imp std.io @nope")
	assertKinds(t, toks,
		token.AtInt, token.LParen, token.Ident, token.RParen,
		token.AtDict, token.LBrace, token.RBrace,
		token.AtImp, token.Ident, token.Dot, token.Ident,
		token.Invalid, token.Newline, token.EOF)
	if c := rep.codes(); len(c) != 1 || c[0] != diag.LexUnknownAnnotation {
		t.Fatalf("codes = %v", c)
	}
}

func TestForeignBlocks(t *testing.T) {
	t.Run("indented", func(t *testing.T) {
		src := "fn f():\n    @python:\n        import os\n\n        if x:\n            pass\n    return 1\n"
		toks, rep, _ := lexAll(t, src)
		if len(rep.diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
		}
		var body token.Token
		for _, tk := range toks {
			if tk.Kind == token.ForeignBody {
				body = tk
			}
		}
		if want := "import os\n\nif x:\n    pass"; body.Value != want {
			t.Fatalf("body = %q, want %q", body.Value, want)
		}
		// no layout tokens were produced for the body's own indentation
		assertKinds(t, toks,
			token.KwFn, token.Ident, token.LParen, token.RParen, token.Colon, token.Newline,
			token.Indent,
			token.AtPython, token.Colon, token.ForeignBody, token.Newline,
			token.KwReturn, token.IntLit, token.Newline,
			token.Dedent, token.EOF)
	})
	t.Run("braced", func(t *testing.T) {
		toks, rep, _ := lexAll(t, "@js { if (a) { b(\"}\") } }\nx = 1\n")
		if len(rep.diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
		}
		if toks[1].Kind != token.ForeignBody || toks[1].Value != ` if (a) { b("}") } ` {
			t.Fatalf("body = %v %q", toks[1].Kind, toks[1].Value)
		}
		if toks[2].Kind != token.Newline || toks[3].Kind != token.Ident {
			t.Fatalf("stream after body: %v", kinds(toks[2:]))
		}
	})
	t.Run("inline", func(t *testing.T) {
		toks, _, _ := lexAll(t, "@sql: SELECT 1\n")
		if toks[2].Kind != token.ForeignBody || toks[2].Value != "SELECT 1" {
			t.Fatalf("got %v %q", toks[2].Kind, toks[2].Value)
		}
	})
	t.Run("unterminated", func(t *testing.T) {
		_, rep, _ := lexAll(t, "@rust { fn x() {}\n")
		if c := rep.codes(); len(c) != 1 || c[0] != diag.LexUnterminatedForeign {
			t.Fatalf("codes = %v", c)
		}
	})
}

func TestBracketsSuppressLayout(t *testing.T) {
	toks, _, _ := lexAll(t, "f(1,\n        2,\n  3)\ng()\n")
	assertKinds(t, toks,
		token.Ident, token.LParen, token.IntLit, token.Comma, token.IntLit, token.Comma, token.IntLit, token.RParen,
		token.Newline,
		token.Ident, token.LParen, token.RParen, token.Newline, token.EOF)
}

func TestTokenPositionIsFirstCharacter(t *testing.T) {
	toks, _, fs := lexAll(t, "let total = 10\n    \nvar  name = \"x\"\n")
	want := map[string]source.LineCol{
		"total":   {Line: 1, Col: 5},
		"10":      {Line: 1, Col: 13},
		"var":     {Line: 3, Col: 1},
		"name":    {Line: 3, Col: 6},
		"\"x\"": {Line: 3, Col: 13},
	}
	for _, tk := range toks {
		if w, ok := want[tk.Text]; ok {
			if got := fs.Position(tk.Span); got != w {
				t.Errorf("%q at %+v, want %+v", tk.Text, got, w)
			}
		}
	}
}

func TestUnicodeIdentifiersAreNormalized(t *testing.T) {
	// "é" precomposed vs "e" + combining acute accent
	toks, rep, _ := lexAll(t, "caf\u00e9 = caf\u0065\u0301\n")
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", rep.messages())
	}
	left, right := toks[0], toks[2]
	if left.Kind != token.Ident || right.Kind != token.Ident {
		t.Fatalf("kinds %v %v", left.Kind, right.Kind)
	}
	nameOf := func(tk token.Token) string {
		if tk.Value != "" {
			return tk.Value
		}
		return tk.Text
	}
	if nameOf(left) != nameOf(right) {
		t.Fatalf("names differ: %q vs %q", nameOf(left), nameOf(right))
	}
	if right.Text == right.Value {
		t.Fatal("raw text should keep the decomposed form")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.gul", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	for range 3 {
		lx.Next()
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("after end = %v", n.Kind)
	}
}
