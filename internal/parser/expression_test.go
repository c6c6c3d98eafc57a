package parser

import (
	"testing"

	"gul/internal/ast"
	"gul/internal/diag"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a ^ b ^ c", "(a ** (b ** c))"},
		{"a ** b ** c", "(a ** (b ** c))"},
		{"a * b ** c", "(a * (b ** c))"},
		{"-a ** b", "((-a) ** b)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a or b and c", "(a || (b && c))"},
		{"a || b && !c", "(a || (b && (!c)))"},
		{"not a == b", "((!a) == b)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"x in xs and y", "((x in xs) && y)"},
		{"0..n + 1", "(0 .. (n + 1))"},
		{"1..=10", "(1 ..= 10)"},
		{"a % b / c", "((a % b) / c)"},
		{"await f(x) + 1", "((await f(x)) + 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, b := letValue(t, tt.input)
			if got := render(b, id); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrecedenceTreeShape(t *testing.T) {
	id, b := letValue(t, "a + b * c")
	add, ok := b.Exprs.Binary(id)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("root is not '+'")
	}
	mul, ok := b.Exprs.Binary(add.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("right child of '+' is %v, want '*'", b.Exprs.Get(add.Right).Kind)
	}

	id, b = letValue(t, "a ^ b ^ c")
	outer, _ := b.Exprs.Binary(id)
	if _, ok := b.Exprs.Ident(outer.Left); !ok {
		t.Fatalf("left of outer '^' should be the identifier a")
	}
	if inner, ok := b.Exprs.Binary(outer.Right); !ok || inner.Op != ast.ExprBinaryPow {
		t.Fatalf("right of outer '^' should be b ^ c")
	}
}

func TestPostfixChains(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a.b(c)[0].d", "a.b(c)[0].d"},
		{"f(1, g(2))(3)", "f(1, g(2))(3)"},
		{"t.0 + t.1", "(t.0 + t.1)"},
		{"xs[i + 1]", "xs[(i + 1)]"},
		{"p.x.y", "p.x.y"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, b := letValue(t, tt.input)
			if got := render(b, id); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCollectionLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.ExprKind
		n     int
	}{
		{"[1, 2, 3]", ast.ExprList, 3},
		{"[]", ast.ExprList, 0},
		{"[1, 2,]", ast.ExprList, 2},
		{"{1, 2}", ast.ExprSet, 2},
		{"{1}", ast.ExprSet, 1},
		{"{\"a\": 1, \"b\": 2}", ast.ExprDict, 2},
		{"{}", ast.ExprDict, 0},
		{"(1, \"x\")", ast.ExprTuple, 2},
		{"(1,)", ast.ExprTuple, 1},
		{"()", ast.ExprTuple, 0},
		{"(1)", ast.ExprGroup, 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, b := letValue(t, tt.input)
			e := b.Exprs.Get(id)
			if e.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", e.Kind, tt.kind)
			}
			var n int
			switch e.Kind {
			case ast.ExprDict:
				d, _ := b.Exprs.Dict(id)
				n = len(d.Entries)
			case ast.ExprGroup:
				n = 1
			default:
				s, _ := b.Exprs.Seq(id)
				n = len(s.Elems)
			}
			if n != tt.n {
				t.Fatalf("elements = %d, want %d", n, tt.n)
			}
		})
	}
}

func TestMultilineCollection(t *testing.T) {
	p := parseClean(t, "let xs = [\n    1,\n    2,\n]\nprint(xs)\n")
	if got := p.stmtKinds(); len(got) != 2 || got[0] != ast.StmtLet || got[1] != ast.StmtExpr {
		t.Fatalf("kinds = %v", got)
	}
}

func TestTypeConstructors(t *testing.T) {
	tests := []struct {
		input string
		ctor  ast.TypeCtorKind
		args  int
		dict  int
	}{
		{"@int(\"3\")", ast.TypeCtorInt, 1, 0},
		{"@float(x)", ast.TypeCtorFloat, 1, 0},
		{"@str(1)", ast.TypeCtorStr, 1, 0},
		{"@bool(0)", ast.TypeCtorBool, 1, 0},
		{"@list[1, 2]", ast.TypeCtorList, 2, 0},
		{"@list(xs)", ast.TypeCtorList, 1, 0},
		{"@tuple(1, 2, 3)", ast.TypeCtorTuple, 3, 0},
		{"@set{1, 2}", ast.TypeCtorSet, 2, 0},
		{"@dict{\"k\": 1}", ast.TypeCtorDict, 0, 1},
		{"@dict{}", ast.TypeCtorDict, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, b := letValue(t, tt.input)
			d, ok := b.Exprs.TypeCtor(id)
			if !ok {
				t.Fatalf("not a type constructor: %v", b.Exprs.Get(id).Kind)
			}
			if d.Ctor != tt.ctor || len(d.Args) != tt.args || len(d.Entries) != tt.dict {
				t.Fatalf("got %v args=%d entries=%d", d.Ctor, len(d.Args), len(d.Entries))
			}
		})
	}
}

func TestTypeConstructorNeedsArguments(t *testing.T) {
	p := parseSource(t, "let a = @int\nlet b = 1\n")
	if c := p.codes(); len(c) != 1 || c[0] != diag.SynUnexpectedToken {
		t.Fatalf("codes = %v (%s)", c, diagnosticsSummary(p.bag))
	}
	if got := p.stmtKinds(); len(got) != 2 || got[0] != ast.StmtBad || got[1] != ast.StmtLet {
		t.Fatalf("kinds = %v", got)
	}
}

func TestLambda(t *testing.T) {
	id, b := letValue(t, "fn(x, y) => x + y")
	l, ok := b.Exprs.Lambda(id)
	if !ok {
		t.Fatalf("not a lambda")
	}
	if len(l.Params) != 2 {
		t.Fatalf("params = %d", len(l.Params))
	}
	if got := render(b, l.Body); got != "(x + y)" {
		t.Fatalf("body = %s", got)
	}
}

func TestLiteralValues(t *testing.T) {
	id, b := letValue(t, `"a\tb"`)
	lit, ok := b.Exprs.Literal(id)
	if !ok || lit.Kind != ast.ExprLitString {
		t.Fatalf("not a string literal")
	}
	if b.Name(lit.Value) != "a\tb" || b.Name(lit.Raw) != `"a\tb"` {
		t.Fatalf("value %q raw %q", b.Name(lit.Value), b.Name(lit.Raw))
	}
	for input, kind := range map[string]ast.ExprLitKind{
		"42": ast.ExprLitInt, "0x1F": ast.ExprLitInt, "2.5": ast.ExprLitFloat,
		"true": ast.ExprLitTrue, "false": ast.ExprLitFalse,
	} {
		id, b := letValue(t, input)
		if lit, ok := b.Exprs.Literal(id); !ok || lit.Kind != kind {
			t.Errorf("%s: wrong literal kind", input)
		}
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"let x = 1 +\n", diag.SynExpectExpression},
		{"let x = (1, 2\n", diag.SynUnclosedParen},
		{"let x = [1, 2\n", diag.SynUnclosedBracket},
		{"let x = {1: 2\n", diag.SynUnclosedBrace},
		{"let x = a.\n", diag.SynExpectIdentifier},
		{"let x = )\n", diag.SynExpectExpression},
		{"let x = fn(a) a\n", diag.SynExpectFatArrow},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseSource(t, tt.input)
			c := p.codes()
			if len(c) == 0 || c[0] != tt.code {
				t.Fatalf("codes = %v, want first %v (%s)", c, tt.code, diagnosticsSummary(p.bag))
			}
			if len(p.file.Stmts) == 0 {
				t.Fatalf("recovered file has no statements")
			}
		})
	}
}
