package parser

import (
	"fmt"
	"strings"
	"testing"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

type parsed struct {
	arenas *ast.Builder
	file   *ast.File
	bag    *diag.Bag
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.gul", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{}, nil)

	res := ParseFile(fs, lx, arenas, Options{MaxErrors: 100, Reporter: reporter})
	return parsed{arenas: arenas, file: arenas.Files.Get(res.File), bag: bag}
}

// parseClean parses input and fails the test on any diagnostic.
func parseClean(t *testing.T, input string) parsed {
	t.Helper()
	p := parseSource(t, input)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	return p
}

func (p parsed) stmtKinds() []ast.StmtKind {
	out := make([]ast.StmtKind, 0, len(p.file.Stmts))
	for _, id := range p.file.Stmts {
		out = append(out, p.arenas.Stmts.Get(id).Kind)
	}
	return out
}

func (p parsed) codes() []diag.Code {
	var out []diag.Code
	for _, d := range p.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// letValue parses "let x = <expr>" and returns the value expression.
func letValue(t *testing.T, expr string) (ast.ExprID, *ast.Builder) {
	t.Helper()
	p := parseClean(t, "let x = "+expr+"\n")
	if len(p.file.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %v", p.stmtKinds())
	}
	let, ok := p.arenas.Stmts.Let(p.file.Stmts[0])
	if !ok {
		t.Fatalf("expected let, got %v", p.stmtKinds())
	}
	return let.Value, p.arenas
}

// render prints an expression fully parenthesized.
func render(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return b.Name(d.Name)
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return b.Name(d.Raw)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + render(b, d.Left) + " " + d.Op.String() + " " + render(b, d.Right) + ")"
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return "(" + d.Op.String() + render(b, d.Operand) + ")"
	case ast.ExprAwait:
		d, _ := b.Exprs.Await(id)
		return "(await " + render(b, d.Value) + ")"
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = render(b, a)
		}
		return render(b, d.Callee) + "(" + strings.Join(args, ", ") + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return render(b, d.Target) + "[" + render(b, d.Index) + "]"
	case ast.ExprMember:
		d, _ := b.Exprs.Member(id)
		return render(b, d.Target) + "." + b.Name(d.Name)
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return render(b, d.Inner)
	}
	return e.Kind.String()
}
