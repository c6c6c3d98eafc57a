package sema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/parser"
	"gul/internal/source"
	"gul/internal/types"
)

type checked struct {
	builder *ast.Builder
	file    *ast.File
	res     Result
	bag     *diag.Bag
}

// checkSource parses input, failing the test on syntax errors, and runs
// the checker over it.
func checkSource(t *testing.T, input string) checked {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.gul", []byte(input))
	file := fs.Get(fileID)

	parseBag := diag.NewBag(100)
	parseReporter := diag.BagReporter{Bag: parseBag}
	lx := lexer.New(file, lexer.Options{Reporter: parseReporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 100, Reporter: parseReporter})
	if parseBag.Len() != 0 {
		t.Fatalf("unexpected syntax diagnostics: %s", summary(parseBag))
	}

	bag := diag.NewBag(100)
	res := Check(context.Background(), builder, parsed.File, Options{Reporter: diag.BagReporter{Bag: bag}})
	return checked{builder: builder, file: builder.Files.Get(parsed.File), res: res, bag: bag}
}

// checkClean runs checkSource and fails on any semantic diagnostic.
func checkClean(t *testing.T, input string) checked {
	t.Helper()
	c := checkSource(t, input)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	return c
}

func summary(bag *diag.Bag) string {
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (c checked) codes() []diag.Code {
	out := make([]diag.Code, 0, c.bag.Len())
	for _, d := range c.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// expectOnly asserts that exactly one diagnostic with code was reported.
func (c checked) expectOnly(t *testing.T, code diag.Code) *diag.Diagnostic {
	t.Helper()
	items := c.bag.Items()
	if len(items) != 1 || items[0].Code != code {
		t.Fatalf("want exactly one %s, got %s", code.ID(), summary(c.bag))
	}
	return items[0]
}

// letType returns the label of the binding declared by the i-th top-level
// statement.
func (c checked) letType(t *testing.T, i int) string {
	t.Helper()
	sym := c.res.Table.Symbols.Get(c.res.StmtSymbols[c.file.Stmts[i]])
	if sym == nil {
		t.Fatalf("statement %d declares no symbol", i)
	}
	return types.Label(c.res.TypeInterner, sym.Type)
}
