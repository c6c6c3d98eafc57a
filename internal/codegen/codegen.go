// Package codegen translates a checked GUL file into Rust source text.
//
// The translation is structure preserving: every statement and expression
// maps to one Rust construct. Constructs without a faithful mapping are
// approximated and reported as warnings; generation never fails.
package codegen

import (
	"fmt"
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/sema"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

// RuntimeCrate is the support library generated code refers to.
const RuntimeCrate = "gul_runtime"

// Options configure code generation.
type Options struct {
	Reporter diag.Reporter
	// CrateName names the generated crate in the header comment.
	CrateName string
	// SourcePath is echoed in the header comment.
	SourcePath  string
	IndentWidth int
}

// ForeignBlock is an embedded block of another language, handed to
// external per-language build integration.
type ForeignBlock struct {
	Tag  string
	Body string
	Span source.Span
}

// Output is the result of Generate.
type Output struct {
	Source  string
	Foreign []ForeignBlock
}

type generator struct {
	builder  *ast.Builder
	res      *sema.Result
	types    *types.Interner
	reporter diag.Reporter
	w        *Writer
	opts     Options

	foreign []ForeignBlock
	// renamed holds functions emitted under another Rust name.
	renamed map[symbols.SymbolID]string
	// fn is the function whose body is being emitted; nil inside main.
	fn *sema.Signature
	// captured remembers module bindings already reported per function.
	captured map[symbols.SymbolID]bool
	tmp      int
}

// Generate emits Rust source for a file that passed semantic analysis.
func Generate(builder *ast.Builder, fileID ast.FileID, res *sema.Result, opts Options) Output {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	g := &generator{
		builder:  builder,
		res:      res,
		types:    res.TypeInterner,
		reporter: diag.NewDedupReporter(opts.Reporter),
		w:        NewWriter(opts.IndentWidth),
		opts:     opts,
		renamed:  make(map[symbols.SymbolID]string),
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return Output{}
	}
	g.emitFile(file)
	return Output{Source: g.w.String(), Foreign: g.foreign}
}

func (g *generator) emitFile(file *ast.File) {
	g.emitHeader()

	var items, body []ast.StmtID
	userMain := ast.NoStmtID
	for _, id := range file.Stmts {
		if g.isItem(id) {
			items = append(items, id)
			if fn, ok := g.builder.Stmts.Fn(id); ok && g.name(fn.Name) == "main" {
				userMain = id
			}
			continue
		}
		if stmt := g.builder.Stmts.Get(id); stmt != nil && stmt.Kind == ast.StmtPass {
			continue
		}
		body = append(body, id)
	}

	callUserMain := ""
	if userMain.IsValid() && len(body) > 0 {
		sym := g.res.StmtSymbols[userMain]
		g.renamed[sym] = "gul_main"
		callUserMain = "gul_main()"
		if sig := g.res.Signatures[userMain]; sig != nil && sig.Async {
			callUserMain = RuntimeCrate + "::block_on(gul_main())"
		}
	}

	for _, id := range items {
		g.w.BlankLine()
		g.emitStmt(id)
	}

	if userMain.IsValid() && len(body) == 0 {
		return
	}
	g.w.BlankLine()
	g.w.Line("fn main() {")
	g.w.IndentPush()
	g.emitStmts(body)
	if callUserMain != "" {
		g.w.Line(callUserMain + ";")
	}
	g.w.IndentPop()
	g.w.Line("}")
}

func (g *generator) emitHeader() {
	name := g.opts.CrateName
	if name == "" {
		name = "main"
	}
	if g.opts.SourcePath != "" {
		g.w.Line(fmt.Sprintf("// Code generated by gul from %s (crate %s). DO NOT EDIT.", g.opts.SourcePath, name))
	} else {
		g.w.Line(fmt.Sprintf("// Code generated by gul (crate %s). DO NOT EDIT.", name))
	}
	g.w.Line("#![allow(unused_mut, unused_variables, unused_parens, unused_imports, dead_code, non_snake_case)]")
	g.w.Newline()
	g.w.Line("use std::collections::{HashMap, HashSet};")
}

// isItem reports top-level statements emitted outside of main.
func (g *generator) isItem(id ast.StmtID) bool {
	stmt := g.builder.Stmts.Get(id)
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtFn, ast.StmtStruct, ast.StmtEnum, ast.StmtImport:
		return true
	case ast.StmtForeign:
		data, _ := g.builder.Stmts.Foreign(id)
		return g.name(data.Tag) == "rust"
	}
	return false
}

func (g *generator) name(id source.StringID) string {
	return g.builder.Name(id)
}

func (g *generator) warn(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportWarning(g.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func (g *generator) typeOf(id ast.ExprID) types.TypeID {
	return g.res.TypeOf(id)
}

func (g *generator) kindOf(id ast.ExprID) types.Kind {
	return g.types.KindOf(g.typeOf(id))
}

func (g *generator) exprSpan(id ast.ExprID) source.Span {
	if e := g.builder.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (g *generator) symbolOf(id ast.ExprID) *symbols.Symbol {
	return g.res.SymbolOf(g.builder.Exprs.Unparen(id))
}

// freshName returns a Rust identifier that cannot clash with user names.
func (g *generator) freshName(prefix string) string {
	g.tmp++
	return fmt.Sprintf("__%s%d", prefix, g.tmp)
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
