package sema

import (
	"context"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	// Symbols and Types may be shared between files of one build; both must
	// use the builder's string interner. Nil values get fresh instances.
	Symbols *symbols.Table
	Types   *types.Interner
}

// Result stores semantic artefacts produced by the checker. It is always
// returned, even when diagnostics were reported.
type Result struct {
	Table        *symbols.Table
	TypeInterner *types.Interner
	ModuleScope  symbols.ScopeID
	ExprTypes    map[ast.ExprID]types.TypeID
	ExprSymbols  map[ast.ExprID]symbols.SymbolID
	StmtSymbols  map[ast.StmtID]symbols.SymbolID
	// Signatures holds every fn and method by its declaring statement.
	Signatures map[ast.StmtID]*Signature
	// Lambdas holds the signature of each lambda expression.
	Lambdas map[ast.ExprID]*Signature
	// CallTargets maps a call expression to the user function it invokes.
	CallTargets map[ast.ExprID]*Signature
}

// TypeOf returns the recorded type of an expression.
func (r *Result) TypeOf(id ast.ExprID) types.TypeID {
	if r == nil {
		return types.NoTypeID
	}
	return r.ExprTypes[id]
}

// SymbolOf returns the symbol an identifier expression resolved to.
func (r *Result) SymbolOf(id ast.ExprID) *symbols.Symbol {
	if r == nil || r.Table == nil {
		return nil
	}
	return r.Table.Symbols.Get(r.ExprSymbols[id])
}

// Check resolves names, infers and checks types, enforces mutability and
// ownership rules for one file. Check runs to completion once started; ctx
// is only consulted before any work is done.
func Check(ctx context.Context, builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Table:        opts.Symbols,
		TypeInterner: opts.Types,
		ExprTypes:    make(map[ast.ExprID]types.TypeID),
		ExprSymbols:  make(map[ast.ExprID]symbols.SymbolID),
		StmtSymbols:  make(map[ast.StmtID]symbols.SymbolID),
		Signatures:   make(map[ast.StmtID]*Signature),
		Lambdas:      make(map[ast.ExprID]*Signature),
		CallTargets:  make(map[ast.ExprID]*Signature),
	}
	if builder == nil {
		return res
	}
	if res.Table == nil {
		res.Table = symbols.NewTable(symbols.Hints{}, builder.StringsInterner)
	}
	if res.TypeInterner == nil {
		res.TypeInterner = types.NewInterner(builder.StringsInterner)
	}
	file := builder.Files.Get(fileID)
	if file == nil || ctx.Err() != nil {
		return res
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	tc := &typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: diag.NewDedupReporter(reporter),
		types:    res.TypeInterner,
		table:    res.Table,
		result:   &res,
		moved:    make(map[symbols.SymbolID]source.Span),
	}
	tc.resolver = symbols.NewResolver(res.Table, file.Span, symbols.ResolverOptions{
		Prelude: tc.prelude(),
	})
	res.ModuleScope = tc.resolver.ModuleScope()
	tc.run(file)
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	types    *types.Interner
	table    *symbols.Table
	resolver *symbols.Resolver
	result   *Result

	fnStack []*fnContext
	moved   map[symbols.SymbolID]source.Span
	// structByType finds the declaring statement of a struct type.
	structByType map[types.TypeID]ast.StmtID
}

// fnContext tracks the function whose body is being checked.
type fnContext struct {
	sig   *Signature
	scope symbols.ScopeID
}

func (tc *typeChecker) run(file *ast.File) {
	tc.walkBlock(file.Stmts)
}

func (tc *typeChecker) currentFn() *fnContext {
	if len(tc.fnStack) == 0 {
		return nil
	}
	return tc.fnStack[len(tc.fnStack)-1]
}

func (tc *typeChecker) name(id source.StringID) string {
	return tc.builder.Name(id)
}

func (tc *typeChecker) label(id types.TypeID) string {
	return types.Label(tc.types, id)
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if expr := tc.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (tc *typeChecker) symbol(id symbols.SymbolID) *symbols.Symbol {
	return tc.table.Symbols.Get(id)
}
