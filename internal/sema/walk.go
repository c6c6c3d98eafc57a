package sema

import (
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

// walkBlock checks a statement list in the current scope. Items of the
// list are declared up front.
func (tc *typeChecker) walkBlock(stmts []ast.StmtID) {
	tc.declareItems(stmts)
	for _, id := range stmts {
		tc.walkStmt(id)
	}
}

// walkScoped opens a scope of the given kind around a statement list.
func (tc *typeChecker) walkScoped(kind symbols.ScopeKind, owner ast.StmtID, stmts []ast.StmtID, bind func()) {
	scope := tc.resolver.Enter(kind, owner, tc.blockSpan(owner, stmts))
	if bind != nil {
		bind()
	}
	tc.walkBlock(stmts)
	tc.resolver.Leave(scope)
}

func (tc *typeChecker) blockSpan(owner ast.StmtID, stmts []ast.StmtID) source.Span {
	if len(stmts) > 0 {
		first := tc.builder.Stmts.Get(stmts[0])
		last := tc.builder.Stmts.Get(stmts[len(stmts)-1])
		if first != nil && last != nil {
			return first.Span.Cover(last.Span)
		}
	}
	if stmt := tc.builder.Stmts.Get(owner); stmt != nil {
		return stmt.Span
	}
	return source.Span{}
}

func (tc *typeChecker) walkStmt(id ast.StmtID) {
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBad, ast.StmtPass, ast.StmtForeign, ast.StmtEnum:
	case ast.StmtLet:
		data, _ := tc.builder.Stmts.Let(id)
		tc.walkLet(id, data)
	case ast.StmtFn:
		data, _ := tc.builder.Stmts.Fn(id)
		if sig := tc.result.Signatures[id]; sig != nil {
			tc.checkFnBody(sig, id, data.Body)
		}
	case ast.StmtStruct:
		data, _ := tc.builder.Stmts.Struct(id)
		for _, mid := range data.Methods {
			fn, ok := tc.builder.Stmts.Fn(mid)
			if sig := tc.result.Signatures[mid]; ok && sig != nil {
				tc.checkFnBody(sig, mid, fn.Body)
			}
		}
	case ast.StmtIf:
		data, _ := tc.builder.Stmts.If(id)
		tc.walkIf(id, data)
	case ast.StmtWhile:
		data, _ := tc.builder.Stmts.While(id)
		tc.loopBody(true, func() {
			tc.checkCondition(data.Cond, "while")
			tc.walkScoped(symbols.ScopeLoop, id, data.Body, nil)
		})
	case ast.StmtFor:
		data, _ := tc.builder.Stmts.For(id)
		elem := tc.iterElem(data.Iter)
		tc.loopBody(true, func() {
			tc.walkScoped(symbols.ScopeLoop, id, data.Body, func() {
				sym := tc.resolver.Declare(data.Var, data.VarSpan, symbols.SymbolLoopVar, 0, symbols.SymbolDecl{Stmt: id})
				tc.symbol(sym).Type = elem
				tc.result.StmtSymbols[id] = sym
			})
		})
	case ast.StmtLoop:
		data, _ := tc.builder.Stmts.Loop(id)
		tc.loopBody(false, func() {
			tc.walkScoped(symbols.ScopeLoop, id, data.Body, nil)
		})
	case ast.StmtMatch:
		data, _ := tc.builder.Stmts.Match(id)
		tc.typeExpr(data.Match)
	case ast.StmtBreak, ast.StmtContinue:
		if !tc.inLoop() {
			word := "break"
			if stmt.Kind == ast.StmtContinue {
				word = "continue"
			}
			tc.report(diag.SemaBreakOutsideLoop, stmt.Span, "'%s' outside of a loop", word)
		}
	case ast.StmtReturn:
		data, _ := tc.builder.Stmts.Return(id)
		tc.walkReturn(stmt.Span, data.Value)
	case ast.StmtImport:
		data, _ := tc.builder.Stmts.Import(id)
		tc.walkImport(id, stmt.Span, data)
	case ast.StmtAssign:
		data, _ := tc.builder.Stmts.Assign(id)
		tc.walkAssign(stmt.Span, data)
	case ast.StmtExpr:
		data, _ := tc.builder.Stmts.Expr(id)
		tc.typeExpr(data.Expr)
	case ast.StmtTry:
		data, _ := tc.builder.Stmts.Try(id)
		tc.walkTry(id, data)
	case ast.StmtEntry:
		data, _ := tc.builder.Stmts.Entry(id)
		sig := &Signature{
			Name:            tc.table.Strings.Intern("main"),
			Decl:            id,
			Result:          tc.types.Builtins().Unit,
			ResultAnnotated: true,
		}
		tc.checkFnBody(sig, id, data.Body)
	}
}

func (tc *typeChecker) walkLet(id ast.StmtID, data *ast.StmtLetData) {
	declared := types.NoTypeID
	if data.Type.IsValid() {
		declared = tc.resolveTypeExpr(data.Type)
	}
	actual := types.NoTypeID
	if data.Value.IsValid() {
		actual = tc.typeExpr(data.Value)
		if declared != types.NoTypeID && !tc.types.Assignable(declared, actual) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Value), "cannot assign %s to '%s' of type %s",
				tc.label(actual), tc.name(data.Name), tc.label(declared))
		}
	}
	kind, flags := symbols.SymbolLet, tc.topLevelFlag()
	if data.Mutable {
		kind, flags = symbols.SymbolVar, flags|symbols.SymbolFlagMutable
	}
	sym := tc.resolver.Declare(data.Name, data.NameSpan, kind, flags, symbols.SymbolDecl{Stmt: id, Expr: data.Value})
	if declared != types.NoTypeID {
		tc.symbol(sym).Type = declared
	} else {
		tc.symbol(sym).Type = actual
	}
	tc.result.StmtSymbols[id] = sym
}

// checkFnBody declares the parameters of sig in a fresh function scope and
// checks body. Moves inside the body are local to it.
func (tc *typeChecker) checkFnBody(sig *Signature, id ast.StmtID, body []ast.StmtID) {
	outer := tc.moved
	tc.moved = make(moveState)
	scope := tc.resolver.Enter(symbols.ScopeFunction, id, tc.blockSpan(id, body))
	for i := range sig.Params {
		p := &sig.Params[i]
		var flags symbols.SymbolFlags
		switch p.Mode {
		case ast.OwnRef, ast.OwnMove, ast.OwnKept:
			flags |= symbols.SymbolFlagMutable
		}
		sym := tc.resolver.Declare(p.Name, p.Span, symbols.SymbolParam, flags, symbols.SymbolDecl{Stmt: id})
		s := tc.symbol(sym)
		s.Type, s.Mode = p.Type, p.Mode
		p.Symbol = sym
	}
	tc.fnStack = append(tc.fnStack, &fnContext{sig: sig, scope: scope})
	tc.walkBlock(body)
	tc.fnStack = tc.fnStack[:len(tc.fnStack)-1]
	tc.resolver.Leave(scope)
	tc.moved = outer
	tc.finishSignature(sig)
}

func (tc *typeChecker) walkIf(id ast.StmtID, data *ast.StmtIfData) {
	paths := make([]func(), 0, len(data.Branches)+1)
	for i, br := range data.Branches {
		word := "if"
		if i > 0 {
			word = "elif"
		}
		// Conditions run in sequence, so each is checked before the branch
		// fan-out with the moves of earlier conditions applied.
		tc.checkCondition(br.Cond, word)
		paths = append(paths, func() { tc.walkScoped(symbols.ScopeBlock, id, br.Body, nil) })
	}
	if data.HasElse {
		paths = append(paths, func() { tc.walkScoped(symbols.ScopeBlock, id, data.Else, nil) })
	}
	tc.branches(!data.HasElse, paths...)
}

func (tc *typeChecker) walkTry(id ast.StmtID, data *ast.StmtTryData) {
	start := tc.snapshotMoves()
	tc.walkScoped(symbols.ScopeBlock, id, data.Body, nil)
	afterBody := tc.snapshotMoves()
	// A handler may run after any prefix of the body.
	handlerStart := mergeMoves(start, afterBody)
	ends := []moveState{afterBody}
	for _, c := range data.Catches {
		tc.restoreMoves(handlerStart)
		tc.walkScoped(symbols.ScopeBlock, id, c.Body, func() {
			if c.Name == source.NoStringID {
				return
			}
			sym := tc.resolver.Declare(c.Name, c.NameSpan, symbols.SymbolBinding, 0, symbols.SymbolDecl{Stmt: id})
			tc.symbol(sym).Type = tc.types.Builtins().String
		})
		ends = append(ends, tc.snapshotMoves())
	}
	tc.moved = mergeMoves(ends...)
	if data.HasFinally {
		tc.walkScoped(symbols.ScopeBlock, id, data.Finally, nil)
	}
}

func (tc *typeChecker) walkReturn(span source.Span, value ast.ExprID) {
	fc := tc.currentFn()
	actual := types.NoTypeID
	if value.IsValid() {
		actual = tc.typeExpr(value)
	}
	if fc == nil {
		tc.report(diag.SemaReturnOutsideFn, span, "'return' outside of a function")
		return
	}
	sig := fc.sig
	unit := tc.types.Builtins().Unit
	switch {
	case !value.IsValid():
		if (sig.ResultAnnotated || sig.inferred) && sig.Result != unit && !tc.types.IsUnknown(sig.Result) {
			tc.report(diag.SemaTypeMismatch, span, "missing return value, expected %s", tc.label(sig.Result))
		}
		if !sig.ResultAnnotated && !sig.inferred {
			sig.Result, sig.inferred = unit, true
		}
	case sig.ResultAnnotated:
		if !tc.types.Assignable(sig.Result, actual) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(value), "return type mismatch: expected %s, got %s",
				tc.label(sig.Result), tc.label(actual))
		}
	case !sig.inferred:
		sig.Result, sig.inferred = actual, true
	default:
		joined, ok := tc.types.Join(sig.Result, actual)
		if !ok {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(value), "return type mismatch: expected %s, got %s",
				tc.label(sig.Result), tc.label(actual))
			return
		}
		sig.Result = joined
	}
}

func (tc *typeChecker) walkImport(id ast.StmtID, span source.Span, data *ast.StmtImportData) {
	parts := make([]string, len(data.Path))
	for i, p := range data.Path {
		parts[i] = tc.name(p)
	}
	base := strings.Join(parts, ".")
	declare := func(name source.StringID, path string) {
		sym := tc.resolver.Declare(name, span, symbols.SymbolImport, tc.topLevelFlag(), symbols.SymbolDecl{Stmt: id})
		tc.symbol(sym).Type = tc.types.RegisterModule(path)
		tc.result.StmtSymbols[id] = sym
	}
	if data.Grouped {
		for _, name := range data.Names {
			declare(name, base+"."+tc.name(name))
		}
		return
	}
	if len(data.Path) > 0 {
		declare(data.Path[len(data.Path)-1], base)
	}
}

func (tc *typeChecker) inLoop() bool {
	scope := tc.resolver.Enclosing(symbols.ScopeLoop, symbols.ScopeFunction)
	s := tc.table.Scopes.Get(scope)
	return s != nil && s.Kind == symbols.ScopeLoop
}

func (tc *typeChecker) checkCondition(cond ast.ExprID, what string) {
	t := tc.typeExpr(cond)
	if !tc.types.IsUnknown(t) && tc.types.KindOf(t) != types.KindBool {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(cond), "%s condition must be bool, got %s", what, tc.label(t))
	}
}

// iterElem types the iterable of a for loop and returns the loop variable type.
func (tc *typeChecker) iterElem(iter ast.ExprID) types.TypeID {
	t := tc.typeExpr(iter)
	tt, ok := tc.types.Lookup(t)
	if !ok {
		return types.NoTypeID
	}
	switch tt.Kind {
	case types.KindAny:
		return t
	case types.KindList, types.KindSet, types.KindRange:
		return tt.Elem
	case types.KindDict:
		return tt.Key
	case types.KindString:
		return t
	default:
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(iter), "cannot iterate over %s", tc.label(t))
		return types.NoTypeID
	}
}
