package sema

import (
	"fmt"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (tc *typeChecker) walkAssign(span source.Span, data *ast.StmtAssignData) {
	target := tc.builder.Exprs.Unparen(data.Target)
	valueType := tc.typeExpr(data.Value)

	var targetType types.TypeID
	if data.Op == ast.AssignSet {
		targetType = tc.typePlace(target)
	} else {
		targetType = tc.typeExpr(target)
		if op, ok := data.Op.BinaryOp(); ok {
			if _, ok := tc.types.BinaryType(op, targetType, valueType); !ok {
				tc.report(diag.SemaTypeMismatch, span, "operator '%s' cannot be applied to %s and %s",
					data.Op, tc.label(targetType), tc.label(valueType))
			}
		}
	}

	root, direct := tc.placeRoot(target)
	symID := tc.result.ExprSymbols[root]
	sym := tc.symbol(symID)
	if sym != nil && !tc.checkWritable(sym, tc.exprSpan(target), direct) {
		return
	}
	if data.Op == ast.AssignSet {
		if !tc.types.Assignable(targetType, valueType) {
			what := "target"
			if direct && sym != nil {
				what = "'" + tc.name(sym.Name) + "'"
			}
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Value), "cannot assign %s to %s of type %s",
				tc.label(valueType), what, tc.label(targetType))
		}
		if direct {
			tc.clearBindingMoved(symID)
		}
	}
}

// typePlace types an assignment target without treating the target
// binding itself as a read.
func (tc *typeChecker) typePlace(target ast.ExprID) types.TypeID {
	ident, ok := tc.builder.Exprs.Ident(target)
	if !ok {
		return tc.typeExpr(target)
	}
	symID, found := tc.resolver.Lookup(ident.Name)
	if !found {
		tc.report(diag.SemaUndefinedName, tc.exprSpan(target), "undefined name '%s'", tc.name(ident.Name))
		return tc.record(target, types.NoTypeID)
	}
	tc.result.ExprSymbols[target] = symID
	return tc.record(target, tc.symbol(symID).Type)
}

// placeRoot walks member and index accesses down to the binding they
// mutate. direct is true when target is the binding itself.
func (tc *typeChecker) placeRoot(target ast.ExprID) (ast.ExprID, bool) {
	direct := true
	for {
		target = tc.builder.Exprs.Unparen(target)
		if m, ok := tc.builder.Exprs.Member(target); ok {
			target, direct = m.Target, false
			continue
		}
		if ix, ok := tc.builder.Exprs.Index(target); ok {
			target, direct = ix.Target, false
			continue
		}
		return target, direct
	}
}

// checkWritable reports a write to sym and returns false when the write is
// not allowed. A borrowed parameter reports only the ownership violation.
func (tc *typeChecker) checkWritable(sym *symbols.Symbol, span source.Span, direct bool) bool {
	name := tc.name(sym.Name)
	if sym.Kind == symbols.SymbolParam && sym.Mode == ast.OwnBorrow {
		msg := fmt.Sprintf("cannot reassign borrowed parameter '%s'", name)
		if !direct {
			msg = fmt.Sprintf("cannot mutate through borrowed parameter '%s'", name)
		}
		diag.ReportError(tc.reporter, diag.SemaBorrowReassign, span, msg).
			WithNote(sym.Span, "parameter is borrowed here; use 'ref' to allow mutation").
			Emit()
		return false
	}
	if sym.Mutable() {
		return true
	}
	if !sym.Kind.IsValue() {
		tc.report(diag.SemaImmutableAssign, span, "cannot assign to %s '%s'", sym.Kind, name)
		return false
	}
	msg := fmt.Sprintf("cannot assign to immutable binding '%s'", name)
	if !direct {
		msg = fmt.Sprintf("cannot mutate immutable binding '%s'", name)
	}
	b := diag.ReportError(tc.reporter, diag.SemaImmutableAssign, span, msg).WithNote(sym.Span, "declared here")
	if sym.Kind == symbols.SymbolLet {
		if stmt := tc.builder.Stmts.Get(sym.Decl.Stmt); stmt != nil {
			kw := source.Span{File: stmt.Span.File, Start: stmt.Span.Start, End: stmt.Span.Start + 3}
			b.WithFix("declare '"+name+"' with var", diag.FixEdit{Span: kw, NewText: "var"})
		}
	}
	b.Emit()
	return false
}

// checkRefArgument enforces that a `ref` parameter receives a mutable place.
func (tc *typeChecker) checkRefArgument(arg ast.ExprID, param ParamInfo) {
	root, _ := tc.placeRoot(arg)
	sym := tc.symbol(tc.result.ExprSymbols[root])
	if sym == nil || sym.Mutable() {
		return
	}
	tc.reportWithNote(diag.SemaRefOfImmutable, tc.exprSpan(arg), sym.Span, "declared here",
		"cannot pass immutable binding '%s' to ref parameter '%s'", tc.name(sym.Name), tc.name(param.Name))
}
