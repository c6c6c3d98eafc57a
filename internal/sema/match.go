package sema

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/symbols"
	"gul/internal/types"
)

// typeMatch checks a match expression. Arms run from the state after the
// scrutinee; without an irrefutable arm the match may also fall through.
// An arm with a block body makes the whole match a statement of type unit.
func (tc *typeChecker) typeMatch(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Match(id)
	scrutinee := tc.typeExpr(data.Scrutinee)

	exhaustive := false
	armTypes := make([]types.TypeID, len(data.Arms))
	paths := make([]func(), len(data.Arms))
	for i := range data.Arms {
		arm := data.Arms[i]
		if pat := tc.builder.Patterns.Get(arm.Pattern); pat != nil && pat.IsIrrefutable() && !arm.Guard.IsValid() {
			exhaustive = true
		}
		paths[i] = func() {
			armTypes[i] = tc.checkArm(id, arm, scrutinee)
		}
	}
	tc.branches(!exhaustive, paths...)

	b := tc.types.Builtins()
	result := b.Any
	for i, arm := range data.Arms {
		if arm.IsBlock {
			return b.Unit
		}
		if i == 0 {
			result = armTypes[i]
			continue
		}
		joined, ok := tc.types.Join(result, armTypes[i])
		if !ok {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(arm.Value), "match arms have incompatible types %s and %s",
				tc.label(result), tc.label(armTypes[i]))
			continue
		}
		result = joined
	}
	return result
}

func (tc *typeChecker) checkArm(match ast.ExprID, arm ast.MatchArm, scrutinee types.TypeID) types.TypeID {
	scope := tc.resolver.Enter(symbols.ScopeBlock, ast.NoStmtID, arm.Span)
	defer tc.resolver.Leave(scope)

	tc.bindPattern(match, arm.Pattern, scrutinee)
	if arm.Guard.IsValid() {
		tc.checkCondition(arm.Guard, "match guard")
	}
	if arm.IsBlock {
		tc.walkBlock(arm.Block)
		return tc.types.Builtins().Unit
	}
	return tc.typeExpr(arm.Value)
}

func (tc *typeChecker) bindPattern(match ast.ExprID, patID ast.PatternID, scrutinee types.TypeID) {
	pat := tc.builder.Patterns.Get(patID)
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatBind:
		sym := tc.resolver.Declare(pat.Name, pat.Span, symbols.SymbolBinding, 0, symbols.SymbolDecl{Expr: match})
		tc.symbol(sym).Type = scrutinee
	case ast.PatLiteral:
		lit := tc.typeExpr(pat.Literal)
		if !tc.types.Comparable(scrutinee, lit) {
			tc.report(diag.SemaTypeMismatch, pat.Span, "pattern of type %s cannot match %s", tc.label(lit), tc.label(scrutinee))
		}
	case ast.PatVariant:
		tc.checkVariantPattern(pat, scrutinee)
	}
}

func (tc *typeChecker) checkVariantPattern(pat *ast.Pattern, scrutinee types.TypeID) {
	enumSym, ok := tc.resolver.LookupOne(pat.Enum, symbols.SymbolEnum.Mask())
	if !ok {
		tc.report(diag.SemaUndefinedName, pat.Span, "undefined enum '%s'", tc.name(pat.Enum))
		return
	}
	enumType := tc.symbol(enumSym).Type
	info, _ := tc.types.EnumInfo(enumType)
	if info == nil || !info.HasVariant(pat.Name) {
		tc.report(diag.SemaUnknownMember, pat.Span, "enum '%s' has no variant '%s'", tc.name(pat.Enum), tc.name(pat.Name))
		return
	}
	if !tc.types.IsUnknown(scrutinee) && scrutinee != enumType {
		tc.report(diag.SemaTypeMismatch, pat.Span, "pattern of type %s cannot match %s", tc.label(enumType), tc.label(scrutinee))
	}
}
