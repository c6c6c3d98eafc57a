package sema

import (
	"strconv"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (tc *typeChecker) record(id ast.ExprID, t types.TypeID) types.TypeID {
	tc.result.ExprTypes[id] = t
	return t
}

// typeExpr computes, records and returns the type of an expression. After
// a reported error the expression gets the invalid type, which every later
// check accepts silently.
func (tc *typeChecker) typeExpr(id ast.ExprID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}
	b := tc.types.Builtins()
	switch expr.Kind {
	case ast.ExprBad:
		return tc.record(id, types.NoTypeID)
	case ast.ExprIdent:
		return tc.record(id, tc.typeIdent(id))
	case ast.ExprLit:
		lit, _ := tc.builder.Exprs.Literal(id)
		switch lit.Kind {
		case ast.ExprLitInt:
			return tc.record(id, b.Int)
		case ast.ExprLitFloat:
			return tc.record(id, b.Float)
		case ast.ExprLitString:
			return tc.record(id, b.String)
		default:
			return tc.record(id, b.Bool)
		}
	case ast.ExprBinary:
		data, _ := tc.builder.Exprs.Binary(id)
		left := tc.typeExpr(data.Left)
		right := tc.typeExpr(data.Right)
		result, ok := tc.types.BinaryType(data.Op, left, right)
		if !ok {
			tc.report(diag.SemaTypeMismatch, expr.Span, "operator '%s' cannot be applied to %s and %s",
				data.Op, tc.label(left), tc.label(right))
		}
		return tc.record(id, result)
	case ast.ExprUnary:
		data, _ := tc.builder.Exprs.Unary(id)
		operand := tc.typeExpr(data.Operand)
		result, ok := tc.types.UnaryType(data.Op, operand)
		if !ok {
			tc.report(diag.SemaInvalidOperand, expr.Span, "operator '%s' cannot be applied to %s", data.Op, tc.label(operand))
			result = types.NoTypeID
		}
		return tc.record(id, result)
	case ast.ExprCall:
		return tc.record(id, tc.typeCall(id))
	case ast.ExprIndex:
		return tc.record(id, tc.typeIndex(id))
	case ast.ExprMember:
		return tc.record(id, tc.typeMember(id))
	case ast.ExprLambda:
		return tc.record(id, tc.typeLambda(id))
	case ast.ExprMatch:
		return tc.record(id, tc.typeMatch(id))
	case ast.ExprTypeCtor:
		return tc.record(id, tc.typeCtor(id))
	case ast.ExprList, ast.ExprSet:
		data, _ := tc.builder.Exprs.Seq(id)
		elem := tc.joinElems(data.Elems, "elements")
		if expr.Kind == ast.ExprSet {
			return tc.record(id, tc.types.Set(elem))
		}
		return tc.record(id, tc.types.List(elem))
	case ast.ExprTuple:
		data, _ := tc.builder.Exprs.Seq(id)
		elems := make([]types.TypeID, len(data.Elems))
		for i, e := range data.Elems {
			elems[i] = tc.typeExpr(e)
		}
		return tc.record(id, tc.types.RegisterTuple(elems))
	case ast.ExprDict:
		data, _ := tc.builder.Exprs.Dict(id)
		return tc.record(id, tc.typeDictEntries(data.Entries))
	case ast.ExprGroup:
		data, _ := tc.builder.Exprs.Group(id)
		return tc.record(id, tc.typeExpr(data.Inner))
	case ast.ExprAwait:
		data, _ := tc.builder.Exprs.Await(id)
		if fc := tc.currentFn(); fc == nil || !fc.sig.Async {
			tc.report(diag.SemaAwaitOutsideAsync, expr.Span, "'await' outside of an async function")
		}
		return tc.record(id, tc.typeExpr(data.Value))
	default:
		return tc.record(id, types.NoTypeID)
	}
}

func (tc *typeChecker) typeIdent(id ast.ExprID) types.TypeID {
	ident, _ := tc.builder.Exprs.Ident(id)
	symID, ok := tc.resolver.Lookup(ident.Name)
	if !ok {
		tc.report(diag.SemaUndefinedName, tc.exprSpan(id), "undefined name '%s'", tc.name(ident.Name))
		return types.NoTypeID
	}
	tc.result.ExprSymbols[id] = symID
	sym := tc.symbol(symID)
	if sym.Kind.IsValue() {
		tc.checkUseAfterMove(symID, tc.exprSpan(id))
	}
	return sym.Type
}

// joinElems types a list of expressions and joins them to one element type.
func (tc *typeChecker) joinElems(elems []ast.ExprID, what string) types.TypeID {
	elem := tc.types.Builtins().Any
	for i, e := range elems {
		t := tc.typeExpr(e)
		if i == 0 {
			elem = t
			continue
		}
		joined, ok := tc.types.Join(elem, t)
		if !ok {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(e), "%s have incompatible types %s and %s", what, tc.label(elem), tc.label(t))
			continue
		}
		elem = joined
	}
	return elem
}

func (tc *typeChecker) typeDictEntries(entries []ast.DictEntry) types.TypeID {
	keys := make([]ast.ExprID, len(entries))
	values := make([]ast.ExprID, len(entries))
	for i, e := range entries {
		keys[i], values[i] = e.Key, e.Value
	}
	key := tc.joinElems(keys, "dict keys")
	value := tc.joinElems(values, "dict values")
	return tc.types.Dict(key, value)
}

func (tc *typeChecker) typeIndex(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Index(id)
	target := tc.typeExpr(data.Target)
	index := tc.typeExpr(data.Index)
	b := tc.types.Builtins()
	tt, ok := tc.types.Lookup(target)
	if !ok || tt.Kind == types.KindAny {
		return target
	}
	wantInt := func() {
		k := tc.types.KindOf(index)
		if !tc.types.IsUnknown(index) && k != types.KindInt && k != types.KindRange {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Index), "index must be int, got %s", tc.label(index))
		}
	}
	switch tt.Kind {
	case types.KindList:
		wantInt()
		if tc.types.KindOf(index) == types.KindRange {
			return target
		}
		return tt.Elem
	case types.KindString:
		wantInt()
		return target
	case types.KindRange:
		wantInt()
		return b.Int
	case types.KindDict:
		if !tc.types.Assignable(tt.Key, index) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Index), "dict key must be %s, got %s", tc.label(tt.Key), tc.label(index))
		}
		return tt.Elem
	case types.KindTuple:
		info, _ := tc.types.TupleInfo(target)
		if lit, ok := tc.builder.Exprs.Literal(tc.builder.Exprs.Unparen(data.Index)); ok && lit.Kind == ast.ExprLitInt {
			if n, err := strconv.Atoi(tc.name(lit.Raw)); err == nil && n >= 0 && n < len(info.Elems) {
				return info.Elems[n]
			}
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Index), "tuple index out of range for %s", tc.label(target))
			return types.NoTypeID
		}
		return b.Any
	default:
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Target), "cannot index into %s", tc.label(target))
		return types.NoTypeID
	}
}

func (tc *typeChecker) typeMember(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Member(id)
	target := tc.typeExpr(data.Target)
	member := tc.name(data.Name)
	targetSym := tc.symbol(tc.result.ExprSymbols[tc.builder.Exprs.Unparen(data.Target)])
	tt, ok := tc.types.Lookup(target)
	if !ok {
		return types.NoTypeID
	}
	switch tt.Kind {
	case types.KindAny, types.KindModule:
		return tc.types.Builtins().Any
	case types.KindEnum:
		info, _ := tc.types.EnumInfo(target)
		if targetSym != nil && targetSym.Kind == symbols.SymbolEnum && info.HasVariant(data.Name) {
			return target
		}
		tc.report(diag.SemaUnknownMember, data.NameSpan, "enum '%s' has no variant '%s'", tc.label(target), member)
		return types.NoTypeID
	case types.KindStruct:
		info, _ := tc.types.StructInfo(target)
		typeName := targetSym != nil && targetSym.Kind == symbols.SymbolStruct
		if f, ok := info.Field(data.Name); ok && !typeName {
			return f.Type
		}
		if m, ok := info.Method(data.Name); ok && m.Static == typeName {
			return m.Fn
		}
		tc.report(diag.SemaUnknownMember, data.NameSpan, "'%s' has no member '%s'", tc.label(target), member)
		return types.NoTypeID
	case types.KindTuple:
		info, _ := tc.types.TupleInfo(target)
		if n, err := strconv.Atoi(member); err == nil && n >= 0 && n < len(info.Elems) {
			return info.Elems[n]
		}
		tc.report(diag.SemaUnknownMember, data.NameSpan, "%s has no field '%s'", tc.label(target), member)
		return types.NoTypeID
	case types.KindList, types.KindSet, types.KindDict, types.KindString:
		// Runtime methods are typed at the call by containerCall.
		return tc.types.Builtins().Any
	default:
		tc.report(diag.SemaUnknownMember, data.NameSpan, "%s has no member '%s'", tc.label(target), member)
		return types.NoTypeID
	}
}

func (tc *typeChecker) typeCtor(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.TypeCtor(id)
	span := tc.exprSpan(id)
	b := tc.types.Builtins()
	switch data.Ctor {
	case ast.TypeCtorList, ast.TypeCtorSet:
		elem := tc.joinElems(data.Args, data.Ctor.String()+" elements")
		if len(data.Args) == 1 {
			// @list(xs) converts another iterable.
			if arg := tc.result.ExprTypes[data.Args[0]]; tc.types.Family(arg)&(types.FamilyContainer&^types.FamilyString) != 0 {
				elem = tc.types.Elem(arg)
			}
		}
		if data.Ctor == ast.TypeCtorSet {
			return tc.types.Set(elem)
		}
		return tc.types.List(elem)
	case ast.TypeCtorDict:
		return tc.typeDictEntries(data.Entries)
	case ast.TypeCtorTuple:
		elems := make([]types.TypeID, len(data.Args))
		for i, a := range data.Args {
			elems[i] = tc.typeExpr(a)
		}
		return tc.types.RegisterTuple(elems)
	}

	var result types.TypeID
	var accepts types.FamilyMask
	switch data.Ctor {
	case ast.TypeCtorInt:
		result, accepts = b.Int, types.FamilyNumeric|types.FamilyString|types.FamilyBool
	case ast.TypeCtorFloat:
		result, accepts = b.Float, types.FamilyNumeric|types.FamilyString
	case ast.TypeCtorStr:
		result, accepts = b.String, types.FamilyAll
	default:
		result, accepts = b.Bool, types.FamilyAll
	}
	for _, a := range data.Args {
		tc.typeExpr(a)
	}
	if len(data.Args) != 1 {
		tc.report(diag.SemaArityMismatch, span, "@%s expects 1 argument, got %d", data.Ctor, len(data.Args))
		return result
	}
	arg := tc.result.ExprTypes[data.Args[0]]
	if fam := tc.types.Family(arg); fam != types.FamilyAny && accepts&fam == 0 {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Args[0]), "cannot convert %s to %s", tc.label(arg), data.Ctor)
	}
	return result
}

func (tc *typeChecker) typeLambda(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Lambda(id)
	sig := tc.newSignature(0, ast.NoStmtID, data.Params, ast.NoTypeExprID, false, types.NoTypeID)
	scope := tc.resolver.Enter(symbols.ScopeFunction, ast.NoStmtID, tc.exprSpan(id))
	for i := range sig.Params {
		p := &sig.Params[i]
		sym := tc.resolver.Declare(p.Name, p.Span, symbols.SymbolParam, 0, symbols.SymbolDecl{Expr: id})
		s := tc.symbol(sym)
		s.Type, s.Mode = p.Type, p.Mode
		p.Symbol = sym
	}
	tc.fnStack = append(tc.fnStack, &fnContext{sig: sig, scope: scope})
	sig.Result, sig.inferred = tc.typeExpr(data.Body), true
	tc.fnStack = tc.fnStack[:len(tc.fnStack)-1]
	tc.resolver.Leave(scope)
	tc.result.Lambdas[id] = sig
	return sig.FnType(tc.types)
}
