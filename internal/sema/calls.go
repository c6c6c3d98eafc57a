package sema

import (
	"strconv"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (tc *typeChecker) typeCall(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Call(id)
	callee := tc.builder.Exprs.Unparen(data.Callee)
	calleeType := tc.typeExpr(data.Callee)
	b := tc.types.Builtins()

	if member, ok := tc.builder.Exprs.Member(callee); ok {
		if sig := tc.memberCallTarget(member); sig != nil {
			return tc.checkUserCall(id, sig, data.Args, member.Target)
		}
		if t, ok := tc.containerCall(id, member, data.Args); ok {
			return t
		}
	} else if sym := tc.symbol(tc.result.ExprSymbols[callee]); sym != nil {
		switch sym.Kind {
		case symbols.SymbolBuiltin:
			return tc.checkBuiltinCall(id, tc.name(sym.Name), data.Args)
		case symbols.SymbolStruct:
			return tc.checkConstructor(id, sym, data.Args)
		case symbols.SymbolFunc:
			if sig := tc.result.Signatures[sym.Decl.Stmt]; sig != nil {
				return tc.checkUserCall(id, sig, data.Args, ast.NoExprID)
			}
		case symbols.SymbolEnum:
			tc.report(diag.SemaNotCallable, tc.exprSpan(callee), "enum '%s' is not callable", tc.name(sym.Name))
			tc.typeArgs(data.Args)
			return types.NoTypeID
		}
	}

	switch tc.types.KindOf(calleeType) {
	case types.KindInvalid, types.KindAny:
		tc.typeArgs(data.Args)
		return b.Any
	case types.KindFn:
		info, _ := tc.types.FnInfo(calleeType)
		if len(info.Params) != len(data.Args) {
			tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "function of type %s expects %d argument%s, got %d",
				tc.label(calleeType), len(info.Params), plural(len(info.Params)), len(data.Args))
		}
		for i, arg := range data.Args {
			at := tc.typeExpr(arg)
			if i < len(info.Params) && !tc.types.Assignable(info.Params[i], at) {
				tc.report(diag.SemaTypeMismatch, tc.exprSpan(arg), "argument %d: expected %s, got %s",
					i+1, tc.label(info.Params[i]), tc.label(at))
			}
		}
		return info.Result
	default:
		tc.report(diag.SemaNotCallable, tc.exprSpan(callee), "value of type %s is not callable", tc.label(calleeType))
		tc.typeArgs(data.Args)
		return types.NoTypeID
	}
}

// containerCall types a runtime method on a list, set, dict or string.
// Unknown method names stay untyped and are reported by the generator.
func (tc *typeChecker) containerCall(id ast.ExprID, member *ast.ExprMemberData, args []ast.ExprID) (types.TypeID, bool) {
	receiver := tc.result.ExprTypes[member.Target]
	m, ok := types.LookupMethod(tc.types.KindOf(receiver), tc.name(member.Name))
	if !ok {
		return types.NoTypeID, false
	}
	tc.typeArgs(args)
	if len(args) < m.MinArgs || len(args) > m.MaxArgs {
		want := strconv.Itoa(m.MinArgs)
		if m.MaxArgs != m.MinArgs {
			want += " to " + strconv.Itoa(m.MaxArgs)
		}
		tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "method '%s' on %s expects %s argument%s, got %d",
			tc.name(member.Name), tc.label(receiver), want, plural(m.MaxArgs), len(args))
	}
	if m.Mutates {
		root, _ := tc.placeRoot(member.Target)
		if sym := tc.symbol(tc.result.ExprSymbols[root]); sym != nil {
			tc.checkWritable(sym, tc.exprSpan(member.Target), false)
		}
	}
	return tc.types.MethodType(receiver, m), true
}

func (tc *typeChecker) typeArgs(args []ast.ExprID) {
	for _, a := range args {
		tc.typeExpr(a)
	}
}

// memberCallTarget resolves `value.method(...)` and `Type.method(...)` to
// a user method. The member expression has already been typed.
func (tc *typeChecker) memberCallTarget(member *ast.ExprMemberData) *Signature {
	target := tc.result.ExprTypes[member.Target]
	if tc.types.KindOf(target) != types.KindStruct {
		return nil
	}
	sig := tc.methodSignature(target, member.Name)
	if sig == nil {
		return nil
	}
	targetSym := tc.symbol(tc.result.ExprSymbols[tc.builder.Exprs.Unparen(member.Target)])
	typeName := targetSym != nil && targetSym.Kind == symbols.SymbolStruct
	if sig.Static != typeName {
		// typeMember already reported the mismatch.
		return nil
	}
	return sig
}

// checkUserCall checks the arguments of a call to a declared fn or method.
// recv is the receiver expression of a method call on a value.
func (tc *typeChecker) checkUserCall(id ast.ExprID, sig *Signature, args []ast.ExprID, recv ast.ExprID) types.TypeID {
	tc.result.CallTargets[id] = sig
	if self, ok := sig.Receiver(); ok && recv.IsValid() {
		tc.checkOwnership(recv, self)
	}
	offset := len(sig.Params) - len(sig.Args())
	params := sig.Args()
	if len(args) != len(params) {
		tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "'%s' expects %d argument%s, got %d",
			tc.name(sig.Name), len(params), plural(len(params)), len(args))
	}
	refined := false
	for i, arg := range args {
		at := tc.typeExpr(arg)
		if i >= len(params) {
			continue
		}
		p := &sig.Params[offset+i]
		if !p.Annotated && tc.types.KindOf(p.Type) == types.KindAny && !tc.types.IsUnknown(at) {
			p.Type = at
			if sym := tc.symbol(p.Symbol); sym != nil {
				sym.Type = at
			}
			refined = true
		} else if !tc.types.Assignable(p.Type, at) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(arg), "argument '%s' of '%s' expects %s, got %s",
				tc.name(p.Name), tc.name(sig.Name), tc.label(p.Type), tc.label(at))
		}
		tc.checkOwnership(arg, *p)
	}
	if refined {
		if sym := tc.symbol(sig.Symbol); sym != nil {
			sym.Type = sig.FnType(tc.types)
		}
	}
	// Futures are not modelled: an async call and its await share a type.
	return sig.Result
}

// checkOwnership applies the caller side of a parameter mode.
func (tc *typeChecker) checkOwnership(arg ast.ExprID, param ParamInfo) {
	switch param.Mode {
	case ast.OwnRef:
		tc.checkRefArgument(arg, param)
	case ast.OwnMove:
		tc.markBindingMoved(tc.moveTarget(arg), tc.exprSpan(arg))
	}
}

func (tc *typeChecker) checkConstructor(id ast.ExprID, sym *symbols.Symbol, args []ast.ExprID) types.TypeID {
	info, ok := tc.types.StructInfo(sym.Type)
	if !ok {
		tc.typeArgs(args)
		return types.NoTypeID
	}
	name := tc.name(sym.Name)
	if len(args) != len(info.Fields) {
		tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "'%s' has %d field%s, got %d argument%s",
			name, len(info.Fields), plural(len(info.Fields)), len(args), plural(len(args)))
	}
	for i, arg := range args {
		at := tc.typeExpr(arg)
		if i >= len(info.Fields) {
			continue
		}
		f := info.Fields[i]
		if !tc.types.Assignable(f.Type, at) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(arg), "field '%s' of '%s' expects %s, got %s",
				tc.name(f.Name), name, tc.label(f.Type), tc.label(at))
		}
	}
	return sym.Type
}

func (tc *typeChecker) checkBuiltinCall(id ast.ExprID, name string, args []ast.ExprID) types.TypeID {
	b := tc.types.Builtins()
	argTypes := make([]types.TypeID, len(args))
	for i, a := range args {
		argTypes[i] = tc.typeExpr(a)
	}
	if bounds, ok := builtinArity[name]; ok {
		n := len(args)
		switch {
		case bounds.max < 0 && n < bounds.min:
			tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "'%s' expects at least %d argument%s, got %d", name, bounds.min, plural(bounds.min), n)
		case bounds.max >= 0 && bounds.min == bounds.max && n != bounds.min:
			tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "'%s' expects %d argument%s, got %d", name, bounds.min, plural(bounds.min), n)
		case bounds.max >= 0 && (n < bounds.min || n > bounds.max):
			tc.report(diag.SemaArityMismatch, tc.exprSpan(id), "'%s' expects %d to %d arguments, got %d", name, bounds.min, bounds.max, n)
		}
	}
	want := func(i int, kind types.Kind) {
		if i >= len(args) || tc.types.IsUnknown(argTypes[i]) || tc.types.KindOf(argTypes[i]) == kind {
			return
		}
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(args[i]), "'%s' argument %d must be %s, got %s",
			name, i+1, kind, tc.label(argTypes[i]))
	}
	switch name {
	case "len":
		if len(args) > 0 {
			fam := tc.types.Family(argTypes[0])
			if fam != types.FamilyAny && fam&(types.FamilyContainer|types.FamilyTuple) == 0 {
				tc.report(diag.SemaTypeMismatch, tc.exprSpan(args[0]), "'len' cannot be applied to %s", tc.label(argTypes[0]))
			}
		}
		return b.Int
	case "range":
		want(0, types.KindInt)
		want(1, types.KindInt)
		return tc.types.Range(b.Int)
	case "assert":
		want(0, types.KindBool)
		want(1, types.KindString)
		return b.Unit
	default:
		return b.Unit
	}
}
