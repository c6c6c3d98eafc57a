package sema

import (
	"gul/internal/ast"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

// ParamInfo is one resolved parameter of a Signature.
type ParamInfo struct {
	Name source.StringID
	Span source.Span
	Mode ast.Ownership
	Type types.TypeID
	// Annotated is false when no type was written; Type then starts as any
	// and is refined from the first call site with a concrete argument.
	Annotated bool
	IsSelf    bool
	Symbol    symbols.SymbolID
}

// Signature describes a function, method or lambda.
type Signature struct {
	Name   source.StringID
	Decl   ast.StmtID
	Symbol symbols.SymbolID
	Params []ParamInfo
	Result types.TypeID
	// ResultAnnotated is false when the return type is inferred.
	ResultAnnotated bool
	Async           bool
	// Owner is the struct type for methods, NoTypeID otherwise.
	Owner types.TypeID
	// Static methods have no self parameter.
	Static bool

	inferred bool // a valued return has fixed Result
}

// Args returns the parameters a caller supplies, i.e. without the receiver.
func (s *Signature) Args() []ParamInfo {
	if len(s.Params) > 0 && s.Params[0].IsSelf {
		return s.Params[1:]
	}
	return s.Params
}

// Receiver returns the self parameter of a method.
func (s *Signature) Receiver() (ParamInfo, bool) {
	if len(s.Params) > 0 && s.Params[0].IsSelf {
		return s.Params[0], true
	}
	return ParamInfo{}, false
}

// FnType registers the callable type of the signature, receiver excluded.
func (s *Signature) FnType(in *types.Interner) types.TypeID {
	args := s.Args()
	params := make([]types.TypeID, len(args))
	for i, p := range args {
		params[i] = p.Type
	}
	return in.RegisterFn(params, s.Result, s.Async)
}

func (tc *typeChecker) newSignature(name source.StringID, decl ast.StmtID, params []ast.Param, ret ast.TypeExprID, async bool, owner types.TypeID) *Signature {
	sig := &Signature{
		Name:  name,
		Decl:  decl,
		Async: async,
		Owner: owner,
	}
	for _, p := range params {
		info := ParamInfo{
			Name:   p.Name,
			Span:   p.Span,
			Mode:   p.Mode,
			IsSelf: p.IsSelf,
		}
		switch {
		case p.IsSelf:
			info.Type, info.Annotated = owner, true
		case p.Type.IsValid():
			info.Type, info.Annotated = tc.resolveTypeExpr(p.Type), true
		default:
			info.Type = tc.types.Builtins().Any
		}
		sig.Params = append(sig.Params, info)
	}
	sig.Static = owner != types.NoTypeID && (len(sig.Params) == 0 || !sig.Params[0].IsSelf)
	if ret.IsValid() {
		sig.Result, sig.ResultAnnotated = tc.resolveTypeExpr(ret), true
	} else {
		sig.Result = tc.types.Builtins().Any
	}
	return sig
}

// finishSignature settles an inferred result once the body was checked.
func (tc *typeChecker) finishSignature(sig *Signature) {
	if !sig.ResultAnnotated && !sig.inferred {
		sig.Result = tc.types.Builtins().Unit
	}
	if sym := tc.symbol(sig.Symbol); sym != nil {
		sym.Type = sig.FnType(tc.types)
	}
}
