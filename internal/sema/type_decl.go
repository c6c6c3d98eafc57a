package sema

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

// declareItems pre-declares the fn, struct and enum statements of a
// statement list so that they may be referenced before their definition.
// Types are registered first, then signatures and fields are resolved, so
// a signature may name a struct declared further down.
func (tc *typeChecker) declareItems(stmts []ast.StmtID) {
	seen := make(map[source.StringID]source.Span)
	checkDup := func(name source.StringID, span source.Span) {
		if prev, ok := seen[name]; ok {
			tc.reportWithNote(diag.SemaDuplicateDecl, span, prev, "first declared here", "'%s' is already declared in this scope", tc.name(name))
			return
		}
		seen[name] = span
	}
	for _, id := range stmts {
		stmt := tc.builder.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case ast.StmtStruct:
			data, _ := tc.builder.Stmts.Struct(id)
			checkDup(data.Name, data.NameSpan)
			tc.declareStruct(id, data)
		case ast.StmtEnum:
			data, _ := tc.builder.Stmts.Enum(id)
			checkDup(data.Name, data.NameSpan)
			tc.declareEnum(id, data)
		case ast.StmtFn:
			data, _ := tc.builder.Stmts.Fn(id)
			checkDup(data.Name, data.NameSpan)
		}
	}
	for _, id := range stmts {
		stmt := tc.builder.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case ast.StmtStruct:
			data, _ := tc.builder.Stmts.Struct(id)
			tc.completeStruct(id, data)
		case ast.StmtFn:
			data, _ := tc.builder.Stmts.Fn(id)
			tc.declareFn(id, data)
		}
	}
}

func (tc *typeChecker) topLevelFlag() symbols.SymbolFlags {
	if tc.resolver.CurrentScope() == tc.resolver.ModuleScope() {
		return symbols.SymbolFlagTopLevel
	}
	return 0
}

func (tc *typeChecker) declareStruct(id ast.StmtID, data *ast.StmtStructData) {
	typ := tc.types.RegisterStruct(data.Name, data.NameSpan)
	sym := tc.resolver.Declare(data.Name, data.NameSpan, symbols.SymbolStruct, tc.topLevelFlag(), symbols.SymbolDecl{Stmt: id})
	tc.symbol(sym).Type = typ
	tc.result.StmtSymbols[id] = sym
	if tc.structByType == nil {
		tc.structByType = make(map[types.TypeID]ast.StmtID)
	}
	tc.structByType[typ] = id
}

// completeStruct resolves field types and method signatures.
func (tc *typeChecker) completeStruct(id ast.StmtID, data *ast.StmtStructData) {
	sym := tc.symbol(tc.result.StmtSymbols[id])
	if sym == nil {
		return
	}
	owner := sym.Type
	fields := make([]types.StructField, 0, len(data.Fields))
	fieldSpans := make(map[source.StringID]source.Span, len(data.Fields))
	for _, f := range data.Fields {
		fields = append(fields, types.StructField{Name: f.Name, Type: tc.resolveTypeExpr(f.Type)})
		fieldSpans[f.Name] = f.Span
	}
	tc.types.SetStructFields(owner, fields)

	methodSpans := make(map[source.StringID]source.Span, len(data.Methods))
	for _, mid := range data.Methods {
		fn, ok := tc.builder.Stmts.Fn(mid)
		if !ok {
			continue
		}
		if prev, dup := fieldSpans[fn.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateMember, fn.NameSpan, prev, "field declared here", "method '%s' has the same name as a field", tc.name(fn.Name))
		}
		if prev, dup := methodSpans[fn.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateDecl, fn.NameSpan, prev, "first declared here", "method '%s' is already declared", tc.name(fn.Name))
			continue
		}
		methodSpans[fn.Name] = fn.NameSpan
		sig := tc.newSignature(fn.Name, mid, fn.Params, fn.Return, fn.Async, owner)
		tc.result.Signatures[mid] = sig
		recv, hasSelf := sig.Receiver()
		tc.types.AddStructMethod(owner, types.StructMethod{
			Name:   fn.Name,
			Fn:     sig.FnType(tc.types),
			Static: !hasSelf,
			Mut:    hasSelf && recv.Mode == ast.OwnRef,
		})
	}
}

func (tc *typeChecker) declareEnum(id ast.StmtID, data *ast.StmtEnumData) {
	variants := make([]source.StringID, len(data.Variants))
	for i, v := range data.Variants {
		variants[i] = v.Name
	}
	typ := tc.types.RegisterEnum(data.Name, data.NameSpan, variants)
	sym := tc.resolver.Declare(data.Name, data.NameSpan, symbols.SymbolEnum, tc.topLevelFlag(), symbols.SymbolDecl{Stmt: id})
	tc.symbol(sym).Type = typ
	tc.result.StmtSymbols[id] = sym
}

func (tc *typeChecker) declareFn(id ast.StmtID, data *ast.StmtFnData) *Signature {
	sig := tc.newSignature(data.Name, id, data.Params, data.Return, data.Async, types.NoTypeID)
	flags := tc.topLevelFlag()
	if data.Async {
		flags |= symbols.SymbolFlagAsync
	}
	sym := tc.resolver.Declare(data.Name, data.NameSpan, symbols.SymbolFunc, flags, symbols.SymbolDecl{Stmt: id})
	tc.symbol(sym).Type = sig.FnType(tc.types)
	sig.Symbol = sym
	tc.result.StmtSymbols[id] = sym
	tc.result.Signatures[id] = sig
	return sig
}

// methodSignature finds the signature of a method declared on a struct.
func (tc *typeChecker) methodSignature(owner types.TypeID, name source.StringID) *Signature {
	decl, ok := tc.structByType[owner]
	if !ok {
		return nil
	}
	data, ok := tc.builder.Stmts.Struct(decl)
	if !ok {
		return nil
	}
	for _, mid := range data.Methods {
		if sig := tc.result.Signatures[mid]; sig != nil && sig.Name == name {
			return sig
		}
	}
	return nil
}
