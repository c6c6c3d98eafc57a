package codegen

import (
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/sema"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (g *generator) emitFn(id ast.StmtID, data *ast.StmtFnData) {
	sig := g.res.Signatures[id]
	if sig == nil {
		g.warn(diag.GenUnmappedConstruct, g.builder.Stmts.Get(id).Span, "function '%s' has no checked signature", g.name(data.Name))
		return
	}
	name := rustIdent(g.name(data.Name))
	if renamed, ok := g.renamed[sig.Symbol]; ok {
		name = renamed
	}
	head := "fn " + name + "(" + joinComma(g.params(sig)) + ")"
	if data.Async {
		head = "async " + head
	}
	if sig.Owner != types.NoTypeID {
		head = "pub " + head
	}
	if g.types.KindOf(sig.Result) != types.KindUnit {
		ret, exact := g.rustType(sig.Result)
		if !exact {
			g.warn(diag.GenApproximation, data.NameSpan, "return type of '%s' is not known; emitted as %s", g.name(data.Name), ret)
		}
		head += " -> " + ret
	}

	outer, outerCaptured := g.fn, g.captured
	g.fn, g.captured = sig, make(map[symbols.SymbolID]bool)
	g.w.Line(head + " {")
	g.w.IndentPush()
	g.emitStmts(data.Body)
	g.w.IndentPop()
	g.w.Line("}")
	g.fn, g.captured = outer, outerCaptured
}

// params renders the parameter list of sig.
func (g *generator) params(sig *sema.Signature) []string {
	out := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		if p.IsSelf {
			switch p.Mode {
			case ast.OwnRef:
				out = append(out, "&mut self")
			case ast.OwnMove, ast.OwnKept:
				out = append(out, "self")
			default:
				out = append(out, "&self")
			}
			continue
		}
		typ, exact := g.rustType(p.Type)
		if !exact {
			g.warn(diag.GenUntypedParam, p.Span, "parameter '%s' has no known type; emitted as %s", g.name(p.Name), typ)
		}
		name := rustIdent(g.name(p.Name))
		switch p.Mode {
		case ast.OwnBorrow:
			out = append(out, name+": &"+typ)
		case ast.OwnRef:
			out = append(out, name+": &mut "+typ)
		case ast.OwnMove, ast.OwnKept:
			out = append(out, "mut "+name+": "+typ)
		default:
			out = append(out, name+": "+typ)
		}
	}
	return out
}

func (g *generator) emitStruct(id ast.StmtID, data *ast.StmtStructData) {
	name := rustIdent(g.name(data.Name))
	sym := g.res.Table.Symbols.Get(g.res.StmtSymbols[id])
	g.w.Line("#[derive(Debug, Clone, PartialEq)]")
	if len(data.Fields) == 0 {
		g.w.Line("pub struct " + name + ";")
	} else {
		g.w.Line("pub struct " + name + " {")
		g.w.IndentPush()
		var info *types.StructInfo
		if sym != nil {
			info, _ = g.types.StructInfo(sym.Type)
		}
		for i, f := range data.Fields {
			typ := fallbackType
			if info != nil && i < len(info.Fields) {
				typ, _ = rustTypeOf(g.types, info.Fields[i].Type, true)
			}
			g.w.Line("pub " + rustIdent(g.name(f.Name)) + ": " + typ + ",")
		}
		g.w.IndentPop()
		g.w.Line("}")
	}
	if len(data.Methods) == 0 {
		return
	}
	g.w.Newline()
	g.w.Line("impl " + name + " {")
	g.w.IndentPush()
	for i, mid := range data.Methods {
		if i > 0 {
			g.w.Newline()
		}
		if fn, ok := g.builder.Stmts.Fn(mid); ok {
			g.emitFn(mid, fn)
		}
	}
	g.w.IndentPop()
	g.w.Line("}")
}

func (g *generator) emitEnum(data *ast.StmtEnumData) {
	g.w.Line("#[derive(Debug, Clone, Copy, PartialEq, Eq, Hash)]")
	g.w.Line("pub enum " + rustIdent(g.name(data.Name)) + " {")
	g.w.IndentPush()
	for _, v := range data.Variants {
		g.w.Line(rustIdent(g.name(v.Name)) + ",")
	}
	g.w.IndentPop()
	g.w.Line("}")
}

// emitImport maps an import onto the runtime support crate.
func (g *generator) emitImport(data *ast.StmtImportData) {
	parts := make([]string, len(data.Path))
	for i, p := range data.Path {
		parts[i] = rustIdent(g.name(p))
	}
	path := RuntimeCrate + "::" + strings.Join(parts, "::")
	if !data.Grouped {
		g.w.Line("use " + path + ";")
		return
	}
	names := make([]string, len(data.Names))
	for i, n := range data.Names {
		names[i] = rustIdent(g.name(n))
	}
	g.w.Line("use " + path + "::{" + joinComma(names) + "};")
}

// emitForeign passes @rust bodies through and wraps other languages in the
// runtime foreign! macro. Every block is also recorded for the driver.
func (g *generator) emitForeign(data *ast.StmtForeignData) {
	tag := g.name(data.Tag)
	body := g.name(data.Body)
	g.foreign = append(g.foreign, ForeignBlock{Tag: tag, Body: body, Span: data.BodySpan})
	if tag == "rust" {
		g.w.Line("// @rust begin")
		g.w.Verbatim(dedentLines(body))
		g.w.Line("// @rust end")
		return
	}
	g.w.Line(RuntimeCrate + "::foreign!(" + rustQuote(tag) + ", " + rawString(body) + ");")
}

// dedentLines splits body into lines and strips their common indentation.
func dedentLines(body string) []string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		if common > 0 {
			lines[i] = l[common:]
		}
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}
