package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gul/internal/ast"
	"gul/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string, children ...*treeNode) *treeNode {
	child := &treeNode{label: label, children: children}
	n.children = append(n.children, child)
	return child
}

// FormatASTPretty prints the statements of a file as an indented tree.
// Expressions are rendered inline in source-like form.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root := buildFileTreeNode(builder, fileID, fs)
	var b strings.Builder
	b.WriteString(root.label)
	b.WriteByte('\n')
	writeTree(&b, root.children, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, nodes []*treeNode, prefix string) {
	for i, node := range nodes {
		marker, childPrefix := "├─ ", prefix+"│  "
		if i == len(nodes)-1 {
			marker, childPrefix = "└─ ", prefix+"   "
		}
		b.WriteString(prefix)
		b.WriteString(marker)
		b.WriteString(node.label)
		b.WriteByte('\n')
		writeTree(b, node.children, childPrefix)
	}
}

func buildFileTreeNode(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) *treeNode {
	file := builder.Files.Get(fileID)
	if file == nil {
		return &treeNode{label: fmt.Sprintf("File[%d]: <nil>", fileID)}
	}
	header := "File"
	if f := fileOf(fs, file.Span); f != nil {
		header = f.FormatPath("auto", fs.BaseDir())
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(file.Span, fs))}
	for _, stmtID := range file.Stmts {
		root.children = append(root.children, buildStmtNode(builder, stmtID, fs))
	}
	return root
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fileOf(fs, span) == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func bodyNode(builder *ast.Builder, label string, body []ast.StmtID, fs *source.FileSet) *treeNode {
	node := &treeNode{label: label}
	for _, id := range body {
		node.children = append(node.children, buildStmtNode(builder, id, fs))
	}
	return node
}

func buildStmtNode(builder *ast.Builder, stmtID ast.StmtID, fs *source.FileSet) *treeNode {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return &treeNode{label: "<nil>"}
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", stmt.Kind, formatSpan(stmt.Span, fs))}
	name := builder.Name

	switch stmt.Kind {
	case ast.StmtLet:
		data, _ := builder.Stmts.Let(stmtID)
		node.add("Name: " + name(data.Name))
		node.add(fmt.Sprintf("Mutable: %v", data.Mutable))
		if data.Type.IsValid() {
			node.add("Type: " + typeInline(builder, data.Type))
		}
		node.add("Value: " + exprInline(builder, data.Value))

	case ast.StmtFn:
		data, _ := builder.Stmts.Fn(stmtID)
		node.add("Name: " + name(data.Name))
		if data.Async {
			node.add("Async: true")
		}
		node.add("Params: (" + paramsInline(builder, data.Params) + ")")
		if data.Return.IsValid() {
			node.add("Return: " + typeInline(builder, data.Return))
		}
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))

	case ast.StmtStruct:
		data, _ := builder.Stmts.Struct(stmtID)
		node.add("Name: " + name(data.Name))
		fields := node.add("Fields")
		for _, f := range data.Fields {
			fields.add(name(f.Name) + ": " + typeInline(builder, f.Type))
		}
		if len(data.Methods) > 0 {
			node.children = append(node.children, bodyNode(builder, "Methods", data.Methods, fs))
		}

	case ast.StmtEnum:
		data, _ := builder.Stmts.Enum(stmtID)
		node.add("Name: " + name(data.Name))
		variants := make([]string, 0, len(data.Variants))
		for _, v := range data.Variants {
			variants = append(variants, name(v.Name))
		}
		node.add("Variants: " + strings.Join(variants, ", "))

	case ast.StmtIf:
		data, _ := builder.Stmts.If(stmtID)
		for i, br := range data.Branches {
			label := "If"
			if i > 0 {
				label = "Elif"
			}
			branch := bodyNode(builder, "Body", br.Body, fs)
			node.add(label+": "+exprInline(builder, br.Cond), branch)
		}
		if data.HasElse {
			node.children = append(node.children, bodyNode(builder, "Else", data.Else, fs))
		}

	case ast.StmtWhile:
		data, _ := builder.Stmts.While(stmtID)
		node.add("Cond: " + exprInline(builder, data.Cond))
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))

	case ast.StmtFor:
		data, _ := builder.Stmts.For(stmtID)
		node.add("Var: " + name(data.Var))
		node.add("Iter: " + exprInline(builder, data.Iter))
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))

	case ast.StmtLoop:
		data, _ := builder.Stmts.Loop(stmtID)
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))

	case ast.StmtMatch:
		data, _ := builder.Stmts.Match(stmtID)
		node.children = append(node.children, matchNode(builder, data.Match, fs))

	case ast.StmtReturn:
		data, _ := builder.Stmts.Return(stmtID)
		if data.Value.IsValid() {
			node.add("Value: " + exprInline(builder, data.Value))
		}

	case ast.StmtImport:
		data, _ := builder.Stmts.Import(stmtID)
		parts := make([]string, 0, len(data.Path))
		for _, p := range data.Path {
			parts = append(parts, name(p))
		}
		node.add("Path: " + strings.Join(parts, "."))
		if data.Grouped {
			names := make([]string, 0, len(data.Names))
			for _, n := range data.Names {
				names = append(names, name(n))
			}
			node.add("Names: " + strings.Join(names, ", "))
		}

	case ast.StmtAssign:
		data, _ := builder.Stmts.Assign(stmtID)
		node.add(fmt.Sprintf("%s %s %s", exprInline(builder, data.Target), data.Op, exprInline(builder, data.Value)))

	case ast.StmtExpr:
		data, _ := builder.Stmts.Expr(stmtID)
		if expr := builder.Exprs.Get(data.Expr); expr != nil && expr.Kind == ast.ExprMatch {
			node.children = append(node.children, matchNode(builder, data.Expr, fs))
			break
		}
		node.add("Expr: " + exprInline(builder, data.Expr))

	case ast.StmtTry:
		data, _ := builder.Stmts.Try(stmtID)
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))
		for _, c := range data.Catches {
			label := "Catch"
			if c.Name != source.NoStringID {
				label += " " + name(c.Name)
			}
			node.children = append(node.children, bodyNode(builder, label, c.Body, fs))
		}
		if data.HasFinally {
			node.children = append(node.children, bodyNode(builder, "Finally", data.Finally, fs))
		}

	case ast.StmtForeign:
		data, _ := builder.Stmts.Foreign(stmtID)
		node.add("Tag: " + name(data.Tag))
		node.add("Body: " + strconv.Quote(name(data.Body)))

	case ast.StmtEntry:
		data, _ := builder.Stmts.Entry(stmtID)
		node.children = append(node.children, bodyNode(builder, "Body", data.Body, fs))
	}
	return node
}

func matchNode(builder *ast.Builder, matchID ast.ExprID, fs *source.FileSet) *treeNode {
	data, ok := builder.Exprs.Match(matchID)
	if !ok {
		return &treeNode{label: "Match: <bad>"}
	}
	node := &treeNode{label: "Match: " + exprInline(builder, data.Scrutinee)}
	for _, arm := range data.Arms {
		label := "Arm: " + patternInline(builder, arm.Pattern)
		if arm.Guard.IsValid() {
			label += " if " + exprInline(builder, arm.Guard)
		}
		if arm.IsBlock {
			node.children = append(node.children, bodyNode(builder, label, arm.Block, fs))
			continue
		}
		node.add(label + " => " + exprInline(builder, arm.Value))
	}
	return node
}

func paramsInline(builder *ast.Builder, params []ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var sb strings.Builder
		if p.Mode != ast.OwnNone {
			sb.WriteString(p.Mode.String())
			sb.WriteByte(' ')
		}
		sb.WriteString(builder.Name(p.Name))
		if p.Type.IsValid() {
			sb.WriteString(": ")
			sb.WriteString(typeInline(builder, p.Type))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

func typeInline(builder *ast.Builder, id ast.TypeExprID) string {
	t := builder.Types.Get(id)
	if t == nil || t.Kind == ast.TypeExprBad {
		return "<bad>"
	}
	if t.Kind == ast.TypeExprName {
		return builder.Name(t.Name)
	}
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, typeInline(builder, a))
	}
	return builder.Name(t.Name) + "[" + strings.Join(args, ", ") + "]"
}

func patternInline(builder *ast.Builder, id ast.PatternID) string {
	p := builder.Patterns.Get(id)
	if p == nil {
		return "<bad>"
	}
	switch p.Kind {
	case ast.PatWildcard:
		return "_"
	case ast.PatBind:
		return builder.Name(p.Name)
	case ast.PatLiteral:
		return exprInline(builder, p.Literal)
	case ast.PatVariant:
		return builder.Name(p.Enum) + "." + builder.Name(p.Name)
	}
	return "<bad>"
}

func exprList(builder *ast.Builder, ids []ast.ExprID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, exprInline(builder, id))
	}
	return strings.Join(parts, ", ")
}

func entriesInline(builder *ast.Builder, entries []ast.DictEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, exprInline(builder, e.Key)+": "+exprInline(builder, e.Value))
	}
	return strings.Join(parts, ", ")
}

// exprInline renders an expression close to how it was written. Binary
// operations are fully parenthesized so the tree shows precedence.
func exprInline(builder *ast.Builder, id ast.ExprID) string {
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return "<none>"
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := builder.Exprs.Ident(id)
		return builder.Name(data.Name)
	case ast.ExprLit:
		data, _ := builder.Exprs.Literal(id)
		return builder.Name(data.Raw)
	case ast.ExprBinary:
		data, _ := builder.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", exprInline(builder, data.Left), data.Op, exprInline(builder, data.Right))
	case ast.ExprUnary:
		data, _ := builder.Exprs.Unary(id)
		if data.Op == ast.ExprUnaryNot {
			return "not " + exprInline(builder, data.Operand)
		}
		return data.Op.String() + exprInline(builder, data.Operand)
	case ast.ExprCall:
		data, _ := builder.Exprs.Call(id)
		return exprInline(builder, data.Callee) + "(" + exprList(builder, data.Args) + ")"
	case ast.ExprIndex:
		data, _ := builder.Exprs.Index(id)
		return exprInline(builder, data.Target) + "[" + exprInline(builder, data.Index) + "]"
	case ast.ExprMember:
		data, _ := builder.Exprs.Member(id)
		return exprInline(builder, data.Target) + "." + builder.Name(data.Name)
	case ast.ExprLambda:
		data, _ := builder.Exprs.Lambda(id)
		return "fn(" + paramsInline(builder, data.Params) + ") => " + exprInline(builder, data.Body)
	case ast.ExprMatch:
		data, _ := builder.Exprs.Match(id)
		return fmt.Sprintf("match %s {%d arms}", exprInline(builder, data.Scrutinee), len(data.Arms))
	case ast.ExprTypeCtor:
		data, _ := builder.Exprs.TypeCtor(id)
		if data.Ctor == ast.TypeCtorDict {
			return "@dict{" + entriesInline(builder, data.Entries) + "}"
		}
		return "@" + data.Ctor.String() + "(" + exprList(builder, data.Args) + ")"
	case ast.ExprList:
		data, _ := builder.Exprs.Seq(id)
		return "[" + exprList(builder, data.Elems) + "]"
	case ast.ExprTuple:
		data, _ := builder.Exprs.Seq(id)
		if len(data.Elems) == 1 {
			return "(" + exprInline(builder, data.Elems[0]) + ",)"
		}
		return "(" + exprList(builder, data.Elems) + ")"
	case ast.ExprSet:
		data, _ := builder.Exprs.Seq(id)
		return "{" + exprList(builder, data.Elems) + "}"
	case ast.ExprDict:
		data, _ := builder.Exprs.Dict(id)
		return "{" + entriesInline(builder, data.Entries) + "}"
	case ast.ExprGroup:
		data, _ := builder.Exprs.Group(id)
		return exprInline(builder, data.Inner)
	case ast.ExprAwait:
		data, _ := builder.Exprs.Await(id)
		return "await " + exprInline(builder, data.Value)
	}
	return "<bad>"
}
