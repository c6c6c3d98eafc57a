package ast

import (
	"gul/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns every arena of a compilation plus the name interner. One
// Builder serves one file pipeline; it is not safe for concurrent use.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	Types           *TypeExprs
	Patterns        *Patterns
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypeExprs(hints.Stmts / 4),
		Patterns:        NewPatterns(hints.Stmts / 8),
		StringsInterner: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}

// Name returns the interned string or "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
