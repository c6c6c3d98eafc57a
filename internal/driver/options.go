// Package driver runs the compiler pipeline over files and directories.
//
// Each file goes through lex, parse, analyze and generate with its own
// arenas and diagnostic bag, so files can be compiled in parallel. Rust is
// generated only for files whose analysis reported no errors.
package driver

import (
	"go.uber.org/zap"
)

// Stage selects how far the pipeline runs.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageSyntax   Stage = "syntax"
	StageSema     Stage = "sema"
	// StageAll also generates Rust.
	StageAll Stage = "all"
)

// Options configure a compilation.
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	// Jobs bounds parallel file pipelines; <= 0 means GOMAXPROCS.
	Jobs          int
	EnableTimings bool
	// CrateName overrides the crate named in generated headers.
	CrateName string
	Logger    *zap.Logger
	Observer  PhaseObserver
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) stage() Stage {
	if o.Stage == "" {
		return StageAll
	}
	return o.Stage
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
