package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexBadNumber           Code = 1003
	LexBadEscape           Code = 1004
	LexInconsistentIndent  Code = 1005
	LexUnknownAnnotation   Code = 1006
	LexUnterminatedForeign Code = 1007

	// Syntax
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectExpression    Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectColon         Code = 2004
	SynExpectBlock         Code = 2005
	SynUnclosedParen       Code = 2006
	SynUnclosedBracket     Code = 2007
	SynUnclosedBrace       Code = 2008
	SynExpectNewline       Code = 2009
	SynInvalidAssignTarget Code = 2010
	SynBadImport           Code = 2011
	SynBadPattern          Code = 2012
	SynTryWithoutHandler   Code = 2013
	SynExpectFatArrow      Code = 2014
	SynDanglingClause      Code = 2015
	SynExpectType          Code = 2016
	SynForMissingIn        Code = 2017
	SynDuplicateEntry      Code = 2018
	SynNestingTooDeep      Code = 2019

	// Semantic
	SemaInfo              Code = 3000
	SemaUndefinedName     Code = 3001
	SemaTypeMismatch      Code = 3002
	SemaImmutableAssign   Code = 3003
	SemaUseAfterMove      Code = 3004
	SemaArityMismatch     Code = 3005
	SemaBorrowReassign    Code = 3006
	SemaRefOfImmutable    Code = 3007
	SemaNotCallable       Code = 3008
	SemaUnknownType       Code = 3009
	SemaDuplicateDecl     Code = 3010
	SemaBreakOutsideLoop  Code = 3011
	SemaReturnOutsideFn   Code = 3012
	SemaAwaitOutsideAsync Code = 3013
	SemaUnknownMember     Code = 3014
	SemaInvalidOperand    Code = 3015
	SemaDuplicateMember   Code = 3016

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Project configuration
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Code generation (warnings only)
	GenInfo              Code = 7000
	GenUnmappedConstruct Code = 7001
	GenApproximation     Code = 7002
	GenUntypedParam      Code = 7003
	GenModuleCapture     Code = 7004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexUnknownChar:         "Unknown character",
		LexUnterminatedString:  "Unterminated string",
		LexBadNumber:           "Bad number",
		LexBadEscape:           "Bad escape sequence",
		LexInconsistentIndent:  "Inconsistent indentation",
		LexUnknownAnnotation:   "Unknown annotation",
		LexUnterminatedForeign: "Unterminated foreign block",
		SynInfo:                "Syntax information",
		SynUnexpectedToken:     "Unexpected token",
		SynExpectExpression:    "Expected expression",
		SynExpectIdentifier:    "Expected identifier",
		SynExpectColon:         "Expected ':'",
		SynExpectBlock:         "Expected indented block",
		SynUnclosedParen:       "Unclosed parenthesis",
		SynUnclosedBracket:     "Unclosed bracket",
		SynUnclosedBrace:       "Unclosed brace",
		SynExpectNewline:       "Expected end of line",
		SynInvalidAssignTarget: "Invalid assignment target",
		SynBadImport:           "Malformed import",
		SynBadPattern:          "Malformed match pattern",
		SynTryWithoutHandler:   "Try without catch or finally",
		SynExpectFatArrow:      "Expected '=>'",
		SynDanglingClause:      "Clause without opening statement",
		SynExpectType:          "Expected type",
		SynForMissingIn:        "Missing 'in' in for loop",
		SynDuplicateEntry:      "Duplicate entry",
		SynNestingTooDeep:      "Nesting too deep",
		SemaInfo:               "Semantic information",
		SemaUndefinedName:      "Undefined name",
		SemaTypeMismatch:       "Type mismatch",
		SemaImmutableAssign:    "Assignment to immutable binding",
		SemaUseAfterMove:       "Use after move",
		SemaArityMismatch:      "Wrong number of arguments",
		SemaBorrowReassign:     "Borrowed parameter reassigned",
		SemaRefOfImmutable:     "Mutable reference to immutable binding",
		SemaNotCallable:        "Value is not callable",
		SemaUnknownType:        "Unknown type",
		SemaDuplicateDecl:      "Duplicate declaration",
		SemaBreakOutsideLoop:   "Loop control outside loop",
		SemaReturnOutsideFn:    "Return outside function",
		SemaAwaitOutsideAsync:  "Await outside async function",
		SemaUnknownMember:      "Unknown member",
		SemaInvalidOperand:     "Invalid operand",
		SemaDuplicateMember:    "Duplicate member",
		IOLoadFileError:        "I/O load file error",
		IOWriteFileError:       "I/O write file error",
		ProjInfo:               "Project information",
		ProjManifestInvalid:    "Invalid project manifest",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
		GenInfo:                "Generation information",
		GenUnmappedConstruct:   "Construct without direct mapping",
		GenApproximation:       "Approximate translation",
		GenUntypedParam:        "Untyped parameter",
		GenModuleCapture:       "Module binding used from function",
	}
)

// ID renders the stable identifier, e.g. "SEM3004".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
