package codegen

import (
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/types"
)

// Rust binding strengths, loosest first.
const (
	precRange = iota + 1
	precOr
	precAnd
	precCompare
	precAdd
	precMul
	precCast
	precUnary
	precPostfix
)

func rustPrec(op ast.ExprBinaryOp) int {
	switch op {
	case ast.ExprBinaryMul, ast.ExprBinaryDiv, ast.ExprBinaryMod:
		return precMul
	case ast.ExprBinaryAdd, ast.ExprBinarySub:
		return precAdd
	case ast.ExprBinaryAnd:
		return precAnd
	case ast.ExprBinaryOr:
		return precOr
	case ast.ExprBinaryRange, ast.ExprBinaryRangeInclusive:
		return precRange
	default:
		return precCompare
	}
}

// precOf returns how tightly the rendering text of id binds.
func (g *generator) precOf(id ast.ExprID, text string) int {
	e := g.builder.Exprs.Get(id)
	if e == nil {
		return precPostfix
	}
	switch e.Kind {
	case ast.ExprIdent:
		// Reference parameters read through a deref.
		if strings.HasPrefix(text, "*") {
			return precUnary
		}
	case ast.ExprBinary:
		data, _ := g.builder.Exprs.Binary(id)
		if g.binaryAsCall(data) {
			return precPostfix
		}
		return rustPrec(data.Op)
	case ast.ExprUnary:
		return precUnary
	case ast.ExprLambda:
		return precRange - 1
	case ast.ExprCall:
		if g.isBuiltinCall(id, "range") {
			return precRange
		}
	}
	return precPostfix
}

// operand renders id as an operand of a construct with binding strength
// prec. right marks the right-hand side of a left-associative operator.
func (g *generator) operand(id ast.ExprID, prec int, right bool) string {
	text := g.expr(id)
	return g.paren(id, text, prec, right)
}

func (g *generator) paren(id ast.ExprID, text string, prec int, right bool) string {
	return parenPrec(text, g.precOf(id, text), prec, right)
}

func parenPrec(text string, child, prec int, right bool) string {
	if child < prec || (child == prec && (right || prec == precCompare || prec == precRange)) {
		return "(" + text + ")"
	}
	return text
}

// binaryAsCall reports operators rendered as a method call or macro.
func (g *generator) binaryAsCall(data *ast.ExprBinaryData) bool {
	switch data.Op {
	case ast.ExprBinaryPow, ast.ExprBinaryIn:
		return true
	case ast.ExprBinaryAdd:
		switch g.kindOf(data.Left) {
		case types.KindString, types.KindList:
			return true
		}
	case ast.ExprBinaryMul:
		return g.kindOf(data.Left) == types.KindString
	}
	return false
}

func (g *generator) binaryExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.Binary(id)
	lt, rt := g.typeOf(data.Left), g.typeOf(data.Right)
	lk, rk := g.types.KindOf(lt), g.types.KindOf(rt)

	switch data.Op {
	case ast.ExprBinaryPow:
		return g.powExpr(data, lk, rk)
	case ast.ExprBinaryIn:
		return g.containsExpr(id, data, rk)
	case ast.ExprBinaryAdd:
		if lk == types.KindString {
			return "format!(\"{}{}\", " + g.expr(data.Left) + ", " + g.expr(data.Right) + ")"
		}
		if lk == types.KindList {
			return "[" + g.valueExpr(data.Left) + ", " + g.valueExpr(data.Right) + "].concat()"
		}
	case ast.ExprBinaryMul:
		if lk == types.KindString {
			return g.operand(data.Left, precPostfix, false) + ".repeat(" + g.usize(data.Right) + ")"
		}
	}

	prec := rustPrec(data.Op)
	var left, right string
	// Mixed arithmetic widens the int side.
	if lk == types.KindInt && rk == types.KindFloat {
		left = g.widened(data.Left, prec, false)
	} else {
		left = g.operand(data.Left, prec, false)
	}
	if lk == types.KindFloat && rk == types.KindInt {
		right = g.widened(data.Right, prec, true)
	} else {
		right = g.operand(data.Right, prec, true)
	}
	return left + " " + data.Op.String() + " " + right
}

// widened renders an int operand converted to f64.
func (g *generator) widened(id ast.ExprID, prec int, right bool) string {
	text := g.coerce(g.expr(id), g.typeOf(id), g.types.Builtins().Float)
	if strings.HasSuffix(text, " as f64") {
		return parenPrec(text, precCast, prec, right)
	}
	return text
}

// powExpr uses the associated-function form so untyped integer and float
// bindings still resolve to i64 and f64.
func (g *generator) powExpr(data *ast.ExprBinaryData, lk, rk types.Kind) string {
	if lk == types.KindInt && rk == types.KindInt {
		return "i64::pow(" + g.expr(data.Left) + ", " + g.operand(data.Right, precCast, false) + " as u32)"
	}
	float := g.types.Builtins().Float
	base := g.coerce(g.expr(data.Left), g.typeOf(data.Left), float)
	exp := g.coerce(g.expr(data.Right), g.typeOf(data.Right), float)
	return "f64::powf(" + base + ", " + exp + ")"
}

func (g *generator) containsExpr(id ast.ExprID, data *ast.ExprBinaryData, rk types.Kind) string {
	container := g.operand(data.Right, precPostfix, false)
	needle := g.operand(data.Left, precUnary, false)
	switch rk {
	case types.KindList, types.KindSet:
		return container + ".contains(&" + needle + ")"
	case types.KindDict:
		return container + ".contains_key(&" + needle + ")"
	case types.KindString:
		return container + ".contains(" + g.operand(data.Left, precPostfix, false) + ".as_str())"
	case types.KindRange:
		return container + ".contains(&" + needle + ")"
	}
	g.warn(diag.GenApproximation, g.exprSpan(id), "membership test on a value of unknown type")
	return container + ".contains(&" + needle + ")"
}
