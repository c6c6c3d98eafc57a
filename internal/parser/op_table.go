package parser

import (
	"gul/internal/ast"
	"gul/internal/token"
)

// Precedence levels, lowest first. Higher binds tighter.
//
// Assignment sits at the bottom of the table but is a statement here:
// parseSimpleStmt takes the target expression and handles '=' and the
// compound forms itself, so the expression parser never consumes them.
// Unary and postfix levels are handled by parseUnaryExpr/parsePostfixExpr.
const (
	precAssignment     = 1  // = += -= *= /= %=
	precLogicalOr      = 2  // || or
	precLogicalAnd     = 3  // && and
	precEquality       = 4  // == !=
	precComparison     = 5  // < <= > >= in
	precRange          = 6  // .. ..=
	precAdditive       = 7  // + -
	precMultiplicative = 8  // * / %
	precPower          = 9  // ** ^ (right-associative)
	precUnary          = 10 // - + ! not await
	precPostfix        = 11 // call, index, member
)

// getBinaryOperatorPrec returns the precedence of an infix operator and
// whether it associates to the right. -1 means "not a binary operator".
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.OrOr, token.KwOr:
		return precLogicalOr, false
	case token.AndAnd, token.KwAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwIn:
		return precComparison, false
	case token.DotDot, token.DotDotEq:
		return precRange, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.StarStar, token.Caret:
		return precPower, true
	default:
		return -1, false
	}
}

func tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Percent:
		return ast.ExprBinaryMod
	case token.StarStar, token.Caret:
		return ast.ExprBinaryPow
	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNe
	case token.Lt:
		return ast.ExprBinaryLt
	case token.LtEq:
		return ast.ExprBinaryLe
	case token.Gt:
		return ast.ExprBinaryGt
	case token.GtEq:
		return ast.ExprBinaryGe
	case token.KwIn:
		return ast.ExprBinaryIn
	case token.AndAnd, token.KwAnd:
		return ast.ExprBinaryAnd
	case token.OrOr, token.KwOr:
		return ast.ExprBinaryOr
	case token.DotDot:
		return ast.ExprBinaryRange
	case token.DotDotEq:
		return ast.ExprBinaryRangeInclusive
	}
	panic("parser: no binary operator for " + kind.String())
}

func getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryNeg, true
	case token.Plus:
		return ast.ExprUnaryPlus, true
	case token.Bang, token.KwNot:
		return ast.ExprUnaryNot, true
	}
	return 0, false
}

func assignOp(kind token.Kind) (ast.AssignOp, bool) {
	switch kind {
	case token.Assign:
		return ast.AssignSet, true
	case token.PlusAssign:
		return ast.AssignAdd, true
	case token.MinusAssign:
		return ast.AssignSub, true
	case token.StarAssign:
		return ast.AssignMul, true
	case token.SlashAssign:
		return ast.AssignDiv, true
	case token.PercentAssign:
		return ast.AssignMod, true
	}
	return 0, false
}
