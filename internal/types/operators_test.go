package types

import (
	"testing"

	"gul/internal/ast"
)

func TestBinaryRulesLogicalAnd(t *testing.T) {
	specs := BinaryRules(ast.ExprBinaryAnd)
	if len(specs) != 1 {
		t.Fatalf("expected single spec for logical and")
	}
	spec := specs[0]
	if spec.Left&FamilyBool == 0 || spec.Right&FamilyBool == 0 {
		t.Fatalf("logical and expects bool operands, got %+v", spec)
	}
	if spec.Result != BinaryResultBool || spec.Flags&BinaryFlagShortCircuit == 0 {
		t.Fatalf("expected short-circuit bool result, got %+v", spec)
	}
}

func TestBinaryType(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	cases := []struct {
		name        string
		op          ast.ExprBinaryOp
		left, right TypeID
		want        TypeID
		ok          bool
	}{
		{"int+int", ast.ExprBinaryAdd, b.Int, b.Int, b.Int, true},
		{"int+float promotes", ast.ExprBinaryAdd, b.Int, b.Float, b.Float, true},
		{"str+str", ast.ExprBinaryAdd, b.String, b.String, b.String, true},
		{"str*int", ast.ExprBinaryMul, b.String, b.Int, b.String, true},
		{"str-int", ast.ExprBinarySub, b.String, b.Int, b.Any, false},
		{"int+str", ast.ExprBinaryAdd, b.Int, b.String, b.Any, false},
		{"int<float", ast.ExprBinaryLt, b.Int, b.Float, b.Bool, true},
		{"str<str", ast.ExprBinaryLt, b.String, b.String, b.Bool, true},
		{"int==str", ast.ExprBinaryEq, b.Int, b.String, b.Bool, false},
		{"int==float", ast.ExprBinaryEq, b.Int, b.Float, b.Bool, true},
		{"bool and int", ast.ExprBinaryAnd, b.Bool, b.Int, b.Bool, false},
		{"any+int", ast.ExprBinaryAdd, b.Any, b.Int, b.Any, true},
		{"int in list", ast.ExprBinaryIn, b.Int, in.List(b.Int), b.Bool, true},
		{"int in int", ast.ExprBinaryIn, b.Int, b.Int, b.Bool, false},
		{"range", ast.ExprBinaryRange, b.Int, b.Int, in.Range(b.Int), true},
		{"float range", ast.ExprBinaryRangeInclusive, b.Float, b.Int, in.Range(b.Int), false},
		{"int**int", ast.ExprBinaryPow, b.Int, b.Int, b.Int, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := in.BinaryType(tc.op, tc.left, tc.right)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("BinaryType = (%s, %v), want (%s, %v)", Label(in, got), ok, Label(in, tc.want), tc.ok)
			}
		})
	}
}

func TestUnaryType(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if got, ok := in.UnaryType(ast.ExprUnaryNeg, b.Float); !ok || got != b.Float {
		t.Fatalf("-float = %s, %v", Label(in, got), ok)
	}
	if _, ok := in.UnaryType(ast.ExprUnaryNeg, b.String); ok {
		t.Fatalf("-str must be rejected")
	}
	if got, ok := in.UnaryType(ast.ExprUnaryNot, b.Bool); !ok || got != b.Bool {
		t.Fatalf("!bool = %s, %v", Label(in, got), ok)
	}
}
