package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"let":    KwLet,
		"var":    KwVar,
		"elif":   KwElif,
		"mn":     KwMn,
		"borrow": KwBorrow,
		"kept":   KwKept,
		"and":    KwAnd,
		"true":   KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// type names stay identifiers, case matters
	for _, s := range []string{"Let", "VAR", "int", "str", "print", "self"} {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", s, k)
		}
	}
}

func TestAnnotations(t *testing.T) {
	k, ok := LookupAnnotation("dict")
	if !ok || k != AtDict || !k.IsTypeCtor() {
		t.Fatalf("@dict -> %v,%v", k, ok)
	}
	k, ok = LookupAnnotation("python")
	if !ok || !k.IsForeign() {
		t.Fatalf("@python -> %v,%v", k, ok)
	}
	if tag := ForeignTag(AtSQL); tag != "sql" {
		t.Errorf("ForeignTag(AtSQL) = %q", tag)
	}
	if tag := ForeignTag(AtInt); tag != "" {
		t.Errorf("ForeignTag(AtInt) = %q, want empty", tag)
	}
	if _, ok := LookupAnnotation("nope"); ok {
		t.Error("unknown annotation accepted")
	}
}

func TestKindString(t *testing.T) {
	for k := Invalid; k <= Dot; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if !PercentAssign.IsAssign() || Arrow.IsAssign() {
		t.Error("IsAssign range is wrong")
	}
}
