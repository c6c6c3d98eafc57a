package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 2, 4}, Span{1, 8, 10}, Span{1, 2, 10}},
		{"nested", Span{1, 2, 10}, Span{1, 4, 5}, Span{1, 2, 10}},
		{"other file", Span{1, 2, 4}, Span{2, 0, 10}, Span{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("alpha")
	b := in.Intern("beta")
	if a == b || a == NoStringID {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("alpha"); again != a {
		t.Errorf("re-intern = %d, want %d", again, a)
	}
	if s := in.MustLookup(b); s != "beta" {
		t.Errorf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("lookup of unknown id succeeded")
	}
}
