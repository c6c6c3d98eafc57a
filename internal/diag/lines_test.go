package diag

import (
	"testing"

	"gul/internal/source"
)

func TestLinesSortsAndFlattensNotes(t *testing.T) {
	span := func(start uint32) source.Span { return source.Span{File: 1, Start: start, End: start + 1} }
	d := NewError(SemaImmutableAssign, span(10), "cannot assign to immutable binding 'x'").
		WithNote(span(4), "declared here")
	w := New(SevWarning, GenApproximation, span(0), "approx\r\nline ")
	load := New(SevError, IOLoadFileError, source.Span{}, "missing.gul: not found")

	got := Lines([]*Diagnostic{d, w, load}, true)
	want := []Line{
		{Label: "error", Code: IOLoadFileError, Span: source.Span{}, Message: "missing.gul: not found"},
		{Label: "warning", Code: GenApproximation, Span: span(0), Message: "approx line"},
		{Label: "note", Code: SemaImmutableAssign, Span: span(4), Message: "declared here"},
		{Label: "error", Code: SemaImmutableAssign, Span: span(10), Message: "cannot assign to immutable binding 'x'"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if n := len(Lines([]*Diagnostic{d, w}, false)); n != 2 {
		t.Fatalf("without notes got %d lines", n)
	}
}
