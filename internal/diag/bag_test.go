package diag

import (
	"testing"

	"gul/internal/source"
)

func TestBagLimitAndCounts(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SemaUndefinedName, source.Span{}, "a")) {
		t.Fatal("first add rejected")
	}
	b.Add(New(SevWarning, GenApproximation, source.Span{}, "b"))
	if b.Add(NewError(SemaTypeMismatch, source.Span{}, "c")) {
		t.Fatal("add over limit accepted")
	}
	if b.ErrorCount() != 1 || b.WarningCount() != 1 {
		t.Fatalf("counts = %d errors, %d warnings", b.ErrorCount(), b.WarningCount())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("HasErrors/HasWarnings disagree with counts")
	}
}

func TestBagRemembersDroppedErrors(t *testing.T) {
	b := NewBag(1)
	b.Add(New(SevWarning, GenApproximation, source.Span{}, "w"))
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "e")) {
		t.Fatal("add over limit accepted")
	}
	if b.ErrorCount() != 0 || !b.HasErrors() || b.Dropped() != 1 {
		t.Fatalf("errors = %d, has = %v, dropped = %d", b.ErrorCount(), b.HasErrors(), b.Dropped())
	}
	merged := NewBag(0)
	merged.Merge(b)
	if !merged.HasErrors() {
		t.Fatal("merge lost the dropped error")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 10, End: 11}, "late"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 2, End: 3}, "early"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 2, End: 3}, "early again"))
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Errorf("order = %q, %q", items[0].Message, items[1].Message)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexInconsistentIndent: "LEX1005",
		SynUnexpectedToken:    "SYN2001",
		SemaUseAfterMove:      "SEM3004",
		GenApproximation:      "GEN7002",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if SemaImmutableAssign.Title() == UnknownCode.Title() {
		t.Error("SemaImmutableAssign has no title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	rb := ReportError(BagReporter{Bag: bag}, SemaUseAfterMove, source.Span{Start: 5, End: 6}, "use of moved value 'x'").
		WithNote(source.Span{Start: 1, End: 2}, "moved here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("len = %d, want 1", bag.Len())
	}
	if n := len(bag.Items()[0].Notes); n != 1 {
		t.Errorf("notes = %d", n)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(SemaUndefinedName, SevError, source.Span{Start: 1, End: 2}, "undefined name 'y'", nil, nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("len = %d, want 1", bag.Len())
	}
}
