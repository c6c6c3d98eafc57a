package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.gul", []byte("let x = 1"), 0)
	id2 := fs.Add("main.gul", []byte("let x = 2"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.gul")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "let x = 1" {
		t.Errorf("old version content = %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.gul", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // the newline itself
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		got := fs.Position(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.gul", []byte("first\nsecond\nthird")))

	for i, want := range []string{"first", "second", "third", ""} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d = %q, want %q", i+1, got, want)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 = %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.gul")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFlet a = 1\r\nlet b = 2\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "let a = 1\nlet b = 2\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.gul", []byte("let value = 42"))
	if got := fs.Slice(Span{File: id, Start: 4, End: 9}); got != "value" {
		t.Errorf("Slice = %q", got)
	}
	if got := fs.Slice(Span{File: id, Start: 12, End: 99}); got != "42" {
		t.Errorf("clamped Slice = %q", got)
	}
}
