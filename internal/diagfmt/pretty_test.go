package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"gul/internal/diag"
	"gul/internal/source"
)

func unterminated(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	content := []byte("let a = 1\nlet x = \"unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.gul", content)

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 18, End: 31}, "unterminated string literal")
	d.WithNote(source.Span{File: fileID, Start: 4, End: 5}, "previous binding here")
	d.WithFix("close the string", diag.FixEdit{Span: source.Span{File: fileID, Start: 31, End: 31}, NewText: "\""})
	bag.Add(d)
	return fs, bag
}

func TestPathModes(t *testing.T) {
	fs, bag := unterminated(t)
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.gul:2:9: "},
		{"relative", PathModeRelative, "src/test.gul:2:9: "},
		{"basename", PathModeBasename, "test.gul:2:9: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode}); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("output %q lacks prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs, bag := unterminated(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1}); err != nil {
		t.Fatal(err)
	}
	want := "test.gul:2:9: error LEX1002: unterminated string literal\n" +
		" 1 | let a = 1\n" +
		" 2 | let x = \"unterminated\n" +
		"   |         ^~~~~~~~~~~~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, bag := unterminated(t)
	var buf bytes.Buffer
	opts := PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true, ShowPreview: true}
	if err := Pretty(&buf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"  note: test.gul:1:5: previous binding here\n",
		"  fix: close the string\n",
		"    - let x = \"unterminated\n",
		"    + let x = \"unterminated\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let s = \"日本\" + y\n")
	fileID := fs.AddVirtual("w.gul", content)
	start := uint32(strings.Index(string(content), "y"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUndefinedName, source.Span{File: fileID, Start: start, End: start + 1}, "undefined name 'y'"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	// The two CJK runes take two cells each.
	if want := " " + strings.Repeat(" ", 1) + " | " + strings.Repeat(" ", 17) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: missing.gul"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "error IO4001: failed to load file: missing.gul\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := unterminated(t)
	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output has escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output has no escape codes")
	}
}

func TestShort(t *testing.T) {
	fs, bag := unterminated(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PathModeBasename, false); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "test.gul:2:9: error LEX1002: unterminated string literal\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShortWithNotesInSourceOrder(t *testing.T) {
	fs, bag := unterminated(t)
	fileID := bag.Items()[0].Primary.File
	bag.Add(diag.New(diag.SevWarning, diag.GenApproximation, source.Span{File: fileID, Start: 0, End: 3}, "approx\nline"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PathModeBasename, true); err != nil {
		t.Fatal(err)
	}
	want := "test.gul:1:1: warning GEN7002: approx line\n" +
		"test.gul:1:5: note LEX1002: previous binding here\n" +
		"test.gul:2:9: error LEX1002: unterminated string literal\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
