package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/parser"
	"gul/internal/source"
)

func TestJSON(t *testing.T) {
	fs, bag := unterminated(t)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "pipeline timings").
		WithNote(source.Span{}, `{"kind":"file"}`))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Errors != 1 || out.Warnings != 0 {
		t.Fatalf("counts = %d/%d/%d", out.Count, out.Errors, out.Warnings)
	}

	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Title == "" {
		t.Errorf("header = %+v", d)
	}
	if d.Location == nil || d.Location.File != "test.gul" || d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 0 {
		t.Errorf("notes were not requested: %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 || d.Fixes[0].Edits[0].NewText != "\"" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	if got := d.Fixes[0].Edits[0].AfterLines; len(got) != 1 || got[0] != "let x = \"unterminated\"" {
		t.Errorf("after lines = %q", got)
	}

	timing := out.Diagnostics[1]
	if timing.Location != nil {
		t.Errorf("timing diagnostic has a location: %+v", timing.Location)
	}
	if len(timing.Notes) != 1 || timing.Notes[0].Message != `{"kind":"file"}` {
		t.Errorf("timing notes = %+v", timing.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs, bag := unterminated(t)
	bag.Add(diag.NewError(diag.SemaUndefinedName, source.Span{File: 0, Start: 4, End: 5}, "undefined"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Errors != 2 {
		t.Fatalf("count = %d errors = %d", out.Count, out.Errors)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.gul", []byte("let x = 1 # one\n"))
	toks := lexer.Tokenize(fs.Get(fileID), lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := pretty.String()
	if !strings.Contains(out, "\"x\" at 1:5-1:6") {
		t.Errorf("missing identifier line:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("missing EOF:\n%s", out)
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(toks) || decoded[len(decoded)-1].Kind != "EOF" {
		t.Fatalf("decoded %d tokens, want %d", len(decoded), len(toks))
	}
}

func TestFormatASTPretty(t *testing.T) {
	src := `fn add(a: int, b: int) -> int:
    return a + b * 2
let xs = [1, 2]
for x in xs:
    if x > 1:
        print(x)
    else:
        pass
`
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("tree.gul", []byte(src))
	bag := diag.NewBag(10)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	res := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 10, Reporter: reporter})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %d", bag.Len())
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, builder, res.File, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"tree.gul (span: ",
		"├─ Fn (span: 1:1-",
		"│  ├─ Params: (a: int, b: int)",
		"│  ├─ Return: int",
		"Value: (a + (b * 2))",
		"Value: [1, 2]",
		"└─ For (span: ",
		"Iter: xs",
		"If: (x > 1)",
		"Expr: print(x)",
		"Else",
		"Pass (span: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree lacks %q:\n%s", want, out)
		}
	}
}
