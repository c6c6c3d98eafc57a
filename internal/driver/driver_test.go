package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gul/internal/diag"
	"gul/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.gul", "if x:\n    print(x)\n")
	res, err := Tokenize(path, 10)
	require.NoError(t, err)
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)
	assert.Zero(t, res.Bag.Len())

	var sawIndent, sawDedent bool
	for _, tok := range res.Tokens {
		sawIndent = sawIndent || tok.Kind == token.Indent
		sawDedent = sawDedent || tok.Kind == token.Dedent
	}
	assert.True(t, sawIndent)
	assert.True(t, sawDedent)
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "missing.gul"), 10)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.gul", "let x = 1\nprint(x)\n")
	res, err := Parse(path, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Bag.Len())
	file := res.Builder.Files.Get(res.FileID)
	require.NotNil(t, file)
	assert.Len(t, file.Stmts, 2)
}

func TestCompileSourceGeneratesRust(t *testing.T) {
	_, res, err := CompileSource(context.Background(), "hello.gul", []byte("let x = 2\nprint(x * 3)\n"), Options{})
	require.NoError(t, err)
	assert.False(t, res.Failed())
	require.NotNil(t, res.Output)
	assert.Contains(t, res.Output.Source, "// Code generated by gul from hello.gul (crate hello). DO NOT EDIT.")
	assert.Contains(t, res.Output.Source, "fn main() {")
}

func TestCompileStopsBeforeCodegenOnErrors(t *testing.T) {
	_, res, err := CompileSource(context.Background(), "bad.gul", []byte("print(y)\n"), Options{})
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Nil(t, res.Output)
	assert.NotNil(t, res.Sema)
	assert.Contains(t, codes(res.Bag), diag.SemaUndefinedName)
}

func TestSyntaxErrorSurvivesDiagnosticLimit(t *testing.T) {
	_, res, err := CompileSource(context.Background(), "cap.gul", []byte("let = 1\nprint(1)\n"), Options{MaxDiagnostics: 1})
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, 1, res.Bag.ErrorCount())
	assert.Equal(t, "SYN", codes(res.Bag)[0].ID()[:3])
	assert.Nil(t, res.Output)
}

func TestCompileStages(t *testing.T) {
	src := []byte("print(y)\n")
	ctx := context.Background()

	_, res, err := CompileSource(ctx, "a.gul", src, Options{Stage: StageTokenize})
	require.NoError(t, err)
	assert.Nil(t, res.Builder)
	assert.Zero(t, res.Bag.Len())

	_, res, err = CompileSource(ctx, "a.gul", src, Options{Stage: StageSyntax})
	require.NoError(t, err)
	assert.NotNil(t, res.Builder)
	assert.Nil(t, res.Sema)
	assert.Zero(t, res.Bag.Len())

	_, res, err = CompileSource(ctx, "a.gul", src, Options{Stage: StageSema})
	require.NoError(t, err)
	assert.NotNil(t, res.Sema)
	assert.True(t, res.Failed())
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := CompileSource(ctx, "a.gul", []byte("print(1)\n"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimingsAndObserver(t *testing.T) {
	var (
		mu     sync.Mutex
		events []PhaseEvent
	)
	opts := Options{
		EnableTimings: true,
		Observer: func(ev PhaseEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	}
	_, res, err := CompileSource(context.Background(), "t.gul", []byte("print(1)\n"), opts)
	require.NoError(t, err)
	require.NotNil(t, res.Timing)

	names := make([]string, 0, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{PhaseParse, PhaseAnalyze, PhaseGenerate}, names)
	assert.Contains(t, codes(res.Bag), diag.ObsTimings)
	assert.False(t, res.Failed())

	require.Len(t, events, 6)
	assert.Equal(t, PhaseStart, events[0].Status)
	assert.Equal(t, PhaseEnd, events[5].Status)
	assert.Equal(t, PhaseGenerate, events[5].Name)
	assert.Equal(t, "t.gul", events[0].Path)
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.gul", "print(missing)\n")
	writeFile(t, dir, "a.gul", "print(1)\n")
	writeFile(t, dir, "nested/c.gul", "let s = \"x\"\nprint(s)\n")
	writeFile(t, dir, "notes.txt", "not source")
	writeFile(t, dir, ".hidden/d.gul", "print(2)\n")

	fileSet, results, err := CompileDir(context.Background(), dir, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, filepath.Join(dir, "a.gul"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.gul"), results[1].Path)
	assert.Equal(t, filepath.Join(dir, "nested", "c.gul"), results[2].Path)

	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.NotNil(t, results[2].Output)
	assert.Contains(t, results[2].Output.Source, "from nested/c.gul (crate c)")

	merged := Merge(results, 100)
	assert.Equal(t, 1, merged.ErrorCount())
	assert.Equal(t, 3, fileSet.Len())
}

func TestCompileDirEmpty(t *testing.T) {
	_, results, err := CompileDir(context.Background(), t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCrateName(t *testing.T) {
	tests := map[string]string{
		"src/hello.gul":      "hello",
		"My-App.gul":         "my_app",
		"2fast.gul":          "gul_2fast",
		"dir/.gul":           "main",
		"/abs/path/main.gul": "main",
	}
	for in, want := range tests {
		assert.Equal(t, want, crateName(in), in)
	}
}

func TestForeignBundleRoundTrip(t *testing.T) {
	src := "@rust:\n    fn helper() -> i64 {\n        42\n    }\n@python:\n    import os\n    print(os.name)\n"
	fileSet, res, err := CompileSource(context.Background(), "ffi.gul", []byte(src), Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())

	records := ForeignRecords(fileSet, []*FileResult{res})
	require.Len(t, records, 1)
	assert.Equal(t, "python", records[0].Tag)
	assert.Equal(t, "ffi.gul", records[0].File)
	assert.Equal(t, "import os\nprint(os.name)", records[0].Body)
	assert.GreaterOrEqual(t, records[0].Line, uint32(5))

	var buf bytes.Buffer
	require.NoError(t, WriteForeignBundle(&buf, records))
	back, err := ReadForeignBundle(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, back)
}

func TestReadForeignBundleRejectsGarbage(t *testing.T) {
	_, err := ReadForeignBundle(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}
