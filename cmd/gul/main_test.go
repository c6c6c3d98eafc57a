package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gul/internal/buildpipeline"
	"gul/internal/diag"
	"gul/internal/project"
	"gul/internal/source"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit ui modes ignored")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Fatalf("debug: %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Fatal("unknown level accepted")
	}
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"Demo":        "demo",
		"my project":  "my-project",
		"v1.2":        "v1-2",
		"snake_case":  "snake_case",
		"...":         "gul-project",
		"ünïcode-dir": "ünïcode-dir",
	}
	for in, want := range tests {
		if got := packageName(in); got != want {
			t.Errorf("packageName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRelPath(t *testing.T) {
	if got := relPath("/a/b", "/a/b/c/d.gul"); got != "c/d.gul" {
		t.Fatalf("relPath = %q", got)
	}
	if got := relPath("/a/b", "/x/y.gul"); got != "/x/y.gul" {
		t.Fatalf("relPath outside base = %q", got)
	}
	if got := relPath("", "y.gul"); got != "y.gul" {
		t.Fatalf("relPath without base = %q", got)
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := collectVersionInfo("0.1.0-dev")
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "gul" || payload.Version != "0.1.0-dev" || payload.GitCommit != "unknown" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.BuildDate != "" {
		t.Fatalf("build date leaked without --date: %+v", payload)
	}
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "demo")
	var out bytes.Buffer
	initCmd.SetOut(&out)
	defer initCmd.SetOut(nil)
	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), `Initialized GUL project "demo"`) {
		t.Fatalf("init output = %q", out.String())
	}
	return dir
}

func TestInitWritesManifestAndMain(t *testing.T) {
	dir := initProject(t)
	cfg, err := project.LoadConfig(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" || cfg.Build.Src != project.DefaultSrcDir {
		t.Fatalf("config = %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.gul")); err != nil {
		t.Fatal(err)
	}
	if err := runInit(initCmd, []string{dir}); err == nil {
		t.Fatal("second init succeeded")
	}
}

func TestBuildPlanFromManifest(t *testing.T) {
	dir := initProject(t)
	t.Chdir(dir)

	plan, err := resolveBuildPlan(buildCmd, nil, globalOptions{maxDiagnostics: 100})
	if err != nil {
		t.Fatal(err)
	}
	if plan.manifest == nil || plan.crate != "demo" || !plan.emitForeign {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.target != filepath.Join(dir, "src") || plan.outDir != filepath.Join(dir, "target", "gul") {
		t.Fatalf("paths = %q, %q", plan.target, plan.outDir)
	}

	res, err := buildpipeline.Build(context.Background(), &buildpipeline.BuildRequest{
		Target:         plan.target,
		OutDir:         plan.outDir,
		MaxDiagnostics: plan.maxDiags,
		EmitForeign:    plan.emitForeign,
		CrateName:      plan.crate,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(plan.outDir, "main.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fn greet(") {
		t.Fatalf("generated:\n%s", data)
	}
	if len(res.Artifacts) != 1 {
		t.Fatalf("artifacts = %+v", res.Artifacts)
	}
}

func TestBuildPlanWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := resolveBuildPlan(buildCmd, nil, globalOptions{maxDiagnostics: 100}); err == nil {
		t.Fatal("build without manifest or target accepted")
	}
	plan, err := resolveBuildPlan(buildCmd, []string{"."}, globalOptions{maxDiagnostics: 7})
	if err != nil {
		t.Fatal(err)
	}
	if plan.target != "." || plan.outDir != project.DefaultOutDir || plan.maxDiags != 7 {
		t.Fatalf("plan = %+v", plan)
	}
}

func TestPrintDiagnosticsShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("demo.gul", []byte("let x = 1\nx = 2\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaImmutableAssign, source.Span{File: fileID, Start: 10, End: 11}, "cannot assign to immutable binding 'x'").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "declared here"))

	var buf bytes.Buffer
	if err := printDiagnostics(&buf, bag, fs, globalOptions{}, diagOptions{format: "short", withNotes: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "demo.gul:1:5: note SEM3003: declared here") ||
		!strings.HasSuffix(lines[1], "demo.gul:2:1: error SEM3003: cannot assign to immutable binding 'x'") {
		t.Fatalf("got %q", buf.String())
	}
}
