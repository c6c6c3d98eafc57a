package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	cfg, err := Decode("[package]\nname = \"demo\"\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := DefaultConfig("demo")
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestDecodeKeepsExplicitValues(t *testing.T) {
	cfg, err := Decode(`[package]
name = "demo"
edition = "2024"

[build]
src = "lib"
out_dir = "out"
jobs = 4
max_diagnostics = 7
emit_foreign = false
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b := cfg.Build
	if cfg.Package.Edition != "2024" || b.Src != "lib" || b.OutDir != "out" || b.Jobs != 4 || b.MaxDiagnostics != 7 || b.EmitForeign {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no package", "[build]\njobs = 1\n", "missing [package]"},
		{"no name", "[package]\nedition = \"2021\"\n", "missing [package].name"},
		{"blank name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\nflavor = \"y\"\n", "unknown key package.flavor"},
		{"negative jobs", "[package]\nname = \"x\"\n[build]\njobs = -1\n", "jobs must not be negative"},
		{"zero diagnostics", "[package]\nname = \"x\"\n[build]\nmax_diagnostics = 0\n", "max_diagnostics must be positive"},
		{"absolute out", "[package]\nname = \"x\"\n[build]\nout_dir = \"/tmp/x\"\n", "relative to the project root"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(DefaultConfig("demo"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		t.Fatalf("Decode(%s): %v", data, err)
	}
	if cfg != DefaultConfig("demo") {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"demo\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	wantRoot, _ := filepath.Abs(root)
	if m.Root != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, wantRoot)
	}
	if m.SrcDir() != filepath.Join(wantRoot, "src") || m.OutDir() != filepath.Join(wantRoot, "target", "gul") {
		t.Fatalf("dirs = %q %q", m.SrcDir(), m.OutDir())
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil || ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
}

func TestCombineDependsOnOrder(t *testing.T) {
	a, b := Sum([]byte("a")), Sum([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine should be order sensitive")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine should be deterministic")
	}
}
