package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied to keys missing from [build].
const (
	DefaultEdition        = "2021"
	DefaultSrcDir         = "src"
	DefaultOutDir         = "target/gul"
	DefaultMaxDiagnostics = 100
)

// Manifest is a decoded gul.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the layout of gul.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Edition string `toml:"edition"`
}

type BuildConfig struct {
	Src            string `toml:"src"`
	OutDir         string `toml:"out_dir"`
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	EmitForeign    bool   `toml:"emit_foreign"`
}

// DefaultConfig returns the configuration written by `gul init`.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name, Edition: DefaultEdition},
		Build: BuildConfig{
			Src:            DefaultSrcDir,
			OutDir:         DefaultOutDir,
			MaxDiagnostics: DefaultMaxDiagnostics,
			EmitForeign:    true,
		},
	}
}

// Load finds gul.toml above startDir and decodes it. ok is false when no
// manifest exists.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates the manifest at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(&cfg, meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses manifest text; used for manifests that do not live on disk.
func Decode(data string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := validate(&cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg *Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %s", undecoded[0])
	}
	if !meta.IsDefined("package") {
		return fmt.Errorf("missing [package]")
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return fmt.Errorf("missing [package].name")
	}
	if !meta.IsDefined("package", "edition") {
		cfg.Package.Edition = DefaultEdition
	}
	if !meta.IsDefined("build", "src") {
		cfg.Build.Src = DefaultSrcDir
	}
	if !meta.IsDefined("build", "out_dir") {
		cfg.Build.OutDir = DefaultOutDir
	}
	if !meta.IsDefined("build", "max_diagnostics") {
		cfg.Build.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if !meta.IsDefined("build", "emit_foreign") {
		cfg.Build.EmitForeign = true
	}
	if cfg.Build.Jobs < 0 {
		return fmt.Errorf("[build].jobs must not be negative, got %d", cfg.Build.Jobs)
	}
	if cfg.Build.MaxDiagnostics <= 0 {
		return fmt.Errorf("[build].max_diagnostics must be positive, got %d", cfg.Build.MaxDiagnostics)
	}
	if filepath.IsAbs(cfg.Build.Src) || filepath.IsAbs(cfg.Build.OutDir) {
		return fmt.Errorf("[build] paths must be relative to the project root")
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SrcDir is the absolute source directory of the project.
func (m *Manifest) SrcDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Src))
}

// OutDir is the absolute output directory of the project.
func (m *Manifest) OutDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}
