package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"gul/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new GUL project",
	Long: `Initialize a new GUL project by creating a project manifest (gul.toml)
and a hello-world entry point (src/main.gul). If [path|name] is omitted,
initializes the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMainGUL = `# Entry point of the project.
fn greet(name: str) -> str:
    return "Hello, " + name + "!"

mn:
    print(greet("GUL"))
`

// runInit writes gul.toml and src/main.gul into the target directory. It
// refuses to overwrite an existing manifest and keeps an existing main.gul.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	cfg := project.DefaultConfig(packageName(filepath.Base(target)))
	data, err := project.Encode(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, filepath.FromSlash(cfg.Build.Src))
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main.gul")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainGUL), 0o600); err != nil {
			return fmt.Errorf("failed to write main.gul: %w", err)
		}
		createdMain = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized GUL project %q in %s\n", cfg.Package.Name, relPath(wd, target))
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - %s/main.gul\n", cfg.Build.Src)
	} else {
		fmt.Fprintf(out, "  - %s/main.gul (existing)\n", cfg.Build.Src)
	}
	return nil
}

// packageName derives a manifest name from a directory name.
func packageName(dir string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(dir) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '.':
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		return "gul-project"
	}
	return name
}
