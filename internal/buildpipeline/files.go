package buildpipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gul/internal/driver"
)

// TargetFiles lists the source files a build of target compiles, as the
// display names used in progress events.
func TargetFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat target %q: %w", target, err)
	}
	if !info.IsDir() {
		return []string{displayName(target, "")}, nil
	}
	files, err := driver.ListSources(target)
	if err != nil {
		return nil, err
	}
	return normalizeProgressFiles(files, target), nil
}

// displayName renders path relative to baseDir when it lies below it and
// as a bare file name for single-file builds.
func displayName(path, baseDir string) string {
	if strings.TrimSpace(baseDir) == "" {
		return filepath.Base(path)
	}
	path = filepath.Clean(path)
	base := baseDir
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		path = rel
	}
	return filepath.ToSlash(path)
}

func normalizeProgressFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		name := displayName(file, baseDir)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}
	sort.Strings(normalized)
	return normalized
}
