// Package buildpipeline compiles a file or directory to Rust sources on
// disk and reports per-file progress.
package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"gul/internal/diag"
	"gul/internal/driver"
	"gul/internal/project"
	"gul/internal/source"
)

// ErrDiagnostics is returned when at least one file reported errors.
// Outputs of the clean files are still written.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// BuildRequest configures a build.
type BuildRequest struct {
	// Target is a .gul file or a directory of them.
	Target         string
	OutDir         string
	Jobs           int
	MaxDiagnostics int
	EmitForeign    bool
	EnableTimings  bool
	// CrateName names the foreign bundle and, for single files, the crate.
	CrateName string
	Logger    *zap.Logger
	Progress  ProgressSink
}

// Artifact is one generated Rust file.
type Artifact struct {
	Source string
	Path   string
	Bytes  int
	// Unchanged is set when the file on disk already had this content.
	Unchanged   bool
	Fingerprint project.Digest
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	FileSet     *source.FileSet
	Files       []*driver.FileResult
	Artifacts   []Artifact
	ForeignPath string
	Bag         *diag.Bag
	Timings     Timings
	Elapsed     time.Duration
}

// Build compiles req.Target and writes one .rs file per clean source file
// below req.OutDir, mirroring the source layout.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.Target == "" {
		return result, fmt.Errorf("missing build target")
	}
	if req.OutDir == "" {
		return result, fmt.Errorf("missing output directory")
	}
	log := req.Logger
	if log == nil {
		log = zap.NewNop()
	}
	started := time.Now()

	info, err := os.Stat(req.Target)
	if err != nil {
		return result, fmt.Errorf("failed to stat target %q: %w", req.Target, err)
	}
	baseDir := ""
	if info.IsDir() {
		baseDir = req.Target
	}

	files, err := TargetFiles(req.Target)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, driver.ErrNoSources
	}
	emitQueued(req.Progress, files)

	observer := &phaseObserver{sink: req.Progress, baseDir: baseDir}
	opts := driver.Options{
		Stage:          driver.StageAll,
		MaxDiagnostics: req.MaxDiagnostics,
		Jobs:           req.Jobs,
		EnableTimings:  req.EnableTimings,
		Logger:         log,
		Observer:       observer.OnPhase,
	}
	if info.IsDir() {
		result.FileSet, result.Files, err = driver.CompileDir(ctx, req.Target, opts)
	} else {
		opts.CrateName = req.CrateName
		var single *driver.FileResult
		result.FileSet, single, err = driver.Compile(ctx, req.Target, opts)
		result.Files = []*driver.FileResult{single}
	}
	if err != nil {
		result.Files = nil
		return result, err
	}
	result.Bag = driver.Merge(result.Files, req.MaxDiagnostics)
	recordPhaseTimings(&result.Timings, result.Files)

	writeStart := time.Now()
	failed := 0
	for _, fr := range result.Files {
		name := displayName(fr.Path, baseDir)
		if fr.Failed() || fr.Output == nil {
			failed++
			emit(req.Progress, name, StageWrite, StatusError, nil)
			continue
		}
		emit(req.Progress, name, StageWrite, StatusWorking, nil)
		art, werr := writeArtifact(req.OutDir, name, fr, result.FileSet)
		if werr != nil {
			emit(req.Progress, name, StageWrite, StatusError, werr)
			return result, werr
		}
		log.Debug("wrote artifact",
			zap.String("path", art.Path),
			zap.Int("bytes", art.Bytes),
			zap.Bool("unchanged", art.Unchanged),
			zap.String("fingerprint", fmt.Sprintf("%x", art.Fingerprint[:8])))
		result.Artifacts = append(result.Artifacts, art)
		emit(req.Progress, name, StageWrite, StatusDone, nil)
	}

	if req.EmitForeign {
		records := driver.ForeignRecords(result.FileSet, result.Files)
		if len(records) > 0 {
			path, ferr := writeForeignBundle(req.OutDir, bundleName(req, info.IsDir()), records)
			if ferr != nil {
				return result, ferr
			}
			result.ForeignPath = path
		}
	}
	result.Timings.Set(StageWrite, time.Since(writeStart))
	result.Elapsed = time.Since(started)

	if failed > 0 {
		return result, fmt.Errorf("%w: %d of %d files failed", ErrDiagnostics, failed, len(result.Files))
	}
	return result, nil
}

// writeArtifact stores the generated source for one file and skips the
// write when the existing file is byte-identical.
func writeArtifact(outDir, name string, fr *driver.FileResult, fileSet *source.FileSet) (Artifact, error) {
	rel := strings.TrimSuffix(filepath.FromSlash(name), driver.SourceExt) + ".rs"
	path := filepath.Join(outDir, rel)
	content := []byte(fr.Output.Source)
	art := Artifact{
		Source:      fr.Path,
		Path:        path,
		Bytes:       len(content),
		Fingerprint: project.Combine(project.Digest(fileSet.Get(fr.FileID).Hash), project.Sum(content)),
	}

	// #nosec G304 -- path is built from the output directory
	if existing, err := os.ReadFile(path); err == nil && project.Sum(existing) == project.Sum(content) {
		art.Unchanged = true
		return art, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return art, fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return art, fmt.Errorf("failed to write build output %q: %w", path, err)
	}
	return art, nil
}

func writeForeignBundle(outDir, name string, records []driver.ForeignRecord) (string, error) {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	var buf bytes.Buffer
	if err := driver.WriteForeignBundle(&buf, records); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, name+".foreign.msgpack")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write foreign bundle %q: %w", path, err)
	}
	return path, nil
}

func bundleName(req *BuildRequest, isDir bool) string {
	if req.CrateName != "" {
		return req.CrateName
	}
	base := filepath.Base(filepath.Clean(req.Target))
	if !isDir {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "main"
	}
	return base
}

// Summary renders a one-line report such as
// "built 3 files (12 kB, 1 unchanged) in 4ms".
func (r BuildResult) Summary() string {
	var total uint64
	unchanged := 0
	for _, a := range r.Artifacts {
		if n, err := safecast.Conv[uint64](a.Bytes); err == nil {
			total += n
		}
		if a.Unchanged {
			unchanged++
		}
	}
	noun := "files"
	if len(r.Artifacts) == 1 {
		noun = "file"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "built %s %s (%s", humanize.Comma(int64(len(r.Artifacts))), noun, humanize.Bytes(total))
	if unchanged > 0 {
		fmt.Fprintf(&sb, ", %d unchanged", unchanged)
	}
	sb.WriteString(")")
	if failed := len(r.Files) - len(r.Artifacts); failed > 0 {
		fmt.Fprintf(&sb, ", %d failed", failed)
	}
	fmt.Fprintf(&sb, " in %s", r.Elapsed.Round(time.Millisecond))
	return sb.String()
}
