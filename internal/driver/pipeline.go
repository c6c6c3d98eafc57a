package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"gul/internal/ast"
	"gul/internal/codegen"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/observ"
	"gul/internal/parser"
	"gul/internal/sema"
	"gul/internal/source"
)

// FileResult holds everything one file's pipeline produced. Later stages
// are nil when the pipeline stopped early.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Builder *ast.Builder
	ASTFile ast.FileID
	Sema    *sema.Result
	Output  *codegen.Output
	Timing  *observ.Report
}

// Failed reports whether the file has error diagnostics.
func (r *FileResult) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// compileFile runs the pipeline for a file already loaded into fs. It only
// reads from fs, so several calls may share one file set.
func compileFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*FileResult, error) {
	file := fs.Get(fileID)
	log := opts.logger().With(zap.String("file", file.Path))
	res := &FileResult{
		Path:   file.Path,
		FileID: fileID,
		Bag:    diag.NewBag(opts.maxDiagnostics()),
	}
	reporter := diag.BagReporter{Bag: res.Bag}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) (int, time.Time) {
		notify(opts, PhaseEvent{Path: file.Path, Name: name, Status: PhaseStart})
		idx := -1
		if timer != nil {
			idx = timer.Begin(name)
		}
		return idx, time.Now()
	}
	end := func(name string, idx int, started time.Time, note string) {
		if timer != nil {
			timer.End(idx, note)
		}
		elapsed := time.Since(started)
		notify(opts, PhaseEvent{
			Path:    file.Path,
			Name:    name,
			Status:  PhaseEnd,
			Elapsed: elapsed,
			Failed:  res.Bag.HasErrors(),
		})
		log.Debug("phase done", zap.String("phase", name), zap.Duration("elapsed", elapsed))
	}
	finish := func() (*FileResult, error) {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
			appendTimingDiagnostic(res.Bag, file.Path, report)
		}
		res.Bag.Sort()
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.stage() == StageTokenize {
		idx, started := begin(PhaseParse)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
		end(PhaseParse, idx, started, fmt.Sprintf("%d tokens", len(toks)))
		return finish()
	}

	idx, started := begin(PhaseParse)
	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		return nil, err
	}
	res.Builder = ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, res.Builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	res.ASTFile = parsed.File
	end(PhaseParse, idx, started, "")
	if opts.stage() == StageSyntax {
		return finish()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, started = begin(PhaseAnalyze)
	checked := sema.Check(ctx, res.Builder, res.ASTFile, sema.Options{Reporter: reporter})
	res.Sema = &checked
	end(PhaseAnalyze, idx, started, "")
	if opts.stage() == StageSema {
		return finish()
	}

	if res.Bag.HasErrors() {
		log.Debug("skipping code generation", zap.Int("errors", res.Bag.ErrorCount()))
		return finish()
	}
	idx, started = begin(PhaseGenerate)
	crate := opts.CrateName
	if crate == "" {
		crate = crateName(file.Path)
	}
	out := codegen.Generate(res.Builder, res.ASTFile, res.Sema, codegen.Options{
		Reporter:   reporter,
		CrateName:  crate,
		SourcePath: displayPath(fs, file),
	})
	res.Output = &out
	end(PhaseGenerate, idx, started, fmt.Sprintf("%d bytes", len(out.Source)))
	return finish()
}

// displayPath is relative to the file set's base directory, or the bare
// name for in-memory files.
func displayPath(fs *source.FileSet, file *source.File) string {
	if file.Flags&source.FileVirtual != 0 {
		return file.FormatPath("basename", "")
	}
	return file.FormatPath("relative", fs.BaseDir())
}

func notify(opts Options, ev PhaseEvent) {
	if opts.Observer != nil {
		opts.Observer(ev)
	}
}

// crateName derives a Rust crate identifier from a source file name.
func crateName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" {
		return "main"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "gul_" + name
	}
	return name
}
