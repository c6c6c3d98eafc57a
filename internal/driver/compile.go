package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gul/internal/diag"
	"gul/internal/source"
)

// SourceExt is the extension of GUL source files.
const SourceExt = ".gul"

// Compile runs the pipeline over a single file.
func Compile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := compileFile(ctx, fileSet, fileID, opts)
	if err != nil {
		return nil, nil, err
	}
	return fileSet, res, nil
}

// CompileSource runs the pipeline over in-memory content.
func CompileSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual(name, content)
	res, err := compileFile(ctx, fileSet, fileID, opts)
	if err != nil {
		return nil, nil, err
	}
	return fileSet, res, nil
}

// CompileDir compiles every .gul file under dir in parallel. Results are in
// path order. A file that cannot be read yields a result whose bag holds
// the load error; the other files are still compiled.
func CompileDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	log := opts.logger()
	log.Debug("compiling directory", zap.String("dir", dir), zap.Int("files", len(files)))

	// Loading mutates the file set, so it happens before any worker starts.
	results := make([]*FileResult, len(files))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			bag := diag.NewBag(opts.maxDiagnostics())
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to load file: %v", loadErr)))
			results[i] = &FileResult{Path: path, Bag: bag}
			continue
		}
		ids[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if results[i] != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := compileFile(gctx, fileSet, ids[i], opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// ListSources returns the .gul files under dir, sorted. Hidden
// directories are skipped.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Merge gathers the bags of all results into one sorted bag.
func Merge(results []*FileResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r != nil && r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}

// ErrNoSources is returned when a directory holds no .gul files.
var ErrNoSources = errors.New("no " + SourceExt + " files found")
