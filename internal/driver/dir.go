package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsmin/internal/diag"
	"jsmin/internal/observ"
	"jsmin/internal/trace"
)

// DirResult holds the units of a directory run in path order.
type DirResult struct {
	Dir    string
	Units  []*UnitResult
	Timing *observ.Timer // phases summed over all units
}

// Bag merges the diagnostics of every unit, sorted.
func (r *DirResult) Bag() *diag.Bag {
	total := diag.NewBag(1)
	for _, u := range r.Units {
		if u != nil {
			total.Merge(u.Bag)
		}
	}
	total.Sort()
	return total
}

// HasErrors reports whether any unit failed.
func (r *DirResult) HasErrors() bool {
	for _, u := range r.Units {
		if u.Failed() {
			return true
		}
	}
	return false
}

// sourceExt returns the file extension a mode reads.
func sourceExt(mode Mode) string {
	if mode == ModeJSON {
		return ".json"
	}
	return ".js"
}

// ListSources returns the sorted source files under dir. Hidden directories
// and node_modules are skipped.
func ListSources(dir string, mode Mode) ([]string, error) {
	ext := sourceExt(mode)
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ProcessDir runs every source file under dir through the pipeline in
// parallel. Each unit owns its document and tree, so workers share nothing
// but the cache, the metrics and the progress sink.
func ProcessDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListSources(dir, opts.Mode)
	if err != nil {
		return nil, err
	}
	return ProcessFiles(ctx, dir, files, opts)
}

// ProcessFiles is ProcessDir over an explicit file list.
func ProcessFiles(ctx context.Context, dir string, files []string, opts Options) (*DirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "dir:"+dir)
	defer span.End(fmt.Sprintf("files=%d", len(files)))

	out := &DirResult{Dir: dir, Units: make([]*UnitResult, len(files))}
	if opts.EnableTimings {
		out.Timing = observ.NewTimer()
	}
	if len(files) == 0 {
		return out, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для каждой горутины, мьютекс не нужен
			res, err := ProcessFile(gctx, path, opts)
			out.Units[i] = res
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if out.Timing != nil {
				out.Timing.Merge(res.Timing)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
