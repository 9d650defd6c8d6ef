package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jsmin/internal/ast"
	"jsmin/internal/bind"
	"jsmin/internal/crunch"
	"jsmin/internal/diag"
	"jsmin/internal/jsonout"
	"jsmin/internal/jsparse"
	"jsmin/internal/observ"
	"jsmin/internal/project"
	"jsmin/internal/rewrite"
	"jsmin/internal/source"
	"jsmin/internal/token"
	"jsmin/internal/trace"
)

// UnitResult is everything one source file produced.
type UnitResult struct {
	Path   string
	Digest project.Digest
	Doc    *source.Document
	Bag    *diag.Bag

	// Program and Bind are nil when the result came from the cache.
	Program *ast.Program
	Bind    *bind.Result

	Crunch    *crunch.Report
	JSON      string
	JSONValid bool
	Stripped  int

	Timing *observ.Timer
	Cached bool
}

// Failed reports whether the unit has error diagnostics.
func (r *UnitResult) Failed() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// ProcessFile loads path and runs it through the pipeline. A file that cannot
// be read yields a result holding an IOLoadFileError diagnostic, not an error.
func ProcessFile(ctx context.Context, path string, opts Options) (*UnitResult, error) {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	doc, err := source.LoadDocument(path)
	if err != nil {
		res := &UnitResult{Path: path, Bag: diag.NewBag(opts.Config.Output.MaxDiagnostics)}
		res.Bag.Add(diag.New(diag.IOLoadFileError, diag.Location{File: path}, "failed to load file: "+err.Error()))
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		opts.Metrics.record(res)
		return res, nil
	}
	return process(ctx, doc, path, opts)
}

// Process runs doc through parse, bind, the enabled rewrites, crunch and
// emit, as selected by opts.Mode. Diagnostics land in the result's bag; the
// error is reserved for cancellation and parser failures.
func Process(ctx context.Context, doc *source.Document, opts Options) (*UnitResult, error) {
	if doc == nil {
		return nil, errors.New("driver: nil document")
	}
	return process(ctx, doc, doc.Path, opts)
}

func process(ctx context.Context, doc *source.Document, display string, opts Options) (res *UnitResult, err error) {
	ctx, span := trace.Start(ctx, trace.ScopeUnit, "unit:"+doc.Path)
	res = &UnitResult{
		Path:   doc.Path,
		Digest: project.ContentDigest(doc.Source),
		Doc:    doc,
		Bag:    diag.NewBag(opts.Config.Output.MaxDiagnostics),
	}
	if opts.EnableTimings {
		res.Timing = observ.NewTimer()
	}
	defer func() {
		status := StatusDone
		switch {
		case err != nil || res.Failed():
			status = StatusError
		case res.Cached:
			status = StatusCached
		}
		span.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len())).End(string(status))
		emit(opts.Progress, Event{File: display, Status: status, Err: err})
		if err == nil {
			opts.Metrics.record(res)
		}
	}()

	key := opts.cacheKey(res.Digest)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, cacheErr := opts.Cache.Get(key, &payload)
		opts.Metrics.cacheLookup(hit, cacheErr)
		if hit {
			res.restore(&payload)
			return res, nil
		}
	}

	doc.SetReporter(opts.reporter(res.Bag))
	ph := phases{ctx: ctx, timer: res.Timing, sink: opts.Progress, file: display}

	err = ph.run(StageParse, func() (string, error) {
		var perr error
		if opts.Mode == ModeJSON {
			res.Program, perr = jsparse.ParseValue(ctx, doc)
		} else {
			res.Program, perr = jsparse.Parse(ctx, doc)
		}
		if perr != nil {
			return "", perr
		}
		return fmt.Sprintf("statements=%d", res.Program.Body().Count()), nil
	})
	if err != nil {
		return res, err
	}

	err = ph.run(StageBind, func() (string, error) {
		res.Bind = bind.Bind(res.Program, opts.bindOptions())
		note := fmt.Sprintf("scopes=%d undefined=%d", res.Bind.Table.Scopes.Len(), len(res.Bind.Undefined))
		if res.Bind.TooDeep {
			note += " too-deep"
		}
		return note, nil
	})
	if err != nil {
		return res, err
	}

	if opts.Mode != ModeJSON && opts.Config.Analysis.StripDebug {
		err = ph.run(StageRewrite, func() (string, error) {
			res.Stripped = rewrite.StripDebug(res.Program, opts.Config.Analysis.DebugLookups)
			return fmt.Sprintf("removed=%d", res.Stripped), nil
		})
		if err != nil {
			return res, err
		}
	}

	if opts.Mode == ModeCrunch && opts.Config.Crunch.Enabled {
		err = ph.run(StageCrunch, func() (string, error) {
			res.Crunch = crunch.Run(res.Bind.Table, opts.crunchOptions())
			return fmt.Sprintf("renamed=%d/%d", res.Crunch.Renamed, len(res.Crunch.Entries)), nil
		})
		if err != nil {
			return res, err
		}
	}

	if opts.Mode == ModeJSON {
		err = ph.run(StageEmit, func() (string, error) {
			var sb strings.Builder
			valid, werr := jsonout.ApplyWithOptions(&sb, res.Program, jsonout.Options{GlobalScope: res.Bind.Global})
			if werr != nil {
				return "", werr
			}
			res.JSON, res.JSONValid = sb.String(), valid
			if !valid {
				doc.ContextAt(0, doc.Len(), token.None).HandleError(diag.JSONNotRepresentable, false)
			}
			return fmt.Sprintf("bytes=%d valid=%v", len(res.JSON), valid), nil
		})
		if err != nil {
			return res, err
		}
	}

	if opts.Cache != nil {
		if perr := opts.Cache.Put(key, res.payload()); perr != nil {
			opts.Metrics.cacheLookup(false, perr)
		}
	}
	return res, nil
}

func (r *UnitResult) payload() *DiskPayload {
	return &DiskPayload{
		Path:        r.Path,
		Diagnostics: r.Bag.Items(),
		JSON:        r.JSON,
		JSONValid:   r.JSONValid,
		Crunch:      r.Crunch,
		Stripped:    r.Stripped,
	}
}

func (r *UnitResult) restore(p *DiskPayload) {
	for _, d := range p.Diagnostics {
		r.Bag.Add(d)
	}
	r.JSON = p.JSON
	r.JSONValid = p.JSONValid
	r.Crunch = p.Crunch
	r.Stripped = p.Stripped
	r.Cached = true
}

// phases runs pipeline steps with the same bookkeeping: a cancellation
// check, a progress event, a trace span and a timer entry.
type phases struct {
	ctx   context.Context
	timer *observ.Timer
	sink  ProgressSink
	file  string
}

func (p phases) run(stage Stage, step func() (string, error)) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	emit(p.sink, Event{File: p.file, Stage: stage, Status: StatusWorking})
	_, span := trace.Start(p.ctx, trace.ScopePass, string(stage))
	idx := -1
	if p.timer != nil {
		idx = p.timer.Begin(string(stage))
	}

	note, err := step()

	if p.timer != nil {
		p.timer.End(idx, note)
	}
	if err != nil {
		note = err.Error()
	}
	span.End(note)
	return err
}
