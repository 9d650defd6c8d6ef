package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsmin/internal/diag"
	"jsmin/internal/diagfmt"
	"jsmin/internal/driver"
	"jsmin/internal/observ"
	"jsmin/internal/source"
	"jsmin/internal/ui"
)

// runOutput is what one command invocation produced.
type runOutput struct {
	units   []*driver.UnitResult
	docs    diagfmt.Documents
	bag     *diag.Bag
	timing  *observ.Timer
	metrics *driver.Metrics
	isDir   bool
}

func (r *runOutput) failed() bool {
	return r.bag.HasErrors()
}

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runTarget processes target, which is "-" for stdin, a file or a directory.
func runTarget(cmd *cobra.Command, s *settings, mode driver.Mode, target string) (*runOutput, error) {
	ctx := cmd.Context()
	opts := driver.Options{
		Config:        s.cfg,
		Mode:          mode,
		EnableTimings: s.timings,
		Jobs:          s.jobs,
		Metrics:       &driver.Metrics{},
	}
	if s.useCache {
		cache, err := driver.OpenDiskCache("jsmin", s.cfg.Cache.Dir)
		if err != nil {
			// кэш необязателен: предупреждаем и продолжаем
			if !s.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "jsmin: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	out := &runOutput{docs: diagfmt.Documents{}, metrics: opts.Metrics}

	if target == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		res, err := driver.Process(ctx, source.NewVirtualDocument("<stdin>", string(data)), opts)
		if err != nil {
			return nil, err
		}
		out.addUnits(res)
		out.timing = res.Timing
		return out, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		res, err := driver.ProcessFile(ctx, target, opts)
		if err != nil {
			return nil, err
		}
		out.addUnits(res)
		out.timing = res.Timing
		return out, nil
	}

	files, err := driver.ListSources(target, mode)
	if err != nil {
		return nil, err
	}
	var dirRes *driver.DirResult
	if shouldUseTUI(s.ui, s.quiet) && len(files) > 0 {
		dirRes, err = runDirWithUI(cmd, target, files, opts)
	} else {
		dirRes, err = driver.ProcessFiles(ctx, target, files, opts)
	}
	if err != nil {
		return nil, err
	}
	out.isDir = true
	out.addUnits(dirRes.Units...)
	out.timing = dirRes.Timing
	return out, nil
}

func (r *runOutput) addUnits(units ...*driver.UnitResult) {
	if r.bag == nil {
		r.bag = diag.NewBag(1)
	}
	for _, u := range units {
		if u == nil {
			continue
		}
		r.units = append(r.units, u)
		r.docs.Add(u.Doc)
		r.bag.Merge(u.Bag)
	}
	r.bag.Sort()
}

// runDirWithUI runs the directory while the progress view reads its events.
func runDirWithUI(cmd *cobra.Command, dir string, files []string, opts driver.Options) (*driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ProcessFiles(cmd.Context(), dir, files, opts)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(os.Stderr, "jsmin "+opts.Mode.String(), files, events)
	if uiErr != nil {
		// view died early; keep the workers from blocking on the channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "jsmin: progress view: %v\n", uiErr)
	}
	return outcome.result, nil
}
