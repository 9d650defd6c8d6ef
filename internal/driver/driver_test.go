package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"jsmin/internal/diag"
	"jsmin/internal/project"
	"jsmin/internal/source"
)

func defaultOptions(mode Mode) Options {
	return Options{Config: project.DefaultConfig(), Mode: mode}
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func run(t *testing.T, src string, opts Options) *UnitResult {
	t.Helper()
	res, err := Process(context.Background(), source.NewVirtualDocument("unit.js", src), opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return res
}

func TestProcessDiagnose(t *testing.T) {
	opts := defaultOptions(ModeDiagnose)
	opts.Config.Analysis.StripDebug = true
	opts.EnableTimings = true

	res := run(t, "var a = 1;\nDebug.assert(a);\ndebugger;\nlog(a);\n", opts)
	if res.Stripped != 2 {
		t.Errorf("Stripped = %d, want 2", res.Stripped)
	}
	if res.Program.Body().Count() != 2 {
		t.Errorf("statements left = %d, want 2", res.Program.Body().Count())
	}
	got := codes(res.Bag)
	if !slices.Contains(got, diag.DebugStatementRemoved) || !slices.Contains(got, diag.UndeclaredFunction) {
		t.Errorf("codes = %v", got)
	}
	if res.Crunch != nil || res.JSON != "" {
		t.Error("diagnose mode must not crunch or emit")
	}
	var names []string
	for _, p := range res.Timing.Report().Phases {
		names = append(names, p.Name)
	}
	if want := []string{"parse", "bind", "rewrite"}; !slices.Equal(names, want) {
		t.Errorf("phases = %v, want %v", names, want)
	}
}

func TestProcessJSON(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		valid bool
	}{
		{"object", `{"a": [1, 2.50, null], "b": "x"}`, `{"a":[1,2.5,null],"b":"x"}`, true},
		{"scalar", `-1000`, `-1e3`, true},
		{"identifier", `[1, foo]`, `[1,]`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, tc.src, defaultOptions(ModeJSON))
			if res.JSON != tc.want || res.JSONValid != tc.valid {
				t.Fatalf("got %q valid=%v, want %q valid=%v", res.JSON, res.JSONValid, tc.want, tc.valid)
			}
			if !tc.valid && !slices.Contains(codes(res.Bag), diag.JSONNotRepresentable) {
				t.Errorf("codes = %v", codes(res.Bag))
			}
		})
	}
}

func TestProcessCrunch(t *testing.T) {
	res := run(t, "function outer(longName) { return longName + longName; }\nouter(1);\n", defaultOptions(ModeCrunch))
	if res.Crunch == nil {
		t.Fatal("crunch report missing")
	}
	var found bool
	for _, e := range res.Crunch.Entries {
		if e.Name == "longName" {
			found = true
			if e.Crunched != "a" {
				t.Errorf("longName crunched to %q, want a", e.Crunched)
			}
		}
		if e.Name == "outer" && e.Crunched != "" {
			t.Errorf("global outer must keep its name, got %q", e.Crunched)
		}
	}
	if !found {
		t.Errorf("no entry for longName in %+v", res.Crunch.Entries)
	}

	disabled := defaultOptions(ModeCrunch)
	disabled.Config.Crunch.Enabled = false
	if res := run(t, "var x;", disabled); res.Crunch != nil {
		t.Error("crunch ran while disabled")
	}
}

func TestWarningsAsErrors(t *testing.T) {
	opts := defaultOptions(ModeDiagnose)
	if run(t, "foo();", opts).Failed() {
		t.Fatal("an undeclared function is only a warning by default")
	}
	opts.Config.Analysis.WarningsAsErrors = true
	if !run(t, "foo();", opts).Failed() {
		t.Fatal("warnings-as-errors should promote the warning")
	}
	opts.Config.Analysis.WarningsAsErrors = false
	opts.Config.Analysis.MaxLevel = 2
	if n := run(t, "foo();", opts).Bag.Len(); n != 0 {
		t.Fatalf("max-level 2 should drop level 3 diagnostics, got %d", n)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("jsmin", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions(ModeJSON)
	opts.Cache = cache
	opts.Metrics = &Metrics{}

	first := run(t, `{"k": [true, "v"], "k": 1}`, opts)
	second := run(t, `{"k": [true, "v"], "k": 1}`, opts)
	if first.Cached || !second.Cached {
		t.Fatalf("cached: first=%v second=%v", first.Cached, second.Cached)
	}
	if second.JSON != first.JSON || second.JSONValid != first.JSONValid {
		t.Errorf("cached output %q differs from %q", second.JSON, first.JSON)
	}
	if !slices.Equal(codes(first.Bag), codes(second.Bag)) {
		t.Errorf("cached diagnostics %v differ from %v", codes(second.Bag), codes(first.Bag))
	}
	if second.Program != nil {
		t.Error("a cached result carries no tree")
	}

	opts.Config.Analysis.KnownGlobals = []string{"jQuery"}
	if run(t, `{"k": [true, "v"], "k": 1}`, opts).Cached {
		t.Error("a config change must miss the cache")
	}

	snap := opts.Metrics.Snapshot()
	if snap.DiskHits != 1 || snap.DiskMisses != 2 || snap.UnitsDone != 3 {
		t.Errorf("metrics = %+v", snap)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if run(t, `{"k": [true, "v"], "k": 1}`, opts).Cached {
		t.Error("DropAll should empty the cache")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.js"), "var b = 2;\n")
	writeFile(t, filepath.Join(dir, "lib", "a.js"), "var a = ;\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep.js"), "var dep;\n")
	writeFile(t, filepath.Join(dir, ".git", "hook.js"), "var hook;\n")
	writeFile(t, filepath.Join(dir, "data.json"), "{}\n")

	sink := &recordingSink{}
	opts := defaultOptions(ModeDiagnose)
	opts.Jobs = 2
	opts.Progress = sink
	opts.EnableTimings = true
	opts.Metrics = &Metrics{}

	out, err := ProcessDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(out.Units))
	}
	if filepath.Base(out.Units[0].Path) != "b.js" || filepath.Base(out.Units[1].Path) != "a.js" {
		t.Errorf("order = %s, %s", out.Units[0].Path, out.Units[1].Path)
	}
	if !out.HasErrors() || out.Units[0].Failed() {
		t.Error("only lib/a.js has a syntax error")
	}
	if !slices.Contains(codes(out.Bag()), diag.SyntaxError) {
		t.Errorf("merged codes = %v", codes(out.Bag()))
	}
	if rep := out.Timing.Report(); len(rep.Phases) == 0 || rep.Phases[0].Count != 2 {
		t.Errorf("aggregate timings = %+v", rep)
	}
	if snap := opts.Metrics.Snapshot(); snap.UnitsDone != 2 || snap.UnitsFailed != 1 {
		t.Errorf("metrics = %+v", snap)
	}

	var queued, finished int
	for _, ev := range sink.events {
		switch {
		case ev.Status == StatusQueued:
			queued++
		case ev.Stage == "" && (ev.Status == StatusDone || ev.Status == StatusError):
			finished++
		}
	}
	if queued != 2 || finished != 2 {
		t.Errorf("queued=%d finished=%d", queued, finished)
	}
}

func TestProcessFileMissing(t *testing.T) {
	res, err := ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"), defaultOptions(ModeDiagnose))
	if err != nil {
		t.Fatal(err)
	}
	if got := codes(res.Bag); !slices.Equal(got, []diag.Code{diag.IOLoadFileError}) || !res.Failed() {
		t.Errorf("codes = %v", got)
	}
}

func TestProcessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Process(ctx, source.NewVirtualDocument("c.js", "var a;"), defaultOptions(ModeDiagnose))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestListSourcesByMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.js"), "")
	writeFile(t, filepath.Join(dir, "y.JSON"), "")
	files, err := ListSources(dir, ModeJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "y.JSON" {
		t.Errorf("files = %v", files)
	}
}
