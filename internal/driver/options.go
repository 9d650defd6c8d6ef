package driver

import (
	"jsmin/internal/bind"
	"jsmin/internal/crunch"
	"jsmin/internal/diag"
	"jsmin/internal/project"
)

// Mode selects what a run produces besides diagnostics.
type Mode uint8

const (
	// ModeDiagnose parses, binds and runs the enabled rewrites.
	ModeDiagnose Mode = iota
	// ModeJSON reads each unit as one JSON value and emits it.
	ModeJSON
	// ModeCrunch additionally assigns short names and records the report.
	ModeCrunch
)

func (m Mode) String() string {
	switch m {
	case ModeDiagnose:
		return "diag"
	case ModeJSON:
		return "json"
	case ModeCrunch:
		return "crunch"
	default:
		return "unknown"
	}
}

// Options configures Process, ProcessFile and ProcessDir.
type Options struct {
	// Config should start from project.DefaultConfig; a zero Config keeps
	// only level 0 diagnostics.
	Config        project.Config
	Mode          Mode
	EnableTimings bool
	// Jobs bounds directory parallelism; 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress ProgressSink
	Metrics  *Metrics
}

func (o Options) bindOptions() bind.Options {
	return bind.Options{
		KnownGlobals:       o.Config.Analysis.KnownGlobals,
		MaxDepth:           o.Config.Analysis.MaxDepth,
		ReportUnreferenced: o.Config.Analysis.ReportUnreferenced,
	}
}

func (o Options) crunchOptions() crunch.Options {
	return crunch.Options{Reserved: o.Config.Crunch.Reserved}
}

func (o Options) reporter(bag *diag.Bag) diag.Reporter {
	return diag.PolicyReporter{
		Next:             diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		WarningsAsErrors: o.Config.Analysis.WarningsAsErrors,
		MaxLevel:         diag.Level(o.Config.Analysis.MaxLevel),
	}
}

// cacheKey ties a cached result to the source text, the settings that shape
// it and the mode.
func (o Options) cacheKey(digest project.Digest) project.Digest {
	mode := project.ContentDigest(o.Mode.String())
	return project.Combine(digest, o.Config.Fingerprint(), mode)
}
