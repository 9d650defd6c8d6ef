package diag

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

// PolicyReporter applies build policy before forwarding: warnings may be
// promoted to errors, and diagnostics above MaxLevel are dropped.
type PolicyReporter struct {
	Next             Reporter
	WarningsAsErrors bool
	MaxLevel         Level
}

func (r PolicyReporter) Report(d Diagnostic) {
	if r.Next == nil || d.Level > r.MaxLevel {
		return
	}
	if r.WarningsAsErrors && !d.IsError && d.Severity == SevWarning {
		d.IsError = true
		d.Severity = SevError
	}
	r.Next.Report(d)
}
