package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	p := tm.Begin("parse")
	tm.End(p, "12 nodes")
	b := tm.Begin("bind")
	tm.End(b, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != "parse" || rep.Phases[0].Note != "12 nodes" {
		t.Errorf("unexpected first phase %+v", rep.Phases[0])
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "// 12 nodes") || !strings.Contains(sum, "total") {
		t.Errorf("summary:\n%s", sum)
	}
}

func TestTimerMerge(t *testing.T) {
	agg := NewTimer()
	for range 3 {
		unit := NewTimer()
		unit.End(unit.Begin("parse"), "")
		unit.End(unit.Begin("emit"), "")
		agg.Merge(unit)
	}
	rep := agg.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	for _, p := range rep.Phases {
		if p.Count != 3 {
			t.Errorf("%s count = %d, want 3", p.Name, p.Count)
		}
	}
	if !strings.Contains(agg.Summary(), "x3") {
		t.Errorf("summary should show counts:\n%s", agg.Summary())
	}
}

func TestEmptyReport(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Errorf("got %+v", rep)
	}
}
