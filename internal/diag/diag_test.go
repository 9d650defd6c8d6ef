package diag

import (
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "single line with column range",
			d: NewWithLevel(UndeclaredVariable, 3, false,
				Location{File: "a.js", StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 8}, "undefined variable: foo"),
			want: "a.js(3,5-8): warning JS1135: undefined variable: foo",
		},
		{
			name: "multi line",
			d: NewWithLevel(SyntaxError, 0, true,
				Location{File: "b.js", StartLine: 1, StartColumn: 2, EndLine: 4, EndColumn: 1}, "bad"),
			want: "b.js(1,2,4,1): error JS1002: bad",
		},
		{
			name: "multi line without columns",
			d: NewWithLevel(SyntaxError, 0, true,
				Location{File: "b.js", StartLine: 1, EndLine: 4}, "bad"),
			want: "b.js(1-4): error JS1002: bad",
		},
		{
			name: "no location",
			d:    NewWithLevel(IOLoadFileError, 0, true, Location{}, "boom"),
			want: ": error IO4001: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewUsesDefaultLevel(t *testing.T) {
	d := New(UndeclaredVariable, Location{}, "")
	if d.Level != 3 || d.IsError || d.Severity != SevWarning {
		t.Fatalf("unexpected classification: %+v", d)
	}
	if d.Message != UndeclaredVariable.Title() {
		t.Fatalf("empty message should fall back to title, got %q", d.Message)
	}

	e := New(SyntaxError, Location{}, "x")
	if !e.IsError || e.Severity != SevError {
		t.Fatalf("syntax error must be an error: %+v", e)
	}

	i := New(VariableNotReferenced, Location{}, "x")
	if i.Severity != SevInfo {
		t.Fatalf("level 4 should display as info, got %v", i.Severity)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		UndeclaredVariable:   "JS1135",
		JSONNotRepresentable: "OUT2001",
		IOLoadFileError:      "IO4001",
		ConfigError:          "CFG5001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if !UndeclaredFunction.IsUndeclared() || SyntaxError.IsUndeclared() {
		t.Fatalf("IsUndeclared misclassifies codes")
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	second := New(SyntaxError, Location{File: "a.js", Start: 10, End: 12}, "second")
	first := New(UndeclaredVariable, Location{File: "a.js", Start: 1, End: 2}, "first")
	if !bag.Add(second) || !bag.Add(first) {
		t.Fatalf("bag refused diagnostics below limit")
	}
	if bag.Add(first) {
		t.Fatalf("bag accepted diagnostic above limit")
	}
	bag.Sort()
	if bag.Items()[0].Message != "first" {
		t.Fatalf("sort order wrong: %v", bag.Items())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("HasErrors/HasWarnings mismatch")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := New(DuplicateName, Location{File: "a.js", Start: 1, End: 2}, "dup")
	r.Report(d)
	r.Report(d)
	other := d
	other.Primary.Start = 5
	r.Report(other)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestPolicyReporter(t *testing.T) {
	bag := NewBag(10)
	r := PolicyReporter{Next: BagReporter{Bag: bag}, WarningsAsErrors: true, MaxLevel: 3}
	r.Report(New(UndeclaredVariable, Location{}, ""))
	r.Report(New(VariableNotReferenced, Location{}, ""))
	if bag.Len() != 1 {
		t.Fatalf("level 4 diagnostic should be filtered, got %d items", bag.Len())
	}
	if !bag.Items()[0].IsError || bag.Items()[0].Severity != SevError {
		t.Fatalf("warning not promoted: %+v", bag.Items()[0])
	}
}

func TestBagDroppedAndMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SyntaxError, Location{File: "a.js"}, "kept"))
	a.Add(New(SyntaxError, Location{File: "a.js"}, "dropped"))
	b := NewBag(5)
	b.Add(New(UndeclaredFunction, Location{File: "b.js"}, "warn"))

	total := NewBag(1)
	total.Merge(a)
	total.Merge(b)
	if total.Len() != 2 || total.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d, want 2 and 1", total.Len(), total.Dropped())
	}
	errs, warns, infos := total.Counts()
	if errs != 1 || warns != 1 || infos != 0 {
		t.Errorf("Counts = %d/%d/%d", errs, warns, infos)
	}
	var nilBag *Bag
	if nilBag.Len() != 0 || nilBag.HasErrors() || nilBag.Dropped() != 0 {
		t.Error("nil bag must read as empty")
	}
}
