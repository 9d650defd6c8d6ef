package ui

import (
	"errors"
	"strings"
	"testing"

	"jsmin/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"src/a.js", "src/b.js"}
	m := NewProgressModel("diag src", files, nil).(*progressModel)

	steps := []driver.Event{
		{File: "src/a.js", Stage: driver.StageParse, Status: driver.StatusWorking},
		{File: "src/b.js", Status: driver.StatusCached},
		{File: "unknown.js", Status: driver.StatusDone},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}

	if f := m.files[0]; f.label() != "parsing" || f.finished() {
		t.Errorf("a.js = %+v", f)
	}
	if f := m.files[1]; f.label() != "cached" || !f.finished() {
		t.Errorf("b.js = %+v", f)
	}
	if got := m.percent(); got != 0.6 {
		t.Errorf("percent = %v, want 0.6", got)
	}

	view := m.View()
	for _, want := range []string{"diag src [1/2]", "parsing src/a.js", "cached src/b.js"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "✔ diag src [1/2]") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestProgressModelShowsFailures(t *testing.T) {
	m := NewProgressModel("build", []string{"a.js", "b.js"}, nil).(*progressModel)

	m.Update(eventMsg{File: "a.js", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("open a.js: no such file")})
	m.Update(eventMsg{File: "b.js", Stage: driver.StageEmit, Status: driver.StatusWorking})
	m.Update(eventMsg{File: "b.js", Status: driver.StatusDone})

	if !m.files[0].finished() {
		t.Fatalf("a load failure must count as finished")
	}
	if got := m.percent(); got != 1 {
		t.Errorf("percent = %v, want 1", got)
	}
	view := m.View()
	for _, want := range []string{"[2/2]", "error a.js", "open a.js: no such file", "done b.js"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"very/long/path/file.js", 10, "very..."},
		{"abcdef", 3, "abc"},
		{"日本語.js", 8, "日..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
