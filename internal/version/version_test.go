package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestInfoString(t *testing.T) {
	cases := []struct {
		name string
		info Info
		want string
	}{
		{"plain", Info{Version: "1.2.3"}, "jsmin 1.2.3"},
		{"commit", Info{Version: "1.2.3", GitCommit: "abc123def456"}, "jsmin 1.2.3 (abc123d)"},
		{"full", Info{Version: "0.1.0-dev", GitCommit: "abc", BuildDate: "2026-01-15"}, "jsmin 0.1.0-dev (abc, 2026-01-15)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestColoredWithoutColor(t *testing.T) {
	prevNo, prevVersion := color.NoColor, Version
	t.Cleanup(func() { color.NoColor, Version = prevNo, prevVersion })
	color.NoColor = true

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.5", "nightly"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestCurrent(t *testing.T) {
	if Current().GoVersion == "" {
		t.Error("GoVersion should be set")
	}
}
