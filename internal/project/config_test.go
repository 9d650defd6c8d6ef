package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseTOML(t *testing.T) {
	src := `
[analysis]
strip-debug = true
known-globals = ["jQuery", "$"]
max-depth = 64

[output]
format = "json"

[crunch]
enabled = false
reserved = ["$super"]
`
	cfg, err := ParseTOML("jsmin.toml", []byte(src))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if !cfg.Analysis.StripDebug || cfg.Analysis.MaxDepth != 64 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if !slices.Equal(cfg.Analysis.KnownGlobals, []string{"jQuery", "$"}) {
		t.Errorf("known-globals = %v", cfg.Analysis.KnownGlobals)
	}
	if cfg.Output.Format != "json" || cfg.Output.MaxDiagnostics != 100 {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Crunch.Enabled || !slices.Equal(cfg.Crunch.Reserved, []string{"$super"}) {
		t.Errorf("crunch = %+v", cfg.Crunch)
	}
	if len(cfg.Analysis.DebugLookups) == 0 {
		t.Error("default debug lookups should survive a partial file")
	}
}

func TestParseYAML(t *testing.T) {
	src := `
analysis:
  warnings-as-errors: true
  debug-lookups: [Log]
output:
  format: short
  color: "off"
`
	cfg, err := ParseYAML("jsmin.yaml", []byte(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if !cfg.Analysis.WarningsAsErrors || !slices.Equal(cfg.Analysis.DebugLookups, []string{"Log"}) {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Output.Format != "short" || cfg.Output.Color != "off" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if !cfg.Crunch.Enabled {
		t.Error("crunch should stay enabled by default")
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	cfg, err := ParseYAML("jsmin.yaml", nil)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		load func() error
		want error
	}{
		{"toml unknown key", func() error {
			_, err := ParseTOML("x.toml", []byte("[analysis]\nstrip_debug = true\n"))
			return err
		}, ErrUnknownKey},
		{"yaml unknown key", func() error {
			_, err := ParseYAML("x.yaml", []byte("crunch:\n  rename: true\n"))
			return err
		}, ErrUnknownKey},
		{"bad format", func() error {
			_, err := ParseTOML("x.toml", []byte("[output]\nformat = \"xml\"\n"))
			return err
		}, ErrInvalidValue},
		{"bad level", func() error {
			_, err := ParseYAML("x.yaml", []byte("analysis:\n  max-level: 9\n"))
			return err
		}, ErrInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.load(); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "widgets")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "jsmin.yaml")
	if err := os.WriteFile(cfgPath, []byte("crunch:\n  enabled: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(nested, "app.js")
	if err := os.WriteFile(file, []byte("var a;"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindConfig(file)
	if err != nil || !ok || got != cfgPath {
		t.Fatalf("FindConfig = %q %v %v, want %q", got, ok, err, cfgPath)
	}
	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %q %v %v", dir, ok, err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Crunch.Enabled || cfg.Path != cfgPath {
		t.Errorf("Discover = %+v", cfg)
	}
}

func TestFindConfigPrefersTOML(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"jsmin.yaml", "jsmin.toml"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	got, ok, err := FindConfig(root)
	if err != nil || !ok || filepath.Base(got) != "jsmin.toml" {
		t.Fatalf("FindConfig = %q %v %v", got, ok, err)
	}
}

func TestFingerprint(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal configs must share a fingerprint")
	}
	b.Output.Format = "json"
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("output settings must not change the fingerprint")
	}
	b.Crunch.Reserved = []string{"x"}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("crunch settings must change the fingerprint")
	}
}

func TestDigest(t *testing.T) {
	d := ContentDigest("var a;")
	if d.IsZero() || len(d.String()) != 64 {
		t.Fatalf("digest = %s", d)
	}
	if Combine(d) == Combine(d, d) {
		t.Error("Combine must depend on every input")
	}
}
