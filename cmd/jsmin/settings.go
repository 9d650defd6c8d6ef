package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jsmin/internal/diagfmt"
	"jsmin/internal/project"
)

// settings is the project config with command-line flags applied on top,
// plus the presentation options that never reach the driver.
type settings struct {
	cfg project.Config

	color    colorMode
	quiet    bool
	timings  bool
	jobs     int
	ui       uiMode
	useCache bool

	pathMode  diagfmt.PathMode
	baseDir   string
	context   int8
	withNotes bool
}

// addAnalysisFlags registers the flags shared by diag, json and crunch.
func addAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("strip-debug", false, "remove debugger statements and debug namespace calls")
	f.StringSlice("debug-lookup", nil, "debug namespace to strip (repeatable, replaces the configured list)")
	f.StringSlice("known-global", nil, "global name that is not reported as undeclared (repeatable)")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("report-unreferenced", false, "report declared but unreferenced variables")
	f.Int("max-level", 4, "drop diagnostics less severe than this level (0..4)")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	f.Int("context", 0, "source lines shown around each diagnostic (pretty format)")
	f.Bool("with-notes", false, "include diagnostic notes in output")
}

// startDir is where config discovery begins for target.
func startDir(target string) string {
	if target == "-" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// loadSettings reads the config for target and applies the flags of cmd.
func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	local := cmd.Flags()

	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
	} else {
		cfg, err = project.Discover(startDir(target))
	}
	if err != nil {
		return nil, err
	}

	s := &settings{}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.jobs, err = root.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.jobs < 0 {
		return nil, fmt.Errorf("--jobs must not be negative")
	}
	uiStr, err := root.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return nil, err
	}

	if err := applyString(root, "color", &cfg.Output.Color); err != nil {
		return nil, err
	}
	if err := applyInt(root, "max-diagnostics", &cfg.Output.MaxDiagnostics); err != nil {
		return nil, err
	}
	if err := applyString(root, "cache-dir", &cfg.Cache.Dir); err != nil {
		return nil, err
	}
	if root.Changed("cache-dir") {
		cfg.Cache.Enabled = true
	}
	noCache, err := root.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	s.useCache = cfg.Cache.Enabled && !noCache

	if local.Lookup("format") != nil {
		if err := applyString(local, "format", &cfg.Output.Format); err != nil {
			return nil, err
		}
	}
	for _, apply := range []func() error{
		func() error { return applyBool(local, "strip-debug", &cfg.Analysis.StripDebug) },
		func() error { return applyBool(local, "warnings-as-errors", &cfg.Analysis.WarningsAsErrors) },
		func() error { return applyBool(local, "report-unreferenced", &cfg.Analysis.ReportUnreferenced) },
		func() error { return applyInt(local, "max-level", &cfg.Analysis.MaxLevel) },
		func() error { return applySlice(local, "debug-lookup", &cfg.Analysis.DebugLookups, false) },
		func() error { return applySlice(local, "known-global", &cfg.Analysis.KnownGlobals, true) },
	} {
		if err := apply(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.cfg = cfg
	s.color = colorMode(cfg.Output.Color)

	pathStr, err := local.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(pathStr)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathStr)
	}
	s.pathMode = mode
	if wd, err := os.Getwd(); err == nil {
		s.baseDir = wd
	}

	contextLines, err := local.GetInt("context")
	if err != nil {
		return nil, fmt.Errorf("failed to get context flag: %w", err)
	}
	if s.context, err = safecast.Conv[int8](contextLines); err != nil || s.context < 0 {
		return nil, fmt.Errorf("invalid --context value %d", contextLines)
	}
	if s.withNotes, err = local.GetBool("with-notes"); err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	return s, nil
}

// Флаги перекрывают конфиг только если заданы явно.

func applyString(fs *pflag.FlagSet, name string, dst *string) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func applyInt(fs *pflag.FlagSet, name string, dst *int) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func applyBool(fs *pflag.FlagSet, name string, dst *bool) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func applySlice(fs *pflag.FlagSet, name string, dst *[]string, appendTo bool) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetStringSlice(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if appendTo {
		*dst = append(*dst, v...)
	} else {
		*dst = v
	}
	return nil
}
