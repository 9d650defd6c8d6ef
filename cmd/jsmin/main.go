package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"jsmin/internal/version"
)

// errFailed signals that diagnostics were already printed and the run
// must exit with status 1 without an extra message.
var errFailed = errors.New("jsmin: errors reported")

var cleanup = func() {}

var rootCmd = &cobra.Command{
	Use:           "jsmin",
	Short:         "JavaScript scope analysis, crunching and JSON emission",
	Long:          `jsmin parses JavaScript, binds its scopes, reports undeclared names and emits minified JSON or crunched names`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		cleanup = func() {
			stopTracing()
			stopProfiling()
		}
		return nil
	},
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(crunchCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd.PersistentFlags())

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "jsmin: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// registerPersistentFlags adds the global flags every command reads.
func registerPersistentFlags(pf *pflag.FlagSet) {
	pf.String("config", "", "config file (default: jsmin.toml or jsmin.yaml found upward from the input)")
	pf.String("color", "", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	pf.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	pf.Bool("no-cache", false, "disable the on-disk result cache")
	pf.String("cache-dir", "", "directory of the on-disk result cache")
	pf.String("ui", "auto", "directory progress display (auto|on|off)")

	pf.String("trace", "", "write trace events to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0=off)")

	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}
