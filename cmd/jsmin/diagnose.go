package main

import (
	"os"

	"github.com/spf13/cobra"

	"jsmin/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.js|directory|->",
	Short: "Run diagnostics on a JavaScript file or directory",
	Long:  `Parse and bind JavaScript sources and report syntax errors, undeclared names and other findings for a file, every *.js file within a directory, or stdin (-)`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	addAnalysisFlags(diagCmd)
}

// runDiagnose prints the diagnostics of the target to stdout and fails
// when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	run, err := runTarget(cmd, s, driver.ModeDiagnose, args[0])
	if err != nil {
		return err
	}
	if err := renderDiagnostics(cmd.OutOrStdout(), os.Stdout, s, run, os.Args); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), run)
	}
	if run.failed() {
		dumpTraceRing(cmd.ErrOrStderr())
		return errFailed
	}
	return nil
}
