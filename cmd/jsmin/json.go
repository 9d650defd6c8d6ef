package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsmin/internal/driver"
)

var jsonCmd = &cobra.Command{
	Use:   "json [flags] <file.json|directory|->",
	Short: "Minify JSON values",
	Long: `Read each input as a single JavaScript value and print it as minified JSON.
Directories print one "path<TAB>json" line per *.json file.`,
	Args: cobra.ExactArgs(1),
	RunE: runJSON,
}

func init() {
	jsonCmd.Flags().String("format", "pretty", "diagnostics format on stderr (pretty|short|json|sarif)")
	jsonCmd.Flags().Bool("allow-invalid", false, "print values that are not valid JSON instead of failing")
	addAnalysisFlags(jsonCmd)
}

func runJSON(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	allowInvalid, err := cmd.Flags().GetBool("allow-invalid")
	if err != nil {
		return fmt.Errorf("failed to get allow-invalid flag: %w", err)
	}
	run, err := runTarget(cmd, s, driver.ModeJSON, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, u := range run.units {
		if !u.JSONValid {
			invalid++
			if !allowInvalid {
				continue
			}
		}
		if u.Failed() {
			continue
		}
		if run.isDir {
			fmt.Fprintf(out, "%s\t%s\n", u.Path, u.JSON)
		} else {
			fmt.Fprintln(out, u.JSON)
		}
	}

	if err := renderDiagnostics(cmd.ErrOrStderr(), os.Stderr, s, run, os.Args); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), run)
	}
	if run.failed() || (invalid > 0 && !allowInvalid) {
		dumpTraceRing(cmd.ErrOrStderr())
		return errFailed
	}
	return nil
}
