package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jsmin/internal/crunch"
	"jsmin/internal/driver"
)

var crunchCmd = &cobra.Command{
	Use:   "crunch [flags] <file.js|directory|->",
	Short: "Show the short names assigned to local variables",
	Long:  `Bind JavaScript sources, assign crunched names to every local binding that can be renamed and print the resulting table`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCrunch,
}

func init() {
	crunchCmd.Flags().String("format", "pretty", "diagnostics format on stderr (pretty|short|json|sarif)")
	crunchCmd.Flags().String("report", "table", "crunch report format (table|json|yaml)")
	crunchCmd.Flags().StringSlice("reserved", nil, "name never handed out by the crunch pass (repeatable)")
	addAnalysisFlags(crunchCmd)
}

// unitReport is one file of a json/yaml crunch report.
type unitReport struct {
	File   string         `json:"file" yaml:"file"`
	Cached bool           `json:"cached,omitempty" yaml:"cached,omitempty"`
	Report *crunch.Report `json:"report" yaml:"report"`
}

func runCrunch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	reportFormat, err := cmd.Flags().GetString("report")
	if err != nil {
		return fmt.Errorf("failed to get report flag: %w", err)
	}
	switch reportFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported report format %q (must be table, json or yaml)", reportFormat)
	}
	if err := applySlice(cmd.Flags(), "reserved", &s.cfg.Crunch.Reserved, true); err != nil {
		return err
	}
	if !s.cfg.Crunch.Enabled && !s.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "jsmin: crunching is disabled by config ([crunch] enabled = false)")
	}

	run, err := runTarget(cmd, s, driver.ModeCrunch, args[0])
	if err != nil {
		return err
	}
	if err := writeCrunchReports(cmd.OutOrStdout(), reportFormat, run); err != nil {
		return err
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), os.Stderr, s, run, os.Args); err != nil {
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

func writeCrunchReports(w io.Writer, format string, run *runOutput) error {
	reports := make([]unitReport, 0, len(run.units))
	for _, u := range run.units {
		if u.Crunch == nil {
			continue
		}
		reports = append(reports, unitReport{File: u.Path, Cached: u.Cached, Report: u.Crunch})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, r := range reports {
		if run.isDir {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", r.File)
		}
		if err := r.Report.WriteTable(w); err != nil {
			return err
		}
	}
	return nil
}
