package main

import (
	"fmt"
	"io"
	"os"

	"jsmin/internal/diagfmt"
	"jsmin/internal/version"
)

// renderDiagnostics prints the bag of run in the configured format. stream
// is the file w writes to, used for color detection.
func renderDiagnostics(w io.Writer, stream *os.File, s *settings, run *runOutput, args []string) error {
	bag := run.bag
	switch s.cfg.Output.Format {
	case "short":
		return diagfmt.Short(w, bag, s.pathMode, s.baseDir)
	case "json":
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			BaseDir:          s.baseDir,
			Max:              s.cfg.Output.MaxDiagnostics,
			IncludeNotes:     s.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, diagfmt.SarifRunMeta{
			ToolName:       "jsmin",
			ToolVersion:    version.Version,
			InvocationArgs: args,
			PathMode:       s.pathMode,
			BaseDir:        s.baseDir,
		})
	default:
		if bag.Len() == 0 {
			return nil
		}
		if err := diagfmt.Pretty(w, bag, run.docs, diagfmt.PrettyOpts{
			Color:     useColor(s.color, stream),
			Context:   s.context,
			PathMode:  s.pathMode,
			BaseDir:   s.baseDir,
			ShowNotes: s.withNotes,
		}); err != nil {
			return err
		}
		if s.quiet {
			return nil
		}
		_, err := fmt.Fprintln(w, diagfmt.Summary(bag))
		return err
	}
}
