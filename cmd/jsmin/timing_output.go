package main

import (
	"fmt"
	"io"
)

// printTimings writes per-phase timings and the run counters. Directory runs
// sum the phases of all units, so each phase shows its unit count.
func printTimings(out io.Writer, run *runOutput) {
	if out == nil || run == nil {
		return
	}
	if run.timing != nil {
		fmt.Fprint(out, run.timing.Summary())
	}
	snap := run.metrics.Snapshot()
	if run.isDir || snap.DiskHits+snap.DiskMisses > 0 {
		fmt.Fprintln(out, snap.String())
	}
}
