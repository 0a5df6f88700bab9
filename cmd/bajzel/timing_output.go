package main

import (
	"fmt"
	"io"

	"bajzel/internal/observ"
)

// printPhaseTimings writes the per-phase summary; nothing when no phase ran.
func printPhaseTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || len(timer.Report().Phases) == 0 {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
