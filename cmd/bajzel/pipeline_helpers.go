package main

import (
	"github.com/spf13/cobra"

	"bajzel/internal/diag"
	"bajzel/internal/diagfmt"
	"bajzel/internal/driver"
)

// compileFile runs the pipeline up to stage and renders its diagnostics to
// stderr. The error is the pipeline failure, if any.
func compileFile(cmd *cobra.Command, path string, stage driver.Stage) (*driver.Result, error) {
	opts := driver.Options{
		MaxDiagnostics: settings.maxDiagnostics,
		Stage:          stage,
		// в JSON тайминги едут внутри диагностик
		EmitTimings: settings.timings && settings.diagFormat == "json",
	}
	res, err := driver.Compile(cmd.Context(), path, opts)
	if rerr := renderDiagnostics(cmd, res.Bag, res); rerr != nil {
		return res, rerr
	}
	return res, err
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, res *driver.Result) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if settings.quiet && !bag.HasErrors() {
		return nil
	}
	bag.Sort()
	if settings.diagFormat == "json" {
		return diagfmt.JSON(cmd.ErrOrStderr(), bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              settings.maxDiagnostics,
		})
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     settings.color,
		ShowNotes: true,
	})
	return nil
}

// finish prints timings in pretty mode; JSON mode already carried them.
func finish(cmd *cobra.Command, res *driver.Result) {
	if settings.timings && settings.diagFormat == "pretty" && res != nil {
		printPhaseTimings(cmd.ErrOrStderr(), res.Timer)
	}
}
