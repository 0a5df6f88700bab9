package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"bajzel/internal/ast"
	"bajzel/internal/diag"
	"bajzel/internal/driver"
	"bajzel/internal/source"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] file.fuzl",
	Short: "Generate random messages from a fuzl file",
	Long: `Gen evaluates a fuzl file and draws random messages from its GENERATE
section. Without --out-dir the raw bytes go to stdout, one sample after
another; with --out-dir every sample is written to <generator>-<index>.bin.
The same --seed always produces the same bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().Uint64("seed", 0, "random seed (default: random, printed to stderr)")
	genCmd.Flags().Int("count", 1, "number of messages to generate")
	genCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	genCmd.Flags().String("out-dir", "", "write each message to a file in this directory")
	genCmd.Flags().String("ui", "auto", "progress UI mode for --out-dir (auto|on|off)")
	genCmd.Flags().Bool("append-term", false, "append the TERM bytes after each message")
}

type genOptions struct {
	seed       uint64
	seedSet    bool
	count      int
	jobs       int
	outDir     string
	appendTerm bool
	ui         uiMode
}

// readGenOptions merges gen flags with the [generate] table; explicit flags win.
func readGenOptions(cmd *cobra.Command) (genOptions, error) {
	flags := cmd.Flags()
	cfg := settings.config
	var opts genOptions
	var err error

	if opts.seed, err = flags.GetUint64("seed"); err != nil {
		return opts, fmt.Errorf("failed to get seed flag: %w", err)
	}
	opts.seedSet = flags.Changed("seed")
	if !opts.seedSet && cfg.IsSet("generate", "seed") {
		opts.seed, opts.seedSet = cfg.Generate.Seed, true
	}

	if opts.count, err = flags.GetInt("count"); err != nil {
		return opts, fmt.Errorf("failed to get count flag: %w", err)
	}
	if !flags.Changed("count") && cfg.IsSet("generate", "count") {
		opts.count = cfg.Generate.Count
	}
	if opts.count < 0 {
		return opts, fmt.Errorf("--count must not be negative")
	}

	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && cfg.IsSet("generate", "jobs") {
		opts.jobs = cfg.Generate.Jobs
	}
	if opts.jobs <= 0 {
		opts.jobs = runtime.GOMAXPROCS(0)
	}

	if opts.outDir, err = flags.GetString("out-dir"); err != nil {
		return opts, fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if !flags.Changed("out-dir") && cfg.IsSet("generate", "out_dir") {
		opts.outDir = cfg.Generate.OutDir
	}

	if opts.appendTerm, err = flags.GetBool("append-term"); err != nil {
		return opts, fmt.Errorf("failed to get append-term flag: %w", err)
	}
	if !flags.Changed("append-term") && cfg.IsSet("generate", "append_term") {
		opts.appendTerm = cfg.Generate.AppendTerm
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	return opts, nil
}

func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to draw a seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func runGen(cmd *cobra.Command, args []string) error {
	opts, err := readGenOptions(cmd)
	if err != nil {
		return err
	}
	if !opts.seedSet {
		if opts.seed, err = randomSeed(); err != nil {
			return err
		}
		if !settings.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "seed: %d\n", opts.seed)
		}
	}

	res, err := compileFile(cmd, args[0], driver.StageEval)
	defer finish(cmd, res)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	gen, err := res.Env.Generator()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	done := res.Timer.Track("generate")
	batch := driver.BatchOptions{
		Count:      opts.count,
		Jobs:       opts.jobs,
		Seed:       opts.seed,
		AppendTerm: opts.appendTerm,
		OutDir:     opts.outDir,
	}
	var result *driver.BatchResult
	if shouldUseTUI(opts.ui, opts.outDir != "") {
		result, err = runBatchWithUI(cmd.Context(), "generating "+gen.Name, res.Env, batch)
	} else {
		result, err = driver.GenerateBatch(cmd.Context(), res.Env, batch)
	}
	if err != nil {
		done("failed")
		return fmt.Errorf("generation failed: %w", err)
	}
	done(fmt.Sprintf("%d samples", len(result.Samples)))

	if opts.outDir == "" {
		if err := writeSamples(cmd.OutOrStdout(), result.Samples); err != nil {
			return err
		}
	} else if !settings.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d samples to %s\n", len(result.Samples), opts.outDir)
	}

	if result.Short > 0 {
		bag := diag.NewBag(1)
		msg := fmt.Sprintf("%d of %d samples are shorter than OUT_MIN (%d); output is never padded",
			result.Short, len(result.Samples), gen.OutMin)
		bag.Add(diag.New(diag.SevWarning, diag.GenBelowOutMin, generatorSpan(res.Program), msg))
		return renderDiagnostics(cmd, bag, res)
	}
	return nil
}

func writeSamples(w io.Writer, samples []driver.Sample) error {
	for _, s := range samples {
		if _, err := w.Write(s.Data); err != nil {
			return fmt.Errorf("failed to write sample %d: %w", s.Index, err)
		}
	}
	return nil
}

// generatorSpan points diagnostics at the GENERATE header.
func generatorSpan(prog *ast.Program) source.Span {
	if prog == nil {
		return source.Span{}
	}
	for _, st := range prog.Stmts {
		if g, ok := st.(*ast.StartGeneratorDefinition); ok {
			return g.Span()
		}
	}
	return prog.Stmts[len(prog.Stmts)-1].Span()
}
