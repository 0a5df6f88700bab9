package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bajzel/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bajzel",
	Short: "Random message generator driven by .fuzl layout files",
	Long: `bajzel reads a .fuzl description of a message layout (groups of constant
and randomized fields plus a GENERATE section) and emits random byte
sequences that satisfy it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

// cleanups run after the command returns, last registered first.
var cleanups []func(failed bool)

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress warnings and non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diagnostics-format", "pretty", "diagnostics output format (pretty|json)")
	pf.String("config", "", "path to "+configFileName()+" (default: search upwards from the working directory)")

	registerTraceFlags(pf)

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command and runs the registered cleanups.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	runCleanups(err != nil)
	if err != nil {
		os.Exit(1)
	}
}

func setupRun(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	settings = s

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, traceCleanup)

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, profCleanup)
	return nil
}

func runCleanups(failed bool) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](failed)
	}
	cleanups = nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
