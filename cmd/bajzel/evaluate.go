package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bajzel/internal/diagfmt"
	"bajzel/internal/driver"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] file.fuzl",
	Short: "Evaluate a fuzl file and dump the resulting groups and generator",
	Long: `Eval folds the statements of a fuzl file into groups and the generator
definition. msgpack output is a binary snapshot meant for tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runEval(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := compileFile(cmd, args[0], driver.StageEval)
	defer finish(cmd, res)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatEnvJSON(out, res.Env)
	case "msgpack":
		return diagfmt.FormatEnvMsgpack(out, res.Env)
	default:
		return diagfmt.FormatEnvPretty(out, res.Env)
	}
}
