package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bajzel/internal/diagfmt"
	"bajzel/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.fuzl",
	Short: "Parse a fuzl source file and print its statements",
	Long:  `Parse prints the statement sequence of a fuzl file, one canonical statement per line, ending with Run`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := compileFile(cmd, args[0], driver.StageParse)
	defer finish(cmd, res)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if format == "json" {
		return diagfmt.FormatProgramJSON(cmd.OutOrStdout(), res.Program)
	}
	return diagfmt.FormatProgramPretty(cmd.OutOrStdout(), res.Program, res.FileSet)
}
