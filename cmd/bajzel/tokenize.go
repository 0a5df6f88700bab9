package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bajzel/internal/diagfmt"
	"bajzel/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.fuzl",
	Short: "Tokenize a fuzl source file",
	Long:  `Tokenize breaks a fuzl source file ("-" for stdin) into tokens with their leading trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := compileFile(cmd, args[0], driver.StageTokenize)
	defer finish(cmd, res)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
}
