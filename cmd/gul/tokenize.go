package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gul/internal/diagfmt"
	"gul/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.gul",
	Short: "Tokenize a GUL source file",
	Long:  `Tokenize prints the token stream of a GUL source file, including INDENT and DEDENT tokens`,
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
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], global.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, global.prettyOpts(os.Stderr)); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
