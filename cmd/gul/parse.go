package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gul/internal/diagfmt"
	"gul/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.gul|directory>",
	Short: "Parse GUL sources and print their syntax trees",
	Long:  `Parse builds the syntax tree of a file, or of every .gul file below a directory, and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	out := cmd.OutOrStdout()
	pretty := global.prettyOpts(os.Stderr)

	if !st.IsDir() {
		result, err := driver.Parse(target, global.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		result.Bag.Sort()
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, pretty); err != nil {
			return err
		}
		if err := diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return errExitCode
		}
		return nil
	}

	fs, results, err := driver.CompileDir(cmd.Context(), target, driver.Options{
		Stage:          driver.StageSyntax,
		MaxDiagnostics: global.maxDiagnostics,
		Jobs:           jobs,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	failed := false
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", relPath(target, res.Path))
		if err := diagfmt.Pretty(os.Stderr, res.Bag, fs, pretty); err != nil {
			return err
		}
		if res.Builder != nil {
			if err := diagfmt.FormatASTPretty(out, res.Builder, res.ASTFile, fs); err != nil {
				return err
			}
		}
		failed = failed || res.Bag.HasErrors()
	}
	if failed {
		return errExitCode
	}
	return nil
}
