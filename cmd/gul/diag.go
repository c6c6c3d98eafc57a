package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gul/internal/diag"
	"gul/internal/diagfmt"
	"gul/internal/driver"
	"gul/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.gul|directory>",
	Short: "Run diagnostics on a GUL source file or directory",
	Long:  `Run the compiler over a file, or over all .gul files within a directory, and report syntax and semantic issues`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().String("stages", "all", "diagnostic stages to run (tokenize|syntax|sema|all)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("preview", false, "show the source change of each suggestion")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("emit-rust", false, "print the generated Rust of a clean single file")
}

type diagOptions struct {
	format           string
	stage            driver.Stage
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	withNotes        bool
	suggest          bool
	preview          bool
	fullPath         bool
	emitRust         bool
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	flags := cmd.Flags()
	var opts diagOptions
	var err error
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	stages, err := flags.GetString("stages")
	if err != nil {
		return opts, fmt.Errorf("failed to get stages flag: %w", err)
	}
	switch driver.Stage(stages) {
	case driver.StageTokenize, driver.StageSyntax, driver.StageSema, driver.StageAll:
		opts.stage = driver.Stage(stages)
	default:
		return opts, fmt.Errorf("unknown stages value: %s (expected tokenize|syntax|sema|all)", stages)
	}
	if opts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return opts, err
	}
	if opts.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return opts, err
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, err
	}
	if opts.suggest, err = flags.GetBool("suggest"); err != nil {
		return opts, err
	}
	if opts.preview, err = flags.GetBool("preview"); err != nil {
		return opts, err
	}
	if opts.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return opts, err
	}
	if opts.emitRust, err = flags.GetBool("emit-rust"); err != nil {
		return opts, err
	}
	return opts, nil
}

// runDiagnose compiles the target up to the requested stage, prints the
// merged diagnostics and fails when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	driverOpts := driver.Options{
		Stage:          opts.stage,
		MaxDiagnostics: global.maxDiagnostics,
		Jobs:           opts.jobs,
		EnableTimings:  global.timings,
		Logger:         logger,
	}
	var (
		fs      *source.FileSet
		results []*driver.FileResult
	)
	if st.IsDir() {
		fs, results, err = driver.CompileDir(cmd.Context(), target, driverOpts)
	} else {
		var single *driver.FileResult
		fs, single, err = driver.Compile(cmd.Context(), target, driverOpts)
		results = []*driver.FileResult{single}
	}
	if err != nil {
		return fmt.Errorf("diagnose failed: %w", err)
	}

	bag := driver.Merge(results, global.maxDiagnostics)
	if opts.noWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	logger.Debug("diagnostics collected",
		zap.Int("files", len(results)),
		zap.Int("errors", bag.ErrorCount()),
		zap.Int("warnings", bag.WarningCount()))

	if err := printDiagnostics(cmd.OutOrStdout(), bag, fs, global, opts); err != nil {
		return err
	}

	if opts.emitRust && len(results) == 1 && results[0].Output != nil {
		if _, err := io.WriteString(cmd.OutOrStdout(), results[0].Output.Source); err != nil {
			return err
		}
	}

	if bag.HasErrors() || (opts.warningsAsErrors && bag.HasWarnings()) {
		return errExitCode
	}
	if !global.quiet && opts.format == "pretty" && bag.Len() == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no issues in %d file(s)\n", len(results))
	}
	return nil
}

func printDiagnostics(out io.Writer, bag *diag.Bag, fs *source.FileSet, global globalOptions, opts diagOptions) error {
	mode := diagfmt.PathModeAuto
	if opts.fullPath {
		mode = diagfmt.PathModeAbsolute
	}
	switch opts.format {
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         mode,
			Max:              global.maxDiagnostics,
			IncludeNotes:     opts.withNotes,
			IncludeFixes:     opts.suggest,
			IncludePreviews:  opts.preview,
		})
	case "short":
		return diagfmt.Short(out, bag, fs, mode, opts.withNotes)
	default:
		pretty := global.prettyOpts(os.Stdout)
		pretty.PathMode = mode
		pretty.ShowNotes = opts.withNotes
		pretty.ShowFixes = opts.suggest || opts.preview
		pretty.ShowPreview = opts.preview
		return diagfmt.Pretty(out, bag, fs, pretty)
	}
}
