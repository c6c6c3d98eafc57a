package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"gul/internal/diagfmt"
	"gul/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gul",
	Short: "GUL to Rust compiler",
	Long: `gul compiles indentation-based GUL sources into Rust and reports
diagnostics for every stage of the pipeline`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

// logger is built from --log-level before any subcommand runs.
var logger = zap.NewNop()

// errExitCode makes the process exit non-zero after diagnostics were
// already printed.
var errExitCode = errors.New("errors reported")

func main() {
	rootCmd.Version = version.Colored()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		if !errors.Is(err, errExitCode) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	l, err := newLogger(level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// newLogger builds a console logger on stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions
	var err error
	if opts.color, err = flags.GetString("color"); err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch opts.color {
	case "auto", "on", "off":
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", opts.color)
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

func (o globalOptions) useColor(f *os.File) bool {
	return o.color == "on" || (o.color == "auto" && isTerminal(f))
}

func (o globalOptions) prettyOpts(f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       o.useColor(f),
		Context:     1,
		PathMode:    diagfmt.PathModeAuto,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: false,
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// relPath shortens path relative to base when possible.
func relPath(base, path string) string {
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
