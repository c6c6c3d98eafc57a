package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gul/internal/buildpipeline"
	"gul/internal/diagfmt"
	"gul/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.gul|directory]",
	Short: "Compile GUL sources to Rust",
	Long: `Build compiles a file or directory to Rust sources. Without an argument
the project described by the nearest gul.toml is built; command-line flags
override the manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default: [build].out_dir or "+project.DefaultOutDir+")")
	buildCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	buildCmd.Flags().Bool("emit-foreign", true, "write foreign blocks to <out>/<name>.foreign.msgpack")
	buildCmd.Flags().String("crate", "", "crate name for generated headers and the foreign bundle")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

// buildPlan is the merged view of manifest and flags.
type buildPlan struct {
	target      string
	outDir      string
	jobs        int
	maxDiags    int
	emitForeign bool
	crate       string
	manifest    *project.Manifest
}

func resolveBuildPlan(cmd *cobra.Command, args []string, global globalOptions) (buildPlan, error) {
	var plan buildPlan
	flags := cmd.Flags()

	start := "."
	if len(args) == 1 {
		start = args[0]
		if st, err := os.Stat(start); err == nil && !st.IsDir() {
			start = filepath.Dir(start)
		}
	}
	manifest, ok, err := project.Load(start)
	if err != nil {
		return plan, err
	}
	plan.maxDiags = global.maxDiagnostics
	plan.emitForeign = true
	if ok {
		plan.manifest = manifest
		cfg := manifest.Config
		plan.target = manifest.SrcDir()
		plan.outDir = manifest.OutDir()
		plan.jobs = cfg.Build.Jobs
		plan.emitForeign = cfg.Build.EmitForeign
		plan.crate = cfg.Package.Name
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			plan.maxDiags = cfg.Build.MaxDiagnostics
		}
	} else if len(args) == 0 {
		return plan, fmt.Errorf("no %s found; pass a file or directory to build", project.ManifestName)
	}

	if len(args) == 1 {
		plan.target = args[0]
	}
	if plan.outDir == "" {
		plan.outDir = project.DefaultOutDir
	}
	if flags.Changed("out") {
		if plan.outDir, err = flags.GetString("out"); err != nil {
			return plan, err
		}
	}
	if flags.Changed("jobs") {
		if plan.jobs, err = flags.GetInt("jobs"); err != nil {
			return plan, err
		}
	}
	if flags.Changed("emit-foreign") {
		if plan.emitForeign, err = flags.GetBool("emit-foreign"); err != nil {
			return plan, err
		}
	}
	if flags.Changed("crate") {
		if plan.crate, err = flags.GetString("crate"); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	plan, err := resolveBuildPlan(cmd, args, global)
	if err != nil {
		return err
	}
	if plan.manifest != nil {
		logger.Info("using manifest",
			zap.String("path", plan.manifest.Path),
			zap.String("package", plan.manifest.Config.Package.Name))
	}

	req := &buildpipeline.BuildRequest{
		Target:         plan.target,
		OutDir:         plan.outDir,
		Jobs:           plan.jobs,
		MaxDiagnostics: plan.maxDiags,
		EmitForeign:    plan.emitForeign,
		EnableTimings:  global.timings,
		CrateName:      plan.crate,
		Logger:         logger,
	}

	var result buildpipeline.BuildResult
	if !global.quiet && shouldUseTUI(mode) {
		files, ferr := buildpipeline.TargetFiles(plan.target)
		if ferr != nil {
			return ferr
		}
		result, err = runBuildWithUI(cmd.Context(), "gul build "+plan.target, files, req)
	} else {
		result, err = buildpipeline.Build(cmd.Context(), req)
	}

	if result.Bag != nil && result.Bag.Len() > 0 {
		if perr := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, global.prettyOpts(os.Stderr)); perr != nil {
			return perr
		}
	}
	if global.timings && !global.quiet {
		printStageTimings(cmd.ErrOrStderr(), result.Timings)
	}
	if err != nil {
		if errors.Is(err, buildpipeline.ErrDiagnostics) {
			if !global.quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
			}
			return errExitCode
		}
		return err
	}
	if !global.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
		if result.ForeignPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "foreign blocks: %s\n", result.ForeignPath)
		}
	}
	return nil
}
