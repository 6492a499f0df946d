package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rtbuild/internal/buildpipeline"
	"rtbuild/internal/fetch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch, compile and archive the builtins for a target",
	Long:  "Resolve the target, fetch compiler-rt (unless --src is given), compile the composed builtins and archive them into lib<name>.a.",
	Args:  cobra.NoArgs,
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().Int("jobs", 0, "parallel compile jobs (default: config, then number of CPUs)")
	buildCmd.Flags().String("out-dir", "", "output directory (default: config out_dir)")
	buildCmd.Flags().String("src", "", "use an existing compiler-rt checkout instead of fetching")
	buildCmd.Flags().Bool("keep-src", false, "keep the fetched checkout")
	buildCmd.Flags().Bool("print-commands", false, "print every compiler and archiver invocation")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

// pipelineRunner runs compiler and archiver invocations; nil uses os/exec.
var pipelineRunner buildpipeline.Runner

func buildExecution(cmd *cobra.Command, _ []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	srcDir, err := cmd.Flags().GetString("src")
	if err != nil {
		return err
	}
	keepSrc, err := cmd.Flags().GetBool("keep-src")
	if err != nil {
		return err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must not be negative")
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd, true)
	if err != nil {
		return err
	}
	report, err := resolvePlan(cmd, s)
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = s.cfg.OutputDir()
	}
	if jobs == 0 {
		jobs = s.cfg.Build.Jobs
	}

	req := &buildpipeline.BuildRequest{
		Plan:          report.Plan,
		OutputDir:     outDir,
		LibName:       s.cfg.Build.Lib,
		Toolchain:     *report.Toolchain,
		Jobs:          jobs,
		PrintCommands: printCommands,
		Stdout:        cmd.OutOrStdout(),
		Runner:        pipelineRunner,
	}
	if srcDir != "" {
		req.SourceRoot = srcDir
	} else {
		fetcher, err := fetch.New(s.cfg.Upstream.Method, s.cfg.Upstream.URL, s.cfg.Upstream.Ref)
		if err != nil {
			return err
		}
		tmp, err := os.MkdirTemp("", "compiler-rt-")
		if err != nil {
			return fmt.Errorf("failed to create checkout dir: %w", err)
		}
		if keepSrc {
			defer fmt.Fprintf(cmd.ErrOrStderr(), "kept sources in %s\n", tmp)
		} else {
			defer os.RemoveAll(tmp)
		}
		req.Fetcher = fetcher
		req.SourceRoot = filepath.Join(tmp, "compiler-rt")
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "fetching %s\n", fetcher.Describe())
		}
	}

	var result buildpipeline.BuildResult
	if shouldUseTUI(mode, quiet) && !printCommands {
		result, err = runBuildWithUI(cmd.Context(), planTitle(report.Plan), report.Sources, req)
	} else {
		result, err = buildpipeline.Build(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d objects, %s)\n",
			color.New(color.FgGreen, color.Bold).Sprint("built"),
			result.ArchivePath, len(result.Objects), shortFingerprint(result.Fingerprint))
	}
	if showTimings {
		return printStageTimings(cmd.OutOrStdout(), result.Timings)
	}
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
