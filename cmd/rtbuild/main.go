// Package main implements the rtbuild CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rtbuild/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "rtbuild",
	Short:         "Build compiler-rt builtins for a compilation target",
	Long:          `rtbuild resolves which compiler-rt builtins a target needs, with which toolchain and flags, and archives them into a static library`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		return startProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		stopProfiling(cmd)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to rtbuild.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("target", "", "target identifier (default: $TARGET)")
	rootCmd.PersistentFlags().String("host", "", "host identifier (default: $HOST)")
	rootCmd.PersistentFlags().String("target-path", "", "extra spec search path (default: $RUST_TARGET_PATH)")
	rootCmd.PersistentFlags().String("float-policy", "", "soft-float exclusion policy (subvariant|hf-suffix)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|stage|detail)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
}

// main runs the root command. Every failure is fatal: the error is printed
// and the process exits with 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		stopProfiling(rootCmd)
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

func applyColorMode(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch value {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
