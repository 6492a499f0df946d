package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rtbuild/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove the build output directory",
	Long:  "Remove the output directory holding objects, archives and stamps.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	targetDir := ""
	if len(args) > 0 && args[0] != "" {
		targetDir = args[0]
	} else {
		cfg, err := config.Load(configPath, ".")
		if err != nil {
			return err
		}
		targetDir = cfg.OutputDir()
	}
	return removeOutputDir(cmd, targetDir)
}

func removeOutputDir(cmd *cobra.Command, dir string) error {
	out := cmd.OutOrStdout()
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(out, "%s not found\n", dir)
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(out, "removed %s\n", dir)
	return nil
}
