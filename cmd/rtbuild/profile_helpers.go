package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rtbuild/internal/prof"
)

var activeProfile *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpuprofile")
	if err != nil {
		return err
	}
	memPath, err := flags.GetString("memprofile")
	if err != nil {
		return err
	}
	session, err := prof.Start(prof.Options{CPUPath: cpuPath, MemPath: memPath})
	if err != nil {
		return fmt.Errorf("profiling: %w", err)
	}
	activeProfile = session
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	if activeProfile == nil {
		return
	}
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
	activeProfile = nil
}
