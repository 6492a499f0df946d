package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rtbuild/internal/buildpipeline"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive|stamp>",
	Short: "Show how an archive was built",
	Long:  "Decode the build stamp written next to a builtins archive.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	stamp, err := buildpipeline.ReadStamp(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stamp)
	case "pretty":
		return renderStamp(out, &stamp)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderStamp(out io.Writer, s *buildpipeline.Stamp) error {
	kind := "native"
	if s.Toolchain.Cross {
		kind = "cross"
	}
	lines := []string{
		"target:      " + s.Plan.Target,
		"llvm-target: " + s.Plan.LLVMTarget,
		"policy:      " + s.Plan.Policy,
		"flags:       " + flagsOrNone(s.Plan.Flags),
		fmt.Sprintf("toolchain:   cc=%s ar=%s (%s)", s.Toolchain.CC, s.Toolchain.AR, kind),
		fmt.Sprintf("objects:     %d", s.Objects),
		"fingerprint: " + s.Fingerprint,
		"built at:    " + s.BuiltAt.Format(time.RFC3339),
		"elapsed:     " + s.Elapsed.Round(time.Millisecond).String(),
	}
	if s.Fingerprint != s.Plan.Fingerprint() {
		lines = append(lines, "warning:     fingerprint does not match the recorded plan")
	}
	_, err := io.WriteString(out, strings.Join(lines, "\n")+"\n")
	return err
}
