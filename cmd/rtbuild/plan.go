package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rtbuild/internal/compose"
	"rtbuild/internal/toolchain"
	"rtbuild/internal/trace"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the sources, flags and toolchain resolved for a target",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	planCmd.Flags().Bool("explain", false, "list excluded sources with the rule that dropped them")
}

// planReport is the serialized form of the plan command output.
type planReport struct {
	compose.Plan `yaml:",inline"`
	Fingerprint  string               `json:"fingerprint" yaml:"fingerprint"`
	Toolchain    *toolchain.Toolchain `json:"toolchain,omitempty" yaml:"toolchain,omitempty"`
}

func runPlan(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return err
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd, false)
	if err != nil {
		return err
	}
	report, err := resolvePlan(cmd, s)
	if err != nil {
		return err
	}
	if !explain {
		report.Excluded = nil
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderPlanPretty(out, report, explain)
	}
}

// resolvePlan builds the descriptor, the plan and, when the host is known,
// the toolchain.
func resolvePlan(cmd *cobra.Command, s settings) (planReport, error) {
	tr := trace.FromContext(cmd.Context())
	span := trace.Begin(tr, trace.ScopeStage, "resolve", trace.CurrentSpan(cmd.Context()))
	defer span.End("")

	d, err := s.descriptor()
	if err != nil {
		span.Fail(err)
		return planReport{}, err
	}
	span.WithExtra("target", d.Name()).WithExtra("llvm_target", d.LLVMTarget())

	plan := compose.NewPlan(d, s.policy)
	report := planReport{Plan: plan, Fingerprint: plan.Fingerprint()}
	if s.host != "" {
		tc, err := toolchain.ForTarget(s.env, d, s.host)
		if err != nil {
			span.Fail(err)
			return planReport{}, err
		}
		report.Toolchain = &tc
	}
	return report, nil
}

func renderPlanPretty(out io.Writer, r planReport, explain bool) error {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	origin := "inferred from name"
	if r.Declared {
		origin = "target spec"
	}
	lines := []string{
		fmt.Sprintf("%s %s (%s)", bold.Sprint("target:"), r.Target, origin),
		fmt.Sprintf("%s %s", bold.Sprint("llvm-target:"), r.LLVMTarget),
		fmt.Sprintf("%s %s", bold.Sprint("float policy:"), r.Policy),
		fmt.Sprintf("%s %s", bold.Sprint("flags:"), flagsOrNone(r.Flags)),
	}
	if r.Toolchain != nil {
		kind := "native"
		if r.Toolchain.Cross {
			kind = "cross"
		}
		lines = append(lines, fmt.Sprintf("%s cc=%s ar=%s (%s)", bold.Sprint("toolchain:"), r.Toolchain.CC, r.Toolchain.AR, kind))
	}
	lines = append(lines,
		fmt.Sprintf("%s %s", bold.Sprint("fingerprint:"), r.Fingerprint),
		fmt.Sprintf("%s %d", bold.Sprint("sources:"), len(r.Sources)),
	)
	for _, src := range r.Sources {
		lines = append(lines, "  "+src)
	}
	if explain {
		lines = append(lines, fmt.Sprintf("%s %d", bold.Sprint("excluded:"), len(r.Excluded)))
		for _, ex := range r.Excluded {
			lines = append(lines, fmt.Sprintf("  %s %s", ex.Path, dim.Sprintf("(%s)", ex.Rule)))
		}
	}
	_, err := io.WriteString(out, strings.Join(lines, "\n")+"\n")
	return err
}

func flagsOrNone(flags []string) string {
	if len(flags) == 0 {
		return "(none)"
	}
	return strings.Join(flags, " ")
}

// planTitle is the one-line summary used in progress titles.
func planTitle(plan compose.Plan) string {
	return fmt.Sprintf("%s: %d builtins", plan.Target, len(plan.Sources))
}
