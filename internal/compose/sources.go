// Package compose turns a target descriptor into the list of builtins to
// compile and the compiler flags to compile them with.
//
// Both composers are pure: the same descriptor and policy always produce the
// same ordered output.
package compose

import (
	"strings"

	"rtbuild/internal/catalog"
	"rtbuild/internal/target"
)

// Rule names reported in Exclusion.Rule.
const (
	RuleFreestanding    = "freestanding"
	RuleThumb           = "thumb"
	RuleARMv6M          = "armv6m"
	RuleSoftFloat       = "soft-float"
	RuleSinglePrecision = "single-precision-fpu"
)

// Exclusion records a catalog entry left out of the source set and the first
// rule that matched it.
type Exclusion struct {
	Path string `json:"path" yaml:"path" msgpack:"path"`
	Rule string `json:"rule" yaml:"rule" msgpack:"rule"`
}

type rule struct {
	name string
	set  catalog.Set
}

// armRules returns the exclusion rules that apply to d, in evaluation order.
func armRules(d *target.Descriptor, policy FloatPolicy) []rule {
	llvm := d.LLVMTarget()
	var rules []rule
	if strings.HasPrefix(llvm, catalog.ThumbPrefix) {
		rules = append(rules, rule{RuleThumb, catalog.ThumbIncompatible})
	}
	if strings.HasPrefix(llvm, catalog.ARMv6MPrefix) {
		rules = append(rules, rule{RuleARMv6M, catalog.ARMv6MIncompatible})
	}
	if policy.SoftFloat(d) {
		rules = append(rules, rule{RuleSoftFloat, catalog.SoftFloatIncompatible})
	}
	if singlePrecisionFPU(d) {
		rules = append(rules, rule{RuleSinglePrecision, catalog.SinglePrecisionIncompatible})
	}
	return rules
}

func singlePrecisionFPU(d *target.Descriptor) bool {
	cpu, ok := d.CPU()
	return ok && cpu == catalog.SinglePrecisionCPU
}

// Sources returns the builtins to compile for d: generic entries first, then
// ARM entries, each in catalog order.
func Sources(d *target.Descriptor, policy FloatPolicy) []string {
	sources, _ := Explain(d, policy)
	return sources
}

// Explain is Sources plus the entries that were dropped and why.
func Explain(d *target.Descriptor, policy FloatPolicy) ([]string, []Exclusion) {
	if policy == nil {
		policy = DefaultFloatPolicy
	}
	var (
		sources  []string
		excluded []Exclusion
	)

	freestanding := d.OSIs(catalog.OSNone)
	for _, src := range catalog.Generic {
		if freestanding && catalog.FreestandingIncompatible.Contains(src) {
			excluded = append(excluded, Exclusion{Path: src, Rule: RuleFreestanding})
			continue
		}
		sources = append(sources, src)
	}

	if !d.ArchIs(catalog.ArchARM) {
		return sources, excluded
	}

	rules := armRules(d, policy)
	for _, src := range catalog.ARM {
		if r, ok := firstMatch(rules, src); ok {
			excluded = append(excluded, Exclusion{Path: src, Rule: r})
			continue
		}
		sources = append(sources, src)
	}
	return sources, excluded
}

func firstMatch(rules []rule, src string) (string, bool) {
	for _, r := range rules {
		if r.set.Contains(src) {
			return r.name, true
		}
	}
	return "", false
}
