package compose

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rtbuild/internal/catalog"
	"rtbuild/internal/target"
	"rtbuild/internal/targetspec"
)

func declared(t *testing.T, name, body string) *target.Descriptor {
	t.Helper()
	spec, err := targetspec.Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return target.New(name, spec)
}

// without returns list minus every member of the given sets, in list order.
func without(list []string, sets ...catalog.Set) []string {
	var out []string
	for _, p := range list {
		drop := false
		for _, s := range sets {
			if s.Contains(p) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return out
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSourcesGenericByOS(t *testing.T) {
	tests := []struct {
		name string
		d    *target.Descriptor
		want []string
	}{
		{
			name: "freestanding name",
			d:    target.New("x86_64-unknown-none", nil),
			want: without(catalog.Generic, catalog.FreestandingIncompatible),
		},
		{
			name: "hosted name",
			d:    target.New("x86_64-unknown-linux-gnu", nil),
			want: catalog.Generic,
		},
		{
			name: "freestanding spec",
			d:    declared(t, "kernel", `{"arch": "x86_64", "os": "none"}`),
			want: without(catalog.Generic, catalog.FreestandingIncompatible),
		},
		{
			name: "spec os wins over name",
			d:    declared(t, "x86_64-unknown-none", `{"arch": "x86_64", "os": "linux"}`),
			want: catalog.Generic,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sources(tt.d, Subvariant)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFreestandingTargetEndToEnd(t *testing.T) {
	d := target.New("i686-unknown-none", nil)
	if !d.OSIs("none") {
		t.Fatalf("OSIs(none) = false")
	}
	if d.ArchIs("arm") {
		t.Fatalf("ArchIs(arm) = true")
	}
	if diff := cmp.Diff(without(catalog.Generic, catalog.FreestandingIncompatible), Sources(d, Subvariant)); diff != "" {
		t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
	}
	if flags := Flags(d); len(flags) != 0 {
		t.Fatalf("Flags = %v, want none", flags)
	}
}

func TestThumbv6mExcludesExactlyThumbAndARMv6M(t *testing.T) {
	d := declared(t, "thumbv6m-none-eabi", `{"arch": "arm", "os": "none"}`)
	got := Sources(d, Subvariant)
	want := concat(
		without(catalog.Generic, catalog.FreestandingIncompatible),
		without(catalog.ARM, catalog.ThumbIncompatible, catalog.ARMv6MIncompatible),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestCortexM4HardFloatEndToEnd(t *testing.T) {
	d := declared(t, "thumbv7em-none-eabihf", `{"arch": "arm", "os": "none", "cpu": "cortex-m4"}`)

	sources := Sources(d, Subvariant)
	generic := without(catalog.Generic, catalog.FreestandingIncompatible)
	arm := sources[len(generic):]
	want := without(catalog.ARM, catalog.ThumbIncompatible, catalog.SinglePrecisionIncompatible)
	if diff := cmp.Diff(want, arm); diff != "" {
		t.Fatalf("ARM sources mismatch (-want +got):\n%s", diff)
	}

	// soft-float members outside the thumb and single-precision sets stay in
	kept := catalog.NewSet(arm...)
	for _, p := range catalog.SoftFloatIncompatible.Sorted() {
		if catalog.ThumbIncompatible.Contains(p) || catalog.SinglePrecisionIncompatible.Contains(p) {
			continue
		}
		if !kept.Contains(p) {
			t.Fatalf("%s dropped although a CPU is declared", p)
		}
	}

	wantFlags := []string{FlagARMv7EM, "-mcpu=cortex-m4", FlagThumb, FlagFPUSPD16}
	if diff := cmp.Diff(wantFlags, Flags(d)); diff != "" {
		t.Fatalf("Flags mismatch (-want +got):\n%s", diff)
	}
}

func TestSoftFloatFeature(t *testing.T) {
	d := declared(t, "thumbv7em-none-eabi", `{"arch": "arm", "os": "none", "cpu": "cortex-m4", "features": "+soft-float,+strict-align"}`)
	got := Sources(d, Subvariant)
	want := concat(
		without(catalog.Generic, catalog.FreestandingIncompatible),
		without(catalog.ARM, catalog.ThumbIncompatible, catalog.SoftFloatIncompatible, catalog.SinglePrecisionIncompatible),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
	}
	wantFlags := []string{FlagARMv7EM, "-mcpu=cortex-m4", FlagThumb}
	if diff := cmp.Diff(wantFlags, Flags(d)); diff != "" {
		t.Fatalf("Flags mismatch (-want +got):\n%s", diff)
	}
}

func TestPoliciesDisagreeWithoutCPU(t *testing.T) {
	d := declared(t, "thumbv7em-none-eabihf", `{"arch": "arm", "os": "none"}`)
	if !Subvariant.SoftFloat(d) {
		t.Fatalf("subvariant: thumbv7em without a CPU is soft-float")
	}
	if HardFloatSuffix.SoftFloat(d) {
		t.Fatalf("hf-suffix: eabihf is hard-float")
	}
	fine := Sources(d, Subvariant)
	coarse := Sources(d, HardFloatSuffix)
	if cmp.Equal(fine, coarse) {
		t.Fatalf("policies should produce different source sets")
	}
	if len(coarse) <= len(fine) {
		t.Fatalf("hf-suffix keeps the VFP routines: %d <= %d", len(coarse), len(fine))
	}
}

func TestPolicySoftFloat(t *testing.T) {
	tests := []struct {
		name       string
		d          *target.Descriptor
		subvariant bool
		hfSuffix   bool
	}{
		{"armv7 hosted hf", declared(t, "armv7-unknown-linux-gnueabihf", `{"arch": "arm", "os": "linux", "cpu": "generic"}`), false, false},
		{"arm eabi no cpu", declared(t, "arm-unknown-linux-gnueabi", `{"arch": "arm", "os": "linux"}`), false, true},
		{"thumbv7m", declared(t, "thumbv7m-none-eabi", `{"arch": "arm", "os": "none"}`), false, true},
		{"thumbv7em with cpu", declared(t, "thumbv7em-none-eabi", `{"arch": "arm", "os": "none", "cpu": "cortex-m7"}`), false, true},
		{"thumbv7em soft feature", declared(t, "thumbv7em-none-eabihf", `{"arch": "arm", "os": "none", "cpu": "cortex-m4", "features": "+soft-float"}`), true, false},
		{"llvm-target decides", declared(t, "cortex-m4f", `{"arch": "arm", "os": "none", "llvm-target": "thumbv7em-none-eabi"}`), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subvariant.SoftFloat(tt.d); got != tt.subvariant {
				t.Fatalf("Subvariant.SoftFloat = %v, want %v", got, tt.subvariant)
			}
			if got := HardFloatSuffix.SoftFloat(tt.d); got != tt.hfSuffix {
				t.Fatalf("HardFloatSuffix.SoftFloat = %v, want %v", got, tt.hfSuffix)
			}
		})
	}
}

func TestNonARMIgnoresARMCatalog(t *testing.T) {
	// the name carries thumb markers but the spec says x86
	d := declared(t, "thumbv7em-none-eabihf", `{"arch": "x86", "os": "none"}`)
	got := Sources(d, HardFloatSuffix)
	if diff := cmp.Diff(without(catalog.Generic, catalog.FreestandingIncompatible), got); diff != "" {
		t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
	}
	// without an ARM arch only the -mthumb rule still looks at the name
	if diff := cmp.Diff([]string{FlagThumb}, Flags(d)); diff != "" {
		t.Fatalf("Flags mismatch (-want +got):\n%s", diff)
	}
}

func TestExplainPartitionsCatalog(t *testing.T) {
	descriptors := []*target.Descriptor{
		declared(t, "thumbv6m-none-eabi", `{"arch": "arm", "os": "none"}`),
		declared(t, "thumbv7em-none-eabi", `{"arch": "arm", "os": "none", "cpu": "cortex-m4", "features": "+soft-float"}`),
		declared(t, "arm-unknown-linux-gnueabi", `{"arch": "arm", "os": "linux"}`),
	}
	all := concat(catalog.Generic, catalog.ARM)
	for _, d := range descriptors {
		for _, policy := range []FloatPolicy{Subvariant, HardFloatSuffix} {
			sources, excluded := Explain(d, policy)
			seen := make(map[string]bool, len(all))
			for _, s := range sources {
				seen[s] = true
			}
			for _, e := range excluded {
				if seen[e.Path] {
					t.Fatalf("%s/%s: %s both kept and excluded", d.Name(), policy.Name(), e.Path)
				}
				seen[e.Path] = true
			}
			if len(seen) != len(all) || len(sources)+len(excluded) != len(all) {
				t.Fatalf("%s/%s: %d kept + %d excluded != %d catalog entries", d.Name(), policy.Name(), len(sources), len(excluded), len(all))
			}
		}
	}
}

func TestExplainNamesFirstRule(t *testing.T) {
	d := declared(t, "thumbv6m-none-eabi", `{"arch": "arm", "os": "none"}`)
	_, excluded := Explain(d, HardFloatSuffix)
	rules := make(map[string]string, len(excluded))
	for _, e := range excluded {
		rules[e.Path] = e.Rule
	}
	tests := map[string]string{
		"enable_execute_stack.c": RuleFreestanding,
		"arm/eqdf2vfp.S":         RuleThumb, // also soft-float
		"arm/switch8.S":          RuleARMv6M,
		"arm/adddf3vfp.S":        RuleSoftFloat,
	}
	for path, want := range tests {
		if got := rules[path]; got != want {
			t.Fatalf("rule for %s = %q, want %q", path, got, want)
		}
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	d := declared(t, "thumbv7em-none-eabihf", `{"arch": "arm", "os": "none", "cpu": "cortex-m4"}`)
	first := NewPlan(d, Subvariant)
	second := NewPlan(d, Subvariant)
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("plans differ (-first +second):\n%s", diff)
	}
	if first.Fingerprint() != second.Fingerprint() {
		t.Fatalf("fingerprint is not stable")
	}
}

func TestFlagsMarkers(t *testing.T) {
	tests := []struct {
		name string
		d    *target.Descriptor
		want []string
	}{
		{"thumbv6m", declared(t, "thumbv6m-none-eabi", `{"arch": "arm", "os": "none"}`), []string{FlagARMv6M, FlagThumb}},
		{"thumbv7m", declared(t, "thumbv7m-none-eabi", `{"arch": "arm", "os": "none", "cpu": "cortex-m3"}`), []string{FlagARMv7M, "-mcpu=cortex-m3", FlagThumb}},
		{"every marker appends", declared(t, "odd", `{"arch": "arm", "os": "none", "llvm-target": "thumbv6m-v7m-v7em"}`), []string{FlagARMv6M, FlagARMv7M, FlagARMv7EM, FlagThumb}},
		{"hosted arm", declared(t, "arm-unknown-linux-gnueabihf", `{"arch": "arm", "os": "linux"}`), nil},
		{"inferred thumb name is not arm", target.New("thumbv7em-none-eabihf", nil), []string{FlagThumb}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Flags(tt.d), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFloatPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FloatPolicy
		wantErr bool
	}{
		{"", DefaultFloatPolicy, false},
		{"subvariant", Subvariant, false},
		{"HF-Suffix", HardFloatSuffix, false},
		{"merged", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseFloatPolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseFloatPolicy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFloatPolicy(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFloatPolicy(%q) = %s, want %s", tt.in, got.Name(), tt.want.Name())
		}
	}
}

func TestFingerprintTracksInputs(t *testing.T) {
	d := declared(t, "thumbv7em-none-eabihf", `{"arch": "arm", "os": "none"}`)
	fine := NewPlan(d, Subvariant)
	coarse := NewPlan(d, HardFloatSuffix)
	if fine.Fingerprint() == coarse.Fingerprint() {
		t.Fatalf("different plans share a fingerprint")
	}
	if len(fine.Fingerprint()) != 64 {
		t.Fatalf("fingerprint %q is not 32-byte hex", fine.Fingerprint())
	}
	moved := fine
	moved.Flags = append([]string{FlagThumb}, fine.Flags...)
	if moved.Fingerprint() == fine.Fingerprint() {
		t.Fatalf("flags must feed the fingerprint")
	}
}
