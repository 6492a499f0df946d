package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rtbuild/internal/buildpipeline"
	"rtbuild/internal/compose"
	"rtbuild/internal/target"
	"rtbuild/internal/toolchain"
)

func TestInspectPrintsStamp(t *testing.T) {
	plan := compose.NewPlan(target.New("i686-unknown-none", nil), compose.Subvariant)
	tc := toolchain.Toolchain{CC: "cc", AR: "ar"}
	stamp, err := buildpipeline.NewStamp(plan, tc, len(plan.Sources), time.Now())
	if err != nil {
		t.Fatalf("NewStamp: %v", err)
	}
	archive := filepath.Join(t.TempDir(), "libcompiler-rt.a")
	if err := buildpipeline.WriteStamp(buildpipeline.StampPath(archive), &stamp); err != nil {
		t.Fatalf("WriteStamp: %v", err)
	}

	out, err := runRoot(t, "inspect", "--format", "pretty", archive)
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{
		"target:      i686-unknown-none",
		"flags:       (none)",
		"toolchain:   cc=cc ar=ar (native)",
		"fingerprint: " + plan.Fingerprint(),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warning:") {
		t.Fatalf("unexpected fingerprint warning:\n%s", out)
	}
}

func TestInspectMissingStamp(t *testing.T) {
	if _, err := runRoot(t, "inspect", "--format", "pretty", filepath.Join(t.TempDir(), "nope.a")); err == nil {
		t.Fatalf("inspect succeeded without a stamp")
	}
}
