package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rtbuild/internal/compose"
	"rtbuild/internal/toolchain"
)

type call struct {
	name string
	args []string
}

// fakeRunner creates the -o output of compiles and the archive of ar calls.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []call
	failOn string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{name: name, args: append([]string(nil), args...)})
	r.mu.Unlock()

	if r.failOn != "" && strings.Contains(strings.Join(args, " "), r.failOn) {
		return errors.New("error: boom")
	}
	var out string
	switch {
	case len(args) >= 2 && args[0] == "crs":
		out = args[1]
	default:
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				out = args[i+1]
			}
		}
	}
	if out != "" {
		return os.WriteFile(out, []byte(name), 0o600)
	}
	return nil
}

func (r *fakeRunner) byTool(name string) []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []call
	for _, c := range r.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

type fakeFetcher struct {
	dest string
}

func (f *fakeFetcher) Fetch(_ context.Context, dest string) error {
	f.dest = dest
	return os.MkdirAll(filepath.Join(dest, "lib", "builtins", "arm"), 0o750)
}

func (f *fakeFetcher) Describe() string { return "fake" }

func testPlan() compose.Plan {
	return compose.Plan{
		Target:     "thumbv6m-none-eabi",
		LLVMTarget: "thumbv6m-none-eabi",
		Declared:   true,
		Policy:     "subvariant",
		Sources:    []string{"absvdi2.c", "clzdi2.c", "arm/clzdi2.S"},
		Flags:      []string{"-march=armv6-m", "-mthumb"},
	}
}

func testRequest(t *testing.T, runner Runner) *BuildRequest {
	t.Helper()
	return &BuildRequest{
		Plan:       testPlan(),
		Fetcher:    &fakeFetcher{},
		SourceRoot: filepath.Join(t.TempDir(), "src"),
		OutputDir:  filepath.Join(t.TempDir(), "out"),
		LibName:    "compiler-rt",
		Toolchain:  toolchain.Toolchain{CC: "arm-none-eabi-gcc", AR: "arm-none-eabi-ar", Cross: true},
		Jobs:       2,
		Runner:     runner,
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"absvdi2.c", "absvdi2.o"},
		{"arm/clzdi2.S", "arm_clzdi2.o"},
		{"x86_64/floatdidf.c", "x86_64_floatdidf.o"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := ObjectName(tt.src); got != tt.want {
				t.Fatalf("ObjectName(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestBuildCompilesAndArchivesInPlanOrder(t *testing.T) {
	runner := &fakeRunner{}
	req := testRequest(t, runner)
	sink := &RecordingSink{}
	req.Progress = sink

	res, err := Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := req.Fetcher.(*fakeFetcher).dest; got != req.SourceRoot {
		t.Fatalf("fetched into %q, want %q", got, req.SourceRoot)
	}

	compiles := runner.byTool("arm-none-eabi-gcc")
	if len(compiles) != 3 {
		t.Fatalf("compile calls = %d, want 3", len(compiles))
	}
	for _, c := range compiles {
		if c.args[0] != "-c" || c.args[1] != "-march=armv6-m" || c.args[2] != "-mthumb" {
			t.Fatalf("compile args = %v", c.args)
		}
	}

	archives := runner.byTool("arm-none-eabi-ar")
	if len(archives) != 1 {
		t.Fatalf("archive calls = %d, want 1", len(archives))
	}
	wantArgs := []string{
		"crs",
		res.ArchivePath,
		filepath.Join(res.ObjectDir, "absvdi2.o"),
		filepath.Join(res.ObjectDir, "clzdi2.o"),
		filepath.Join(res.ObjectDir, "arm_clzdi2.o"),
	}
	if diff := cmp.Diff(wantArgs, archives[0].args); diff != "" {
		t.Fatalf("ar args mismatch (-want +got):\n%s", diff)
	}
	if filepath.Base(res.ArchivePath) != "libcompiler-rt.a" {
		t.Fatalf("ArchivePath = %q", res.ArchivePath)
	}
	for _, stage := range Stages {
		if !res.Timings.Has(stage) {
			t.Fatalf("missing timing for %s", stage)
		}
	}

	stamp, err := ReadStamp(res.ArchivePath)
	if err != nil {
		t.Fatalf("ReadStamp: %v", err)
	}
	if stamp.Fingerprint != res.Fingerprint || stamp.Objects != 3 || stamp.Toolchain != req.Toolchain {
		t.Fatalf("stamp = %+v", stamp)
	}

	var done int
	for _, evt := range sink.Events() {
		if evt.File != "" && evt.Status == StatusDone {
			done++
		}
	}
	if done != 3 {
		t.Fatalf("per-file done events = %d, want 3", done)
	}
}

func TestBuildCompileFailureSkipsArchive(t *testing.T) {
	runner := &fakeRunner{failOn: "clzdi2.S"}
	req := testRequest(t, runner)
	req.Jobs = 1
	sink := &RecordingSink{}
	req.Progress = sink

	_, err := Build(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "compile arm/clzdi2.S") {
		t.Fatalf("Build error = %v", err)
	}
	if got := runner.byTool("arm-none-eabi-ar"); len(got) != 0 {
		t.Fatalf("archive ran after compile failure: %v", got)
	}
	var stageErr bool
	for _, evt := range sink.Events() {
		if evt.File == "" && evt.Stage == StageCompile && evt.Status == StatusError {
			stageErr = true
		}
	}
	if !stageErr {
		t.Fatalf("missing compile stage error event")
	}
}

func TestBuildWithoutSources(t *testing.T) {
	req := testRequest(t, &fakeRunner{})
	req.Fetcher = nil
	if _, err := Build(context.Background(), req); err == nil || !strings.Contains(err.Error(), "builtins sources not found") {
		t.Fatalf("Build error = %v", err)
	}
}

func TestBuildRejectsIncompleteToolchain(t *testing.T) {
	req := testRequest(t, &fakeRunner{})
	req.Toolchain.AR = ""
	if _, err := Build(context.Background(), req); err == nil {
		t.Fatalf("expected toolchain error")
	}
}

func TestBuildPrintCommands(t *testing.T) {
	var out bytes.Buffer
	req := testRequest(t, &fakeRunner{})
	req.PrintCommands = true
	req.Stdout = &out
	if _, err := Build(context.Background(), req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(out.String(), "arm-none-eabi-ar crs ") {
		t.Fatalf("printed commands = %q", out.String())
	}
}

func TestObjectPathsRejectsCollision(t *testing.T) {
	if _, err := objectPaths([]string{"arm/x.c", "arm_x.c"}, "obj"); err == nil {
		t.Fatalf("expected collision error")
	}
}

func TestStampRoundTrip(t *testing.T) {
	plan := testPlan()
	plan.Excluded = []compose.Exclusion{{Path: "arm/aeabi_cdcmp.S", Rule: "armv6m"}}
	tc := toolchain.Toolchain{CC: "cc", AR: "ar"}
	want, err := NewStamp(plan, tc, 3, time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("NewStamp: %v", err)
	}
	path := filepath.Join(t.TempDir(), "libcompiler-rt.a.stamp")
	if err := WriteStamp(path, &want); err != nil {
		t.Fatalf("WriteStamp: %v", err)
	}
	got, err := ReadStamp(path)
	if err != nil {
		t.Fatalf("ReadStamp: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("stamp mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStampSchemaMismatch(t *testing.T) {
	s := Stamp{Schema: stampSchemaVersion + 1}
	path := filepath.Join(t.TempDir(), "x.stamp")
	if err := WriteStamp(path, &s); err != nil {
		t.Fatalf("WriteStamp: %v", err)
	}
	if _, err := ReadStamp(path); !errors.Is(err, ErrStampSchema) {
		t.Fatalf("ReadStamp error = %v, want ErrStampSchema", err)
	}
}
