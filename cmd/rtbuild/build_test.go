package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// objectWriter stands in for cc and ar: it creates the file each
// invocation would produce.
type objectWriter struct {
	mu    sync.Mutex
	calls int
}

func (w *objectWriter) Run(_ context.Context, _ string, args ...string) error {
	w.mu.Lock()
	w.calls++
	w.mu.Unlock()
	out := ""
	if len(args) >= 2 && args[0] == "crs" {
		out = args[1]
	}
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			out = args[i+1]
		}
	}
	if out == "" {
		return nil
	}
	return os.WriteFile(out, nil, 0o600)
}

func TestBuildThenCleanFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "rtbuild.toml"), []byte("[build]\nout_dir = \"target\"\njobs = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(root, "compiler-rt")
	if err := os.MkdirAll(filepath.Join(src, "lib", "builtins"), 0o750); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	writer := &objectWriter{}
	pipelineRunner = writer
	t.Cleanup(func() { pipelineRunner = nil })

	const triple = "i686-unknown-none"
	out, err := runRoot(t, "build", "--target", triple, "--host", triple, "--src", src, "--ui", "off", "--quiet")
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	outDir := filepath.Join(root, "target")
	if _, err := os.Stat(filepath.Join(outDir, "libcompiler-rt.a")); err != nil {
		t.Fatalf("archive not written under the project root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sub, "target")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("build wrote into the working directory: %v", err)
	}
	if writer.calls == 0 {
		t.Fatalf("no compiler invocations")
	}

	out, err = runRoot(t, "clean")
	if err != nil {
		t.Fatalf("clean: %v\n%s", err, out)
	}
	if _, err := os.Stat(outDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("build output %s survived clean: %v", outDir, err)
	}
}
