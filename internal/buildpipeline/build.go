// Package buildpipeline drives fetch, compile and archive for a composed plan.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"rtbuild/internal/catalog"
	"rtbuild/internal/compose"
	"rtbuild/internal/fetch"
	"rtbuild/internal/toolchain"
	"rtbuild/internal/trace"
)

// BuildRequest configures one library build.
type BuildRequest struct {
	Plan compose.Plan
	// Fetcher populates SourceRoot first; nil means SourceRoot is an existing checkout.
	Fetcher       fetch.Fetcher
	SourceRoot    string
	OutputDir     string
	LibName       string
	Toolchain     toolchain.Toolchain
	Jobs          int
	PrintCommands bool
	Stdout        io.Writer
	Progress      ProgressSink
	Runner        Runner
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	ArchivePath string
	StampPath   string
	ObjectDir   string
	Objects     []string
	Fingerprint string
	Timings     Timings
}

// Build fetches (optionally), compiles and archives the plan's sources, then
// writes the stamp next to the archive.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	if len(req.Plan.Sources) == 0 {
		return result, fmt.Errorf("plan for %s has no sources", req.Plan.Target)
	}
	if req.SourceRoot == "" {
		return result, fmt.Errorf("missing source root")
	}
	if req.Toolchain.CC == "" || req.Toolchain.AR == "" {
		return result, fmt.Errorf("incomplete toolchain (cc=%q ar=%q)", req.Toolchain.CC, req.Toolchain.AR)
	}
	if req.LibName == "" {
		req.LibName = catalog.LibName
	}
	if req.OutputDir == "" {
		req.OutputDir = "target"
	}
	if req.Jobs <= 0 {
		req.Jobs = runtime.NumCPU()
	}
	if req.Stdout == nil {
		req.Stdout = os.Stdout
	}
	runner := req.Runner
	if runner == nil {
		runner = ExecRunner{Stdout: req.Stdout}
	}
	if req.PrintCommands {
		runner = echoRunner{mu: &sync.Mutex{}, out: req.Stdout, inner: runner}
	}

	started := time.Now()
	result.Fingerprint = req.Plan.Fingerprint()
	result.ObjectDir = filepath.Join(req.OutputDir, "obj", req.Plan.Target)
	result.ArchivePath = filepath.Join(req.OutputDir, ArchiveName(req.LibName))
	result.StampPath = StampPath(result.ArchivePath)

	objs, err := objectPaths(req.Plan.Sources, result.ObjectDir)
	if err != nil {
		return result, err
	}

	if req.Fetcher != nil {
		err = runStage(ctx, req.Progress, &result.Timings, StageFetch, func(ctx context.Context) error {
			return req.Fetcher.Fetch(ctx, req.SourceRoot)
		})
		if err != nil {
			return result, err
		}
	}

	srcDir := filepath.Join(req.SourceRoot, filepath.FromSlash(catalog.BuiltinsDir))
	if info, statErr := os.Stat(srcDir); statErr != nil || !info.IsDir() {
		return result, fmt.Errorf("builtins sources not found at %s", srcDir)
	}

	err = runStage(ctx, req.Progress, &result.Timings, StageCompile, func(ctx context.Context) error {
		if err := os.MkdirAll(result.ObjectDir, 0o750); err != nil {
			return fmt.Errorf("failed to create object dir: %w", err)
		}
		return compileSources(ctx, req, runner, srcDir, objs)
	})
	if err != nil {
		return result, err
	}
	result.Objects = objs

	err = runStage(ctx, req.Progress, &result.Timings, StageArchive, func(ctx context.Context) error {
		// ar crs appends to an existing archive
		if err := os.Remove(result.ArchivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale archive: %w", err)
		}
		if err := archiveObjects(ctx, req, runner, result.ArchivePath, objs); err != nil {
			return err
		}
		stamp, err := NewStamp(req.Plan, req.Toolchain, len(objs), started)
		if err != nil {
			return err
		}
		return WriteStamp(result.StampPath, &stamp)
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// ArchiveName returns the static library file name for lib: lib<lib>.a.
func ArchiveName(lib string) string {
	return "lib" + lib + ".a"
}

func runStage(ctx context.Context, sink ProgressSink, timings *Timings, stage Stage, fn func(context.Context) error) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, string(stage), trace.CurrentSpan(ctx))
	start := time.Now()
	emit(sink, Event{Stage: stage, Status: StatusWorking})

	err := fn(trace.WithSpan(ctx, span))
	elapsed := time.Since(start)
	timings.Set(stage, elapsed)
	if err != nil {
		span.Fail(err)
		span.End("")
		emit(sink, Event{Stage: stage, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	span.End("")
	emit(sink, Event{Stage: stage, Status: StatusDone, Elapsed: elapsed})
	return nil
}
