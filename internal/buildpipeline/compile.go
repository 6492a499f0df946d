package buildpipeline

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rtbuild/internal/trace"
)

// ObjectName maps a catalog path to a flat object file name:
// arm/clzdi2.S becomes arm_clzdi2.o so it cannot shadow clzdi2.o.
func ObjectName(src string) string {
	base := strings.TrimSuffix(src, path.Ext(src))
	return strings.ReplaceAll(base, "/", "_") + ".o"
}

// CompileArgs returns the compiler arguments for one source file.
func CompileArgs(flags []string, src, obj string) []string {
	args := make([]string, 0, len(flags)+4)
	args = append(args, "-c")
	args = append(args, flags...)
	return append(args, src, "-o", obj)
}

// objectPaths assigns an object path to every source, in plan order.
func objectPaths(sources []string, objDir string) ([]string, error) {
	objs := make([]string, len(sources))
	owner := make(map[string]string, len(sources))
	for i, src := range sources {
		name := ObjectName(src)
		if prev, ok := owner[name]; ok {
			return nil, fmt.Errorf("sources %s and %s map to the same object %s", prev, src, name)
		}
		owner[name] = src
		objs[i] = filepath.Join(objDir, name)
	}
	return objs, nil
}

// compileSources runs the compiler over every planned source with at most
// jobs invocations in flight. The first failure cancels the rest.
func compileSources(ctx context.Context, req *BuildRequest, runner Runner, srcDir string, objs []string) error {
	sources := req.Plan.Sources
	for _, src := range sources {
		emit(req.Progress, Event{File: src, Stage: StageCompile, Status: StatusQueued})
	}

	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Jobs)
	for i, src := range sources {
		obj := objs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(req.Progress, Event{File: src, Stage: StageCompile, Status: StatusWorking})
			srcPath := filepath.Join(srcDir, filepath.FromSlash(src))
			err := runner.Run(gctx, req.Toolchain.CC, CompileArgs(req.Plan.Flags, srcPath, obj)...)
			elapsed := time.Since(start)
			if err != nil {
				err = fmt.Errorf("compile %s: %w", src, err)
				emit(req.Progress, Event{File: src, Stage: StageCompile, Status: StatusError, Err: err, Elapsed: elapsed})
				return err
			}
			trace.Point(tr, trace.ScopeFile, "compile", src, parent)
			emit(req.Progress, Event{File: src, Stage: StageCompile, Status: StatusDone, Elapsed: elapsed})
			return nil
		})
	}
	return g.Wait()
}

// archiveObjects packs objs, in plan order, into a fresh archive.
func archiveObjects(ctx context.Context, req *BuildRequest, runner Runner, archivePath string, objs []string) error {
	args := make([]string, 0, len(objs)+2)
	args = append(args, "crs", archivePath)
	args = append(args, objs...)
	if err := runner.Run(ctx, req.Toolchain.AR, args...); err != nil {
		return fmt.Errorf("archive %s: %w", filepath.Base(archivePath), err)
	}
	return nil
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
