package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Runner executes one external tool invocation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs tools with os/exec. Captured stderr becomes the error text.
type ExecRunner struct {
	Stdout io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Stdout != nil {
		cmd.Stdout = r.Stdout
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}

// echoRunner prints each command line before delegating.
type echoRunner struct {
	mu    *sync.Mutex
	out   io.Writer
	inner Runner
}

func (r echoRunner) Run(ctx context.Context, name string, args ...string) error {
	r.mu.Lock()
	_, err := fmt.Fprintf(r.out, "%s %s\n", name, strings.Join(args, " "))
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to print command: %w", err)
	}
	return r.inner.Run(ctx, name, args...)
}
