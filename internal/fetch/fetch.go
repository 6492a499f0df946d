// Package fetch populates a directory with the upstream compiler-rt sources.
//
// Every fetch is a one-shot, all-or-nothing step: there is no retry and any
// failure aborts the build.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnsafePath rejects archive entries that would land outside dest.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// Fetcher writes a single-revision checkout into dest.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
	Describe() string
}

// New returns the fetcher for method ("git" or "tarball").
func New(method, url, ref string) (Fetcher, error) {
	switch method {
	case "", "git":
		return &Git{URL: url, Ref: ref}, nil
	case "tarball":
		return &Tarball{URL: url}, nil
	default:
		return nil, fmt.Errorf("unknown fetch method %q (expected git|tarball)", method)
	}
}

// Runner runs an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec, capturing stderr into the error.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w (stderr: %s)",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Git performs a shallow clone of one ref.
type Git struct {
	URL    string
	Ref    string // branch or tag; empty means the remote's default
	Runner Runner
}

// Args returns the git arguments used to clone into dest.
func (g *Git) Args(dest string) []string {
	args := []string{"clone", "--quiet", "--depth", "1", "--single-branch"}
	if g.Ref != "" {
		args = append(args, "--branch", g.Ref)
	}
	return append(args, "--", g.URL, dest)
}

// Fetch implements Fetcher.
func (g *Git) Fetch(ctx context.Context, dest string) error {
	if g.URL == "" {
		return fmt.Errorf("git fetch: empty repository URL")
	}
	runner := g.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	if _, err := runner.Run(ctx, "git", g.Args(dest)...); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}
	return nil
}

// Describe implements Fetcher.
func (g *Git) Describe() string {
	if g.Ref == "" {
		return "git " + g.URL
	}
	return "git " + g.URL + "@" + g.Ref
}
