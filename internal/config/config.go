// Package config loads rtbuild.toml, the optional project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"rtbuild/internal/catalog"
	"rtbuild/internal/compose"
)

// FileName is the configuration file looked up from the working directory upward.
const FileName = "rtbuild.toml"

// Fetch methods.
const (
	MethodGit     = "git"
	MethodTarball = "tarball"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration. Zero-valued fields in the file are
// replaced by defaults.
type Config struct {
	Path     string   `toml:"-"`
	Upstream Upstream `toml:"upstream"`
	Build    Build    `toml:"build"`
}

// Upstream describes where the builtins sources come from.
type Upstream struct {
	Method string `toml:"method"`
	URL    string `toml:"url"`
	Ref    string `toml:"ref"`
}

// Build holds output and composition settings.
type Build struct {
	Lib         string `toml:"lib"`
	OutDir      string `toml:"out_dir"`
	Jobs        int    `toml:"jobs"`
	FloatPolicy string `toml:"float_policy"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Upstream: Upstream{
			Method: MethodGit,
			URL:    catalog.UpstreamURL,
			Ref:    catalog.UpstreamRef,
		},
		Build: Build{
			Lib:         catalog.LibName,
			OutDir:      "target",
			Jobs:        runtime.NumCPU(),
			FloatPolicy: compose.DefaultFloatPolicy.Name(),
		},
	}
}

// Find walks up from startDir to locate rtbuild.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path, or searches upward from startDir when path is empty.
// No file at all yields Default.
func Load(path, startDir string) (Config, error) {
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return LoadFile(path)
}

// LoadFile parses a single configuration file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: unknown key %q", path, ErrInvalid, undecoded[0].String())
	}
	if meta.IsDefined("build", "jobs") && cfg.Build.Jobs == 0 {
		cfg.Build.Jobs = runtime.NumCPU()
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c Config) Validate() error {
	switch c.Upstream.Method {
	case MethodGit, MethodTarball:
	default:
		return fmt.Errorf("%w: [upstream].method %q (expected %s|%s)", ErrInvalid, c.Upstream.Method, MethodGit, MethodTarball)
	}
	if strings.TrimSpace(c.Upstream.URL) == "" {
		return fmt.Errorf("%w: [upstream].url is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Build.Lib) == "" || strings.ContainsAny(c.Build.Lib, `/\`) {
		return fmt.Errorf("%w: [build].lib %q", ErrInvalid, c.Build.Lib)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("%w: [build].jobs must not be negative", ErrInvalid)
	}
	if _, err := compose.ParseFloatPolicy(c.Build.FloatPolicy); err != nil {
		return fmt.Errorf("%w: [build].float_policy: %v", ErrInvalid, err)
	}
	return nil
}

// OutputDir returns [build].out_dir. A relative out_dir is anchored at the
// directory holding rtbuild.toml, so every command run from anywhere in the
// project agrees on it; without a file it stays relative to the working
// directory.
func (c Config) OutputDir() string {
	dir := c.Build.OutDir
	if c.Path == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(c.Path), dir)
}
