// Package toolchain picks the compiler and archiver used to build the
// builtins archive.
//
// Native builds use the ambient toolchain. Cross builds resolve each tool
// from a per-target environment override, or from the GCC-style linker the
// target spec declares.
package toolchain

import (
	"errors"
	"fmt"
	"strings"

	"rtbuild/internal/target"
)

// ErrUnresolved means no override was set and the spec gave no usable linker.
var ErrUnresolved = errors.New("tool not resolved")

// Roles and the tool names substituted into a GCC-style linker path.
const (
	RoleAR = "AR"
	RoleCC = "CC"

	ToolAR = "ar"
	ToolCC = "gcc"

	gccSuffix = "gcc"
)

// Toolchain names the executables used for a build.
type Toolchain struct {
	CC    string `json:"cc" yaml:"cc" msgpack:"cc"`
	AR    string `json:"ar" yaml:"ar" msgpack:"ar"`
	Cross bool   `json:"cross" yaml:"cross" msgpack:"cross"`
}

// EnvKey returns the override variable for role and target, e.g.
// CC_thumbv7em_none_eabihf.
func EnvKey(role, targetName string) string {
	return role + "_" + strings.ReplaceAll(targetName, "-", "_")
}

// Resolve returns the path of tool for a cross build of d.
func Resolve(env Env, role, tool string, d *target.Descriptor) (string, error) {
	key := EnvKey(role, d.Name())
	if v, ok := env.Lookup(key); ok && v != "" {
		return v, nil
	}
	if spec := d.Spec(); spec != nil {
		if linker, ok := spec.Linker(); ok && strings.HasSuffix(linker, gccSuffix) {
			return strings.TrimSuffix(linker, gccSuffix) + tool, nil
		}
	}
	return "", fmt.Errorf("%s not set: %w", key, ErrUnresolved)
}

// Native returns the ambient toolchain: $CC and $AR, else cc and ar.
func Native(env Env) Toolchain {
	tc := Toolchain{CC: Value(env, "CC"), AR: Value(env, "AR")}
	if tc.CC == "" {
		tc.CC = "cc"
	}
	if tc.AR == "" {
		tc.AR = "ar"
	}
	return tc
}

// ForTarget returns the native toolchain when d is the host, otherwise
// resolves the archiver and then the compiler.
func ForTarget(env Env, d *target.Descriptor, host string) (Toolchain, error) {
	if !d.IsCross(host) {
		return Native(env), nil
	}
	ar, err := Resolve(env, RoleAR, ToolAR, d)
	if err != nil {
		return Toolchain{}, err
	}
	cc, err := Resolve(env, RoleCC, ToolCC, d)
	if err != nil {
		return Toolchain{}, err
	}
	return Toolchain{CC: cc, AR: ar, Cross: true}, nil
}
