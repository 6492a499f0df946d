// Package target answers capability queries about a compilation target.
//
// A Descriptor is either declared, backed by a parsed target spec, or
// inferred, in which case every query is a substring test on the target
// identifier. The variant is fixed when the descriptor is built.
package target

import (
	"fmt"
	"strings"

	"rtbuild/internal/targetspec"
)

// capabilities is implemented by the declared and inferred variants.
type capabilities interface {
	archIs(name string) bool
	osIs(name string) bool
	cpu() (string, bool)
	features() (string, bool)
	llvmTarget() string
}

// Descriptor is a target identifier plus its resolved capabilities.
// It is immutable after construction.
type Descriptor struct {
	name string
	spec *targetspec.Spec
	caps capabilities
}

// New builds a descriptor. A nil spec yields the inferred variant.
func New(name string, spec *targetspec.Spec) *Descriptor {
	d := &Descriptor{name: name, spec: spec}
	if spec != nil {
		d.caps = declared{name: name, spec: spec}
	} else {
		d.caps = inferred{name: name}
	}
	return d
}

// Load looks name up in store and builds its descriptor. A spec file that
// exists but does not parse is an error; no file at all is not.
func Load(name string, store *targetspec.Store) (*Descriptor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty target name")
	}
	spec, _, err := store.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", name, err)
	}
	return New(name, spec), nil
}

// Name returns the target identifier.
func (d *Descriptor) Name() string { return d.name }

// Spec returns the parsed spec, or nil for an inferred descriptor.
func (d *Descriptor) Spec() *targetspec.Spec { return d.spec }

// Declared reports whether a spec file backs the descriptor.
func (d *Descriptor) Declared() bool { return d.spec != nil }

// ArchIs reports whether the target architecture is name.
func (d *Descriptor) ArchIs(name string) bool { return d.caps.archIs(name) }

// OSIs reports whether the target operating system is name.
func (d *Descriptor) OSIs(name string) bool { return d.caps.osIs(name) }

// CPU returns the declared CPU. It is never inferred from the name.
func (d *Descriptor) CPU() (string, bool) { return d.caps.cpu() }

// Features returns the raw declared feature string.
func (d *Descriptor) Features() (string, bool) { return d.caps.features() }

// HasFeature reports whether the feature string contains tok, e.g. "+soft-float".
func (d *Descriptor) HasFeature(tok string) bool {
	f, ok := d.caps.features()
	return ok && strings.Contains(f, tok)
}

// LLVMTarget returns the low-level target name: the spec's llvm-target when
// declared, else the identifier.
func (d *Descriptor) LLVMTarget() string { return d.caps.llvmTarget() }

// IsCross reports whether building for d from host is a cross build.
func (d *Descriptor) IsCross(host string) bool { return d.name != host }

func (d *Descriptor) String() string {
	if d.Declared() {
		return d.name + " (spec)"
	}
	return d.name
}

type declared struct {
	name string
	spec *targetspec.Spec
}

func (c declared) archIs(name string) bool { return c.spec.Arch() == name }

func (c declared) osIs(name string) bool { return c.spec.OS() == name }

func (c declared) cpu() (string, bool) { return c.spec.CPU() }

func (c declared) features() (string, bool) { return c.spec.Features() }

func (c declared) llvmTarget() string {
	if t, ok := c.spec.LLVMTarget(); ok && t != "" {
		return t
	}
	return c.name
}

type inferred struct {
	name string
}

func (c inferred) archIs(name string) bool { return strings.Contains(c.name, name) }

func (c inferred) osIs(name string) bool { return strings.Contains(c.name, name) }

func (inferred) cpu() (string, bool) { return "", false }

func (inferred) features() (string, bool) { return "", false }

func (c inferred) llvmTarget() string { return c.name }
