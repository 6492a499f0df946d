// Package catalog declares the compiler-rt builtins manifest that rtbuild
// knows how to compile, together with the exclusion sets used to drop
// entries that do not assemble or link for a given execution mode.
//
// The lists are data: they mirror upstream's lib/builtins for the pinned
// revision and are never computed.
package catalog

import "sort"

const (
	// UpstreamURL is the repository the builtins are fetched from.
	UpstreamURL = "https://github.com/llvm-mirror/compiler-rt"
	// UpstreamRef is the branch or tag checked out by default.
	UpstreamRef = "master"
	// BuiltinsDir is the checkout-relative directory holding the sources.
	BuiltinsDir = "lib/builtins"
	// LibName is the default support-library name; the archive is lib<LibName>.a.
	LibName = "compiler-rt"
)

// Target markers consulted by the composers.
const (
	OSNone             = "none"
	ArchARM            = "arm"
	ThumbPrefix        = "thumb"
	ARMv6MPrefix       = "thumbv6m"
	ARMv7EMPrefix      = "thumbv7em"
	HardFloatSuffix    = "hf"
	SoftFloatFeature   = "+soft-float"
	SinglePrecisionCPU = "cortex-m4"
)

// Set is an immutable set of source paths. Membership is exact string equality.
type Set struct {
	items map[string]struct{}
}

// NewSet builds a Set from paths. Duplicates collapse.
func NewSet(paths ...string) Set {
	items := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		items[p] = struct{}{}
	}
	return Set{items: items}
}

// Contains reports whether path is a member.
func (s Set) Contains(path string) bool {
	_, ok := s.items[path]
	return ok
}

// Len returns the number of distinct members.
func (s Set) Len() int {
	return len(s.items)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for p := range s.items {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
