package compose

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"

	"rtbuild/internal/target"
)

// Plan is everything resolved for one target before any tool runs.
type Plan struct {
	Target     string      `json:"target" yaml:"target" msgpack:"target"`
	LLVMTarget string      `json:"llvm_target" yaml:"llvm_target" msgpack:"llvm_target"`
	Declared   bool        `json:"declared" yaml:"declared" msgpack:"declared"`
	Policy     string      `json:"float_policy" yaml:"float_policy" msgpack:"float_policy"`
	Sources    []string    `json:"sources" yaml:"sources" msgpack:"sources"`
	Excluded   []Exclusion `json:"excluded,omitempty" yaml:"excluded,omitempty" msgpack:"excluded"`
	Flags      []string    `json:"flags" yaml:"flags" msgpack:"flags"`
}

// NewPlan composes sources and flags for d.
func NewPlan(d *target.Descriptor, policy FloatPolicy) Plan {
	if policy == nil {
		policy = DefaultFloatPolicy
	}
	sources, excluded := Explain(d, policy)
	return Plan{
		Target:     d.Name(),
		LLVMTarget: d.LLVMTarget(),
		Declared:   d.Declared(),
		Policy:     policy.Name(),
		Sources:    sources,
		Excluded:   excluded,
		Flags:      Flags(d),
	}
}

// Fingerprint hashes the fields that determine the built archive.
func (p Plan) Fingerprint() string {
	h := blake3.New()
	writeField(h, "target", p.Target)
	writeField(h, "llvm-target", p.LLVMTarget)
	writeField(h, "policy", p.Policy)
	for _, s := range p.Sources {
		writeField(h, "src", s)
	}
	for _, f := range p.Flags {
		writeField(h, "flag", f)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField frames each value so that adjacent fields cannot run together.
func writeField(w io.Writer, tag, value string) {
	_, _ = io.WriteString(w, tag)
	_, _ = w.Write([]byte{0})
	_, _ = io.WriteString(w, value)
	_, _ = w.Write([]byte{0})
}
