package compose

import (
	"fmt"
	"strings"

	"rtbuild/internal/catalog"
	"rtbuild/internal/target"
)

// FloatPolicy decides whether an ARM target must drop the VFP routines that
// need a hardware FPU. Two policies are in use and they disagree for some
// Thumb targets that declare no CPU, so callers pick one explicitly.
type FloatPolicy interface {
	Name() string
	SoftFloat(d *target.Descriptor) bool
}

// Policy names accepted by ParseFloatPolicy.
const (
	PolicySubvariant      = "subvariant"
	PolicyHardFloatSuffix = "hf-suffix"
)

var (
	// Subvariant applies the soft-float exclusion only to thumbv7em targets
	// that request +soft-float or declare no CPU.
	Subvariant FloatPolicy = subvariantPolicy{}
	// HardFloatSuffix applies it to every target whose low-level name does
	// not end in "hf".
	HardFloatSuffix FloatPolicy = hardFloatSuffixPolicy{}
)

// DefaultFloatPolicy is used when nothing else is configured.
var DefaultFloatPolicy = Subvariant

type subvariantPolicy struct{}

func (subvariantPolicy) Name() string { return PolicySubvariant }

func (subvariantPolicy) SoftFloat(d *target.Descriptor) bool {
	if !strings.HasPrefix(d.LLVMTarget(), catalog.ARMv7EMPrefix) {
		return false
	}
	if d.HasFeature(catalog.SoftFloatFeature) {
		return true
	}
	_, hasCPU := d.CPU()
	return !hasCPU
}

type hardFloatSuffixPolicy struct{}

func (hardFloatSuffixPolicy) Name() string { return PolicyHardFloatSuffix }

func (hardFloatSuffixPolicy) SoftFloat(d *target.Descriptor) bool {
	return !strings.HasSuffix(d.LLVMTarget(), catalog.HardFloatSuffix)
}

// ParseFloatPolicy maps a configured name to a policy. "" selects the default.
func ParseFloatPolicy(name string) (FloatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultFloatPolicy, nil
	case PolicySubvariant:
		return Subvariant, nil
	case PolicyHardFloatSuffix:
		return HardFloatSuffix, nil
	default:
		return nil, fmt.Errorf("invalid float policy %q (expected %s|%s)", name, PolicySubvariant, PolicyHardFloatSuffix)
	}
}
