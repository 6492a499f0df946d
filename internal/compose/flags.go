package compose

import (
	"strings"

	"rtbuild/internal/catalog"
	"rtbuild/internal/target"
)

// Compiler flags emitted by Flags.
const (
	FlagARMv6M   = "-march=armv6-m"
	FlagARMv7M   = "-march=armv7-m"
	FlagARMv7EM  = "-march=armv7e-m"
	FlagThumb    = "-mthumb"
	FlagFPUSPD16 = "-mfpu=fpv4-sp-d16"
)

// archMarkers pairs a low-level name substring with its -march flag. Every
// matching marker contributes its flag.
var archMarkers = []struct {
	marker string
	flag   string
}{
	{"v6m", FlagARMv6M},
	{"v7m", FlagARMv7M},
	{"v7em", FlagARMv7EM},
}

// CPUFlag returns the CPU tuning flag for cpu.
func CPUFlag(cpu string) string {
	return "-mcpu=" + cpu
}

// Flags returns the compiler flags for d.
func Flags(d *target.Descriptor) []string {
	var flags []string
	llvm := d.LLVMTarget()

	if d.ArchIs(catalog.ArchARM) {
		for _, m := range archMarkers {
			if strings.Contains(llvm, m.marker) {
				flags = append(flags, m.flag)
			}
		}
	}

	cpu, hasCPU := d.CPU()
	if hasCPU {
		flags = append(flags, CPUFlag(cpu))
	}

	if strings.HasPrefix(llvm, catalog.ThumbPrefix) {
		flags = append(flags, FlagThumb)
	}

	if hasCPU && cpu == catalog.SinglePrecisionCPU && !d.HasFeature(catalog.SoftFloatFeature) {
		flags = append(flags, FlagFPUSPD16)
	}
	return flags
}
