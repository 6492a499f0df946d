package catalog

// FreestandingIncompatible holds builtins that need a hosting OS.
var FreestandingIncompatible = NewSet(
	"enable_execute_stack.c",
)

// ThumbIncompatible holds assembly that only assembles in ARM mode.
var ThumbIncompatible = NewSet(
	"arm/aeabi_cdcmp.S",
	"arm/aeabi_cfcmp.S",
	"arm/eqdf2vfp.S",
	"arm/gedf2vfp.S",
	"arm/gtdf2vfp.S",
	"arm/ledf2vfp.S",
	"arm/ltdf2vfp.S",
	"arm/ltsf2vfp.S",
	"arm/nedf2vfp.S",
	"arm/nesf2vfp.S",
	"arm/unorddf2vfp.S",
	"arm/unordsf2vfp.S",
)

// ARMv6MIncompatible holds routines using instructions outside the ARMv6-M subset.
var ARMv6MIncompatible = NewSet(
	"arm/aeabi_dcmp.S",
	"arm/aeabi_fcmp.S",
	"arm/aeabi_ldivmod.S",
	"arm/aeabi_uldivmod.S",
	"arm/clzdi2.S",
	"arm/clzsi2.S",
	"arm/comparesf2.S",
	"arm/divmodsi4.S",
	"arm/divsi3.S",
	"arm/modsi3.S",
	"arm/negdf2vfp.S",
	"arm/negsf2vfp.S",
	"arm/switch16.S",
	"arm/switch32.S",
	"arm/switch8.S",
	"arm/switchu8.S",
	"arm/sync_fetch_and_add_4.S",
	"arm/sync_fetch_and_and_4.S",
	"arm/sync_fetch_and_max_4.S",
	"arm/sync_fetch_and_min_4.S",
	"arm/sync_fetch_and_nand_4.S",
	"arm/sync_fetch_and_or_4.S",
	"arm/sync_fetch_and_sub_4.S",
	"arm/sync_fetch_and_umax_4.S",
	"arm/sync_fetch_and_umin_4.S",
	"arm/sync_fetch_and_xor_4.S",
	"arm/udivmodsi4.S",
	"arm/udivsi3.S",
	"arm/umodsi3.S",
)

// SoftFloatIncompatible holds VFP routines that need a hardware FPU.
var SoftFloatIncompatible = NewSet(
	"arm/adddf3vfp.S",
	"arm/addsf3vfp.S",
	"arm/divdf3vfp.S",
	"arm/divsf3vfp.S",
	"arm/eqdf2vfp.S",
	"arm/eqsf2vfp.S",
	"arm/extendsfdf2vfp.S",
	"arm/fixdfsivfp.S",
	"arm/fixdfsivfp.S",
	"arm/fixsfsivfp.S",
	"arm/fixunsdfsivfp.S",
	"arm/fixunssfsivfp.S",
	"arm/floatsidfvfp.S",
	"arm/floatsisfvfp.S",
	"arm/floatunssidfvfp.S",
	"arm/floatunssisfvfp.S",
	"arm/gedf2vfp.S",
	"arm/gesf2vfp.S",
	"arm/gtdf2vfp.S",
	"arm/gtsf2vfp.S",
	"arm/ledf2vfp.S",
	"arm/lesf2vfp.S",
	"arm/ltdf2vfp.S",
	"arm/ltsf2vfp.S",
	"arm/muldf3vfp.S",
	"arm/mulsf3vfp.S",
	"arm/nedf2vfp.S",
	"arm/nesf2vfp.S",
	"arm/restore_vfp_d8_d15_regs.S",
	"arm/save_vfp_d8_d15_regs.S",
	"arm/subdf3vfp.S",
	"arm/subsf3vfp.S",
	"arm/truncdfsf2vfp.S",
	"arm/unorddf2vfp.S",
	"arm/unordsf2vfp.S",
)

// SinglePrecisionIncompatible holds VFP routines that need a double-precision FPU.
var SinglePrecisionIncompatible = NewSet(
	"arm/adddf3vfp.S",
	"arm/divdf3vfp.S",
	"arm/eqsf2vfp.S",
	"arm/extendsfdf2vfp.S",
	"arm/fixdfsivfp.S",
	"arm/fixunsdfsivfp.S",
	"arm/floatsidfvfp.S",
	"arm/floatunssidfvfp.S",
	"arm/gesf2vfp.S",
	"arm/gtsf2vfp.S",
	"arm/lesf2vfp.S",
	"arm/muldf3vfp.S",
	"arm/subdf3vfp.S",
	"arm/truncdfsf2vfp.S",
)
