package presets

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	codegenFlagConstant                 = "-C"
	rustFlagsSeparatorConstant          = " "
	invalidCodegenUnitsTemplateConstant = "%w: %d"
)

// RustFlagsEnvironmentVariable names the variable cargo reads extra rustc flags from.
const RustFlagsEnvironmentVariable = "RUSTFLAGS"

// RustFlags describes the codegen options delivered to rustc through RUSTFLAGS.
//
// Nil pointers and empty values omit the corresponding option. Options render
// as "-C key=value" pairs in a fixed order followed by OtherFlags verbatim.
type RustFlags struct {
	CrtStatic         *bool           `mapstructure:"crt_static" yaml:"crt_static,omitempty"`
	PreferDynamic     *bool           `mapstructure:"prefer_dynamic" yaml:"prefer_dynamic,omitempty"`
	Linker            string          `mapstructure:"linker" yaml:"linker,omitempty"`
	LinkerFlavor      LinkerFlavor    `mapstructure:"linker_flavor" yaml:"linker_flavor,omitempty"`
	LinkSelfContained *bool           `mapstructure:"link_self_contained" yaml:"link_self_contained,omitempty"`
	RelocationModel   RelocationModel `mapstructure:"relocation_model" yaml:"relocation_model,omitempty"`
	CodeModel         CodeModel       `mapstructure:"code_model" yaml:"code_model,omitempty"`
	CodegenUnits      *int            `mapstructure:"codegen_units" yaml:"codegen_units,omitempty"`
	NativeTargetCPU   *bool           `mapstructure:"native_target_cpu" yaml:"native_target_cpu,omitempty"`
	OtherFlags        []string        `mapstructure:"other_flags" yaml:"other_flags,omitempty"`
}

// Validate reports enumerated values that rustc would reject.
func (flags RustFlags) Validate() error {
	if _, parseError := ParseLinkerFlavor(string(flags.LinkerFlavor)); parseError != nil {
		return parseError
	}
	if _, parseError := ParseRelocationModel(string(flags.RelocationModel)); parseError != nil {
		return parseError
	}
	if _, parseError := ParseCodeModel(string(flags.CodeModel)); parseError != nil {
		return parseError
	}
	if flags.CodegenUnits != nil && *flags.CodegenUnits < 1 {
		return fmt.Errorf(invalidCodegenUnitsTemplateConstant, ErrInvalidCodegenUnits, *flags.CodegenUnits)
	}
	return nil
}

// Arguments renders the flags as rustc arguments.
func (flags RustFlags) Arguments() []string {
	options := []string{
		flags.crtStaticOption(),
		booleanOption(preferDynamicOptionNameConstant, flags.PreferDynamic),
		codegenOption(linkerOptionNameConstant, flags.Linker),
		codegenOption(linkerFlavorOptionNameConstant, string(flags.LinkerFlavor)),
		booleanOption(selfContainedOptionNameConstant, flags.LinkSelfContained),
		codegenOption(relocationOptionNameConstant, string(flags.RelocationModel)),
		codegenOption(codeModelOptionNameConstant, string(flags.CodeModel)),
		flags.codegenUnitsOption(),
		flags.targetCPUOption(),
	}

	arguments := make([]string, 0, 2*len(options)+len(flags.OtherFlags))
	for _, option := range options {
		if len(option) == 0 {
			continue
		}
		arguments = append(arguments, codegenFlagConstant, option)
	}
	return append(arguments, flags.OtherFlags...)
}

// Value joins Arguments with single spaces, the form expected in RUSTFLAGS.
func (flags RustFlags) Value() string {
	return strings.Join(flags.Arguments(), rustFlagsSeparatorConstant)
}

func (flags RustFlags) crtStaticOption() string {
	if flags.CrtStatic == nil {
		return ""
	}
	if *flags.CrtStatic {
		return codegenOption(targetFeatureOptionNameConstant, crtStaticEnabledValueConstant)
	}
	return codegenOption(targetFeatureOptionNameConstant, crtStaticDisabledValueConstant)
}

func (flags RustFlags) codegenUnitsOption() string {
	if flags.CodegenUnits == nil {
		return ""
	}
	return codegenOption(codegenUnitsOptionNameConstant, strconv.Itoa(*flags.CodegenUnits))
}

func (flags RustFlags) targetCPUOption() string {
	if flags.NativeTargetCPU == nil {
		return ""
	}
	if *flags.NativeTargetCPU {
		return codegenOption(targetCPUOptionNameConstant, nativeTargetCPUValueConstant)
	}
	return codegenOption(targetCPUOptionNameConstant, genericTargetCPUValueConstant)
}

func booleanOption(key string, value *bool) string {
	if value == nil {
		return ""
	}
	return codegenOption(key, strconv.FormatBool(*value))
}

// Bool returns a pointer to value for optional RustFlags fields.
func Bool(value bool) *bool {
	return &value
}

// Int returns a pointer to value for optional RustFlags fields.
func Int(value int) *int {
	return &value
}
