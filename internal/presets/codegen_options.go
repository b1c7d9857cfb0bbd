package presets

import (
	"fmt"
	"slices"
	"strings"
)

const (
	codegenOptionTemplateConstant   = "%s=%s"
	codeModelOptionNameConstant     = "code-model"
	linkerFlavorOptionNameConstant  = "linker-flavor"
	relocationOptionNameConstant    = "relocation-model"
	linkerOptionNameConstant        = "linker"
	preferDynamicOptionNameConstant = "prefer-dynamic"
	selfContainedOptionNameConstant = "link-self-contained"
	codegenUnitsOptionNameConstant  = "codegen-units"
	targetCPUOptionNameConstant     = "target-cpu"
	targetFeatureOptionNameConstant = "target-feature"
	crtStaticEnabledValueConstant   = "+crt-static"
	crtStaticDisabledValueConstant  = "-crt-static"
	nativeTargetCPUValueConstant    = "native"
	genericTargetCPUValueConstant   = "generic"
)

// CodeModel selects the -C code-model value. The empty value omits the option.
type CodeModel string

// Supported code models.
const (
	CodeModelIgnore CodeModel = ""
	CodeModelTiny   CodeModel = "tiny"
	CodeModelSmall  CodeModel = "small"
	CodeModelKernel CodeModel = "kernel"
	CodeModelMedium CodeModel = "medium"
	CodeModelLarge  CodeModel = "large"
)

var knownCodeModels = []CodeModel{CodeModelTiny, CodeModelSmall, CodeModelKernel, CodeModelMedium, CodeModelLarge}

// ParseCodeModel validates a textual code model.
func ParseCodeModel(rawValue string) (CodeModel, error) {
	candidate := CodeModel(strings.TrimSpace(rawValue))
	if candidate == CodeModelIgnore || slices.Contains(knownCodeModels, candidate) {
		return candidate, nil
	}
	return CodeModelIgnore, fmt.Errorf(unknownValueTemplateConstant, ErrUnknownCodeModel, rawValue)
}

// LinkerFlavor selects the -C linker-flavor value. The empty value omits the option.
type LinkerFlavor string

// Supported linker flavors.
const (
	LinkerFlavorIgnore             LinkerFlavor = ""
	LinkerFlavorEmscripten         LinkerFlavor = "em"
	LinkerFlavorGCC                LinkerFlavor = "gcc"
	LinkerFlavorLD                 LinkerFlavor = "ld"
	LinkerFlavorMSVC               LinkerFlavor = "msvc"
	LinkerFlavorWasmLD             LinkerFlavor = "wasm-ld"
	LinkerFlavorDarwinLLD          LinkerFlavor = "ld64.lld"
	LinkerFlavorGNULLD             LinkerFlavor = "ld.lld"
	LinkerFlavorMicrosoftLinkerLLD LinkerFlavor = "lld-link"
)

var knownLinkerFlavors = []LinkerFlavor{
	LinkerFlavorEmscripten,
	LinkerFlavorGCC,
	LinkerFlavorLD,
	LinkerFlavorMSVC,
	LinkerFlavorWasmLD,
	LinkerFlavorDarwinLLD,
	LinkerFlavorGNULLD,
	LinkerFlavorMicrosoftLinkerLLD,
}

// ParseLinkerFlavor validates a textual linker flavor.
func ParseLinkerFlavor(rawValue string) (LinkerFlavor, error) {
	candidate := LinkerFlavor(strings.TrimSpace(rawValue))
	if candidate == LinkerFlavorIgnore || slices.Contains(knownLinkerFlavors, candidate) {
		return candidate, nil
	}
	return LinkerFlavorIgnore, fmt.Errorf(unknownValueTemplateConstant, ErrUnknownLinkerFlavor, rawValue)
}

// RelocationModel selects the -C relocation-model value. The empty value omits the option.
type RelocationModel string

// Supported relocation models.
const (
	RelocationModelIgnore       RelocationModel = ""
	RelocationModelStatic       RelocationModel = "static"
	RelocationModelPIC          RelocationModel = "pic"
	RelocationModelPIE          RelocationModel = "pie"
	RelocationModelDynamicNoPIC RelocationModel = "dynamic-no-pic"
	RelocationModelROPI         RelocationModel = "ropi"
	RelocationModelRWPI         RelocationModel = "rwpi"
	RelocationModelROPIRWPI     RelocationModel = "ropi-rwpi"
	RelocationModelDefault      RelocationModel = "default"
)

var knownRelocationModels = []RelocationModel{
	RelocationModelStatic,
	RelocationModelPIC,
	RelocationModelPIE,
	RelocationModelDynamicNoPIC,
	RelocationModelROPI,
	RelocationModelRWPI,
	RelocationModelROPIRWPI,
	RelocationModelDefault,
}

// ParseRelocationModel validates a textual relocation model.
func ParseRelocationModel(rawValue string) (RelocationModel, error) {
	candidate := RelocationModel(strings.TrimSpace(rawValue))
	if candidate == RelocationModelIgnore || slices.Contains(knownRelocationModels, candidate) {
		return candidate, nil
	}
	return RelocationModelIgnore, fmt.Errorf(unknownValueTemplateConstant, ErrUnknownRelocationModel, rawValue)
}

// codegenOption renders key=value, or an empty string when value is empty.
func codegenOption(key string, value string) string {
	if len(value) == 0 {
		return ""
	}
	return fmt.Sprintf(codegenOptionTemplateConstant, key, value)
}
