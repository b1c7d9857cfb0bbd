package presets

import (
	"fmt"
	"slices"
	"strings"
)

const (
	unstableFlagConstant             = "-Z"
	buildStdOptionConstant           = "build-std"
	buildStdFeaturesOptionConstant   = "build-std-features"
	unstableOptionTemplateConstant   = "%s=%s"
	unstableListSeparatorConstant    = ","
	buildStdStdComponentConstant     = "std"
	buildStdCoreComponentConstant    = "core"
	buildStdAllocComponentConstant   = "alloc"
	buildStdAbortComponentConstant   = "panic_abort"
	buildStdUnwindComponentConstant  = "panic_unwind"
	buildStdTestComponentConstant    = "test"
	buildStdMacroComponentConstant   = "proc_macro"
	buildStdDefaultComponentConstant = "default"
)

// BuildStd selects the standard library crates rebuilt through -Z build-std.
//
// Enabled components render as "-Z build-std=a,b" in declaration order. With
// no component enabled, BuildDefault renders a bare "-Z build-std".
type BuildStd struct {
	BuildDefault bool `mapstructure:"build_default" yaml:"build_default,omitempty"`
	Std          bool `mapstructure:"std" yaml:"std,omitempty"`
	Core         bool `mapstructure:"core" yaml:"core,omitempty"`
	Alloc        bool `mapstructure:"alloc" yaml:"alloc,omitempty"`
	PanicAbort   bool `mapstructure:"panic_abort" yaml:"panic_abort,omitempty"`
	PanicUnwind  bool `mapstructure:"panic_unwind" yaml:"panic_unwind,omitempty"`
	Test         bool `mapstructure:"test" yaml:"test,omitempty"`
	ProcMacro    bool `mapstructure:"proc_macro" yaml:"proc_macro,omitempty"`
}

// BuildStdComponentNames lists the accepted component names in rendering order.
func BuildStdComponentNames() []string {
	return []string{
		buildStdStdComponentConstant,
		buildStdCoreComponentConstant,
		buildStdAllocComponentConstant,
		buildStdAbortComponentConstant,
		buildStdUnwindComponentConstant,
		buildStdTestComponentConstant,
		buildStdMacroComponentConstant,
	}
}

// ParseBuildStd enables the named components. The name "default" requests a bare -Z build-std.
func ParseBuildStd(componentNames []string) (BuildStd, error) {
	var buildStd BuildStd
	for _, rawName := range componentNames {
		componentName := strings.TrimSpace(rawName)
		switch componentName {
		case "":
		case buildStdDefaultComponentConstant:
			buildStd.BuildDefault = true
		default:
			componentSwitch := buildStd.componentSwitches()[componentName]
			if componentSwitch == nil {
				return BuildStd{}, fmt.Errorf(unknownValueTemplateConstant, ErrUnknownBuildStdComponent, rawName)
			}
			*componentSwitch = true
		}
	}
	return buildStd, nil
}

// Components returns the enabled component names in rendering order.
func (buildStd BuildStd) Components() []string {
	switches := buildStd.componentSwitches()
	enabledComponents := make([]string, 0, len(switches))
	for _, componentName := range BuildStdComponentNames() {
		if *switches[componentName] {
			enabledComponents = append(enabledComponents, componentName)
		}
	}
	return enabledComponents
}

// Arguments renders the -Z build-std arguments, or nothing.
func (buildStd BuildStd) Arguments() []string {
	enabledComponents := buildStd.Components()
	if len(enabledComponents) > 0 {
		return []string{unstableFlagConstant, fmt.Sprintf(unstableOptionTemplateConstant, buildStdOptionConstant, strings.Join(enabledComponents, unstableListSeparatorConstant))}
	}
	if buildStd.BuildDefault {
		return []string{unstableFlagConstant, buildStdOptionConstant}
	}
	return nil
}

func (buildStd *BuildStd) componentSwitches() map[string]*bool {
	return map[string]*bool{
		buildStdStdComponentConstant:    &buildStd.Std,
		buildStdCoreComponentConstant:   &buildStd.Core,
		buildStdAllocComponentConstant:  &buildStd.Alloc,
		buildStdAbortComponentConstant:  &buildStd.PanicAbort,
		buildStdUnwindComponentConstant: &buildStd.PanicUnwind,
		buildStdTestComponentConstant:   &buildStd.Test,
		buildStdMacroComponentConstant:  &buildStd.ProcMacro,
	}
}

// BuildStdFeatures selects the features passed through -Z build-std-features.
type BuildStdFeatures struct {
	PanicImmediateAbort     bool `mapstructure:"panic_immediate_abort" yaml:"panic_immediate_abort,omitempty"`
	PanicUnwind             bool `mapstructure:"panic_unwind" yaml:"panic_unwind,omitempty"`
	Backtrace               bool `mapstructure:"backtrace" yaml:"backtrace,omitempty"`
	LLVMLibunwind           bool `mapstructure:"llvm_libunwind" yaml:"llvm_libunwind,omitempty"`
	SystemLLVMLibunwind     bool `mapstructure:"system_llvm_libunwind" yaml:"system_llvm_libunwind,omitempty"`
	OptimizeForSize         bool `mapstructure:"optimize_for_size" yaml:"optimize_for_size,omitempty"`
	DebugRefcell            bool `mapstructure:"debug_refcell" yaml:"debug_refcell,omitempty"`
	DebugTypeid             bool `mapstructure:"debug_typeid" yaml:"debug_typeid,omitempty"`
	StdDetectFileIO         bool `mapstructure:"std_detect_file_io" yaml:"std_detect_file_io,omitempty"`
	StdDetectDlsymGetauxval bool `mapstructure:"std_detect_dlsym_getauxval" yaml:"std_detect_dlsym_getauxval,omitempty"`
	StdDetectEnvOverride    bool `mapstructure:"std_detect_env_override" yaml:"std_detect_env_override,omitempty"`
	WindowsRawDylib         bool `mapstructure:"windows_raw_dylib" yaml:"windows_raw_dylib,omitempty"`
}

var buildStdFeatureNames = []string{
	"panic_immediate_abort",
	"panic_unwind",
	"backtrace",
	"llvm_libunwind",
	"system_llvm_libunwind",
	"optimize_for_size",
	"debug_refcell",
	"debug_typeid",
	"std_detect_file_io",
	"std_detect_dlsym_getauxval",
	"std_detect_env_override",
	"windows_raw_dylib",
}

// BuildStdFeatureNames lists the accepted feature names in rendering order.
func BuildStdFeatureNames() []string {
	return append([]string(nil), buildStdFeatureNames...)
}

// ParseBuildStdFeatures enables the named features.
func ParseBuildStdFeatures(featureNames []string) (BuildStdFeatures, error) {
	var features BuildStdFeatures
	switches := features.featureSwitches()
	for _, rawName := range featureNames {
		featureName := strings.TrimSpace(rawName)
		if len(featureName) == 0 {
			continue
		}
		featureIndex := slices.Index(buildStdFeatureNames, featureName)
		if featureIndex < 0 {
			return BuildStdFeatures{}, fmt.Errorf(unknownValueTemplateConstant, ErrUnknownBuildStdFeature, rawName)
		}
		*switches[featureIndex] = true
	}
	return features, nil
}

// Features returns the enabled feature names in rendering order.
func (features BuildStdFeatures) Features() []string {
	enabledFeatures := make([]string, 0, len(buildStdFeatureNames))
	for featureIndex, featureSwitch := range features.featureSwitches() {
		if *featureSwitch {
			enabledFeatures = append(enabledFeatures, buildStdFeatureNames[featureIndex])
		}
	}
	return enabledFeatures
}

// Arguments renders the -Z build-std-features arguments, or nothing.
func (features BuildStdFeatures) Arguments() []string {
	enabledFeatures := features.Features()
	if len(enabledFeatures) == 0 {
		return nil
	}
	return []string{unstableFlagConstant, fmt.Sprintf(unstableOptionTemplateConstant, buildStdFeaturesOptionConstant, strings.Join(enabledFeatures, unstableListSeparatorConstant))}
}

// featureSwitches is aligned index by index with buildStdFeatureNames.
func (features *BuildStdFeatures) featureSwitches() []*bool {
	return []*bool{
		&features.PanicImmediateAbort,
		&features.PanicUnwind,
		&features.Backtrace,
		&features.LLVMLibunwind,
		&features.SystemLLVMLibunwind,
		&features.OptimizeForSize,
		&features.DebugRefcell,
		&features.DebugTypeid,
		&features.StdDetectFileIO,
		&features.StdDetectDlsymGetauxval,
		&features.StdDetectEnvOverride,
		&features.WindowsRawDylib,
	}
}
