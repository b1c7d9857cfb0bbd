package presets

import (
	"fmt"
	"strings"

	"github.com/temirov/cmdkit/internal/execshell"
)

const (
	cargoProgramConstant            = "cargo"
	nightlyToolchainConstant        = "+nightly"
	formatSubcommandConstant        = "fmt"
	rustdocSubcommandConstant       = "rustdoc"
	packageFlagConstant             = "--package"
	allFeaturesFlagConstant         = "--all-features"
	openFlagConstant                = "--open"
	argumentTerminatorConstant      = "--"
	configurationFlagConstant       = "--cfg"
	privateItemsFlagConstant        = "--document-private-items"
	workspaceFlagConstant           = "--workspace"
	noDefaultFeaturesFlagConstant   = "--no-default-features"
	longArgumentTemplateConstant    = "--%s=%s"
	profileOptionNameConstant       = "profile"
	packageOptionNameConstant       = "package"
	targetOptionNameConstant        = "target"
	featuresOptionNameConstant      = "features"
	featuresSeparatorConstant       = ","
	defaultDocConfigurationConstant = "__unstable_doc"
)

// CargoFormat renders "cargo [+nightly] fmt".
type CargoFormat struct {
	Nightly bool `mapstructure:"nightly" yaml:"nightly"`
}

// DefaultCargoFormat formats with the nightly toolchain.
func DefaultCargoFormat() CargoFormat {
	return CargoFormat{Nightly: true}
}

// Argv returns the command tokens.
func (preset CargoFormat) Argv() []string {
	argv := []string{cargoProgramConstant}
	if preset.Nightly {
		argv = append(argv, nightlyToolchainConstant)
	}
	return append(argv, formatSubcommandConstant)
}

// CommandRepresentation returns the argv as an owned pre-split command.
func (preset CargoFormat) CommandRepresentation() execshell.CommandRepresentation {
	return execshell.OwnedCommand(preset.Argv()...)
}

// RunnerConfiguration returns the default runner configuration carrying this command.
func (preset CargoFormat) RunnerConfiguration() execshell.RunnerConfiguration {
	return runnerConfigurationFor(preset.CommandRepresentation(), nil)
}

// CargoDoc renders
// "cargo [+nightly] rustdoc [--package P] [--all-features] [--open] -- [--cfg C] [--document-private-items]".
type CargoDoc struct {
	Package             string `mapstructure:"package" yaml:"package"`
	CustomConfiguration string `mapstructure:"cfg" yaml:"cfg"`
	Nightly             bool   `mapstructure:"nightly" yaml:"nightly"`
	AllFeatures         bool   `mapstructure:"all_features" yaml:"all_features"`
	Open                bool   `mapstructure:"open" yaml:"open"`
	EnablePrivateItems  bool   `mapstructure:"private_items" yaml:"private_items"`
}

// DefaultCargoDoc enables every switch and sets the __unstable_doc cfg.
func DefaultCargoDoc() CargoDoc {
	return CargoDoc{
		CustomConfiguration: defaultDocConfigurationConstant,
		Nightly:             true,
		AllFeatures:         true,
		Open:                true,
		EnablePrivateItems:  true,
	}
}

// Argv returns the command tokens.
func (preset CargoDoc) Argv() []string {
	argv := []string{cargoProgramConstant}
	if preset.Nightly {
		argv = append(argv, nightlyToolchainConstant)
	}
	argv = append(argv, rustdocSubcommandConstant)
	if len(preset.Package) > 0 {
		argv = append(argv, packageFlagConstant, preset.Package)
	}
	if preset.AllFeatures {
		argv = append(argv, allFeaturesFlagConstant)
	}
	if preset.Open {
		argv = append(argv, openFlagConstant)
	}
	argv = append(argv, argumentTerminatorConstant)
	if len(preset.CustomConfiguration) > 0 {
		argv = append(argv, configurationFlagConstant, preset.CustomConfiguration)
	}
	if preset.EnablePrivateItems {
		argv = append(argv, privateItemsFlagConstant)
	}
	return argv
}

// CommandRepresentation returns the argv as an owned pre-split command.
func (preset CargoDoc) CommandRepresentation() execshell.CommandRepresentation {
	return execshell.OwnedCommand(preset.Argv()...)
}

// RunnerConfiguration returns the default runner configuration carrying this command.
func (preset CargoDoc) RunnerConfiguration() execshell.RunnerConfiguration {
	return runnerConfigurationFor(preset.CommandRepresentation(), nil)
}

// CargoCommand is a configurable cargo build-style invocation.
type CargoCommand struct {
	Cargo             string           `mapstructure:"cargo" yaml:"cargo"`
	Nightly           bool             `mapstructure:"nightly" yaml:"nightly"`
	SubCommand        SubCommand       `mapstructure:"sub_command" yaml:"sub_command"`
	Profile           CargoProfile     `mapstructure:"profile" yaml:"profile"`
	Package           string           `mapstructure:"package" yaml:"package"`
	Target            RustcTarget      `mapstructure:"target" yaml:"target"`
	AllPackages       bool             `mapstructure:"workspace" yaml:"workspace"`
	AllFeatures       bool             `mapstructure:"all_features" yaml:"all_features"`
	NoDefaultFeatures bool             `mapstructure:"no_default_features" yaml:"no_default_features"`
	Features          []string         `mapstructure:"features" yaml:"features"`
	BuildStd          BuildStd         `mapstructure:"build_std" yaml:"build_std"`
	BuildStdFeatures  BuildStdFeatures `mapstructure:"build_std_features" yaml:"build_std_features"`
	OtherArguments    []string         `mapstructure:"other_arguments" yaml:"other_arguments"`
	RustFlags         RustFlags        `mapstructure:"rust_flags" yaml:"rust_flags"`
}

// DefaultCargoCommand builds the release profile with the stable toolchain.
func DefaultCargoCommand() CargoCommand {
	return CargoCommand{
		Cargo:      cargoProgramConstant,
		SubCommand: SubCommandBuild,
		Profile:    CargoProfileRelease,
	}
}

// Validate reports invalid codegen settings.
func (preset CargoCommand) Validate() error {
	return preset.RustFlags.Validate()
}

// Argv returns the command tokens in the order cargo documents them.
// Empty string values are omitted and an empty Cargo falls back to "cargo".
func (preset CargoCommand) Argv() []string {
	program := strings.TrimSpace(preset.Cargo)
	if len(program) == 0 {
		program = cargoProgramConstant
	}

	argv := []string{program}
	if preset.Nightly {
		argv = append(argv, nightlyToolchainConstant)
	}
	if len(preset.SubCommand) > 0 {
		argv = append(argv, preset.SubCommand.String())
	}
	argv = appendLongArgument(argv, profileOptionNameConstant, preset.Profile.String())
	argv = appendLongArgument(argv, packageOptionNameConstant, preset.Package)
	if preset.AllPackages {
		argv = append(argv, workspaceFlagConstant)
	}
	argv = appendLongArgument(argv, targetOptionNameConstant, preset.Target.String())
	if preset.AllFeatures {
		argv = append(argv, allFeaturesFlagConstant)
	}
	if preset.NoDefaultFeatures {
		argv = append(argv, noDefaultFeaturesFlagConstant)
	}
	if len(preset.Features) > 0 {
		argv = appendLongArgument(argv, featuresOptionNameConstant, strings.Join(preset.Features, featuresSeparatorConstant))
	}
	argv = append(argv, preset.BuildStd.Arguments()...)
	argv = append(argv, preset.BuildStdFeatures.Arguments()...)
	return append(argv, preset.OtherArguments...)
}

// EnvironmentVariables returns the per-child environment. RUSTFLAGS is always
// present, possibly empty, so an inherited value never leaks into the build.
func (preset CargoCommand) EnvironmentVariables() map[string]string {
	return map[string]string{RustFlagsEnvironmentVariable: preset.RustFlags.Value()}
}

// CommandRepresentation returns the argv as an owned pre-split command.
func (preset CargoCommand) CommandRepresentation() execshell.CommandRepresentation {
	return execshell.OwnedCommand(preset.Argv()...)
}

// RunnerConfiguration returns the default runner configuration carrying this command and its environment.
func (preset CargoCommand) RunnerConfiguration() execshell.RunnerConfiguration {
	return runnerConfigurationFor(preset.CommandRepresentation(), preset.EnvironmentVariables())
}

func appendLongArgument(argv []string, name string, value string) []string {
	if len(value) == 0 {
		return argv
	}
	return append(argv, fmt.Sprintf(longArgumentTemplateConstant, name, value))
}

func runnerConfigurationFor(representation execshell.CommandRepresentation, environmentVariables map[string]string) execshell.RunnerConfiguration {
	configuration := execshell.DefaultRunnerConfiguration()
	configuration.Command = representation
	configuration.EnvironmentVariables = environmentVariables
	return configuration
}
