package cargo

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/presets"
	"github.com/temirov/cmdkit/internal/utils/flags"
)

const (
	buildCommandUseConstant              = "build [flags] [-- CARGO_ARGUMENT...]"
	buildCommandShortDescriptionConstant = "Run a configurable cargo build-style command"
	buildCommandLongDescriptionConstant  = "build assembles a cargo invocation from the build preset and flags, delivers RUSTFLAGS through the child environment, and runs it. Arguments after -- are appended verbatim."
	subCommandFlagNameConstant           = "sub-command"
	subCommandFlagUsageConstant          = "Cargo subcommand (build, run, test, bench, check, rustc or a custom one)"
	profileFlagNameConstant              = "profile"
	profileFlagUsageConstant             = "Cargo profile (release, dev or a custom one)"
	buildPackageFlagUsageConstant        = "Package to build"
	targetFlagNameConstant               = "target"
	targetFlagUsageConstant              = "Target triple to build for"
	featuresFlagNameConstant             = "features"
	featuresFlagUsageConstant            = "Features to activate (comma separated)"
	workspaceFlagNameConstant            = "workspace"
	workspaceFlagUsageConstant           = "Build all packages in the workspace"
	noDefaultFeaturesFlagNameConstant    = "no-default-features"
	noDefaultFeaturesFlagUsageConstant   = "Do not activate the default feature"
	buildStdFlagNameConstant             = "build-std"
	buildStdFlagUsageConstant            = "Standard library crates to rebuild (std, core, alloc, panic_abort, panic_unwind, test, proc_macro)"
	buildStdDefaultFlagNameConstant      = "build-std-default"
	buildStdDefaultFlagUsageConstant     = "Rebuild the default standard library set when no crate is listed"
	buildStdFeaturesFlagNameConstant     = "build-std-features"
	buildStdFeaturesFlagUsageConstant    = "Standard library features to enable"
	rustFlagFlagNameConstant             = "rustflag"
	rustFlagFlagUsageConstant            = "Additional RUSTFLAGS entry (repeatable)"
	printFlagNameConstant                = "print"
	printFlagUsageConstant               = "Print the argv and RUSTFLAGS instead of running cargo"
	buildPresetErrorTemplateConstant     = "invalid build preset: %w"
	printedEnvironmentTemplateConstant   = "%s=%s\n"
)

// BuildCommandBuilder assembles the build command.
type BuildCommandBuilder struct {
	Dependencies
}

type buildFlagValues struct {
	subCommand        string
	profile           string
	packageName       string
	target            string
	features          []string
	workspace         bool
	allFeatures       bool
	noDefaultFeatures bool
	nightly           bool
	buildStd          []string
	buildStdDefault   bool
	buildStdFeatures  []string
	rustFlags         []string
	print             bool
}

// Build constructs the build command.
func (builder *BuildCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   buildCommandUseConstant,
		Short: buildCommandShortDescriptionConstant,
		Long:  buildCommandLongDescriptionConstant,
	}

	defaults := presets.DefaultCargoCommand()
	flagValues := &buildFlagValues{}
	flagSet := command.Flags()
	flagSet.StringVar(&flagValues.subCommand, subCommandFlagNameConstant, defaults.SubCommand.String(), subCommandFlagUsageConstant)
	flagSet.StringVar(&flagValues.profile, profileFlagNameConstant, defaults.Profile.String(), profileFlagUsageConstant)
	flagSet.StringVar(&flagValues.packageName, packageFlagNameConstant, defaults.Package, buildPackageFlagUsageConstant)
	flagSet.StringVar(&flagValues.target, targetFlagNameConstant, defaults.Target.String(), targetFlagUsageConstant)
	flagSet.StringSliceVar(&flagValues.features, featuresFlagNameConstant, nil, featuresFlagUsageConstant)
	flags.AddToggleFlag(flagSet, &flagValues.workspace, workspaceFlagNameConstant, "", defaults.AllPackages, workspaceFlagUsageConstant)
	flags.AddToggleFlag(flagSet, &flagValues.allFeatures, allFeaturesFlagNameConstant, "", defaults.AllFeatures, allFeaturesFlagUsageConstant)
	flags.AddToggleFlag(flagSet, &flagValues.noDefaultFeatures, noDefaultFeaturesFlagNameConstant, "", defaults.NoDefaultFeatures, noDefaultFeaturesFlagUsageConstant)
	flags.AddToggleFlag(flagSet, &flagValues.nightly, nightlyFlagNameConstant, "", defaults.Nightly, nightlyFlagUsageConstant)
	flagSet.StringSliceVar(&flagValues.buildStd, buildStdFlagNameConstant, nil, buildStdFlagUsageConstant)
	flags.AddToggleFlag(flagSet, &flagValues.buildStdDefault, buildStdDefaultFlagNameConstant, "", defaults.BuildStd.BuildDefault, buildStdDefaultFlagUsageConstant)
	flagSet.StringSliceVar(&flagValues.buildStdFeatures, buildStdFeaturesFlagNameConstant, nil, buildStdFeaturesFlagUsageConstant)
	flagSet.StringArrayVar(&flagValues.rustFlags, rustFlagFlagNameConstant, nil, rustFlagFlagUsageConstant)
	flagSet.BoolVar(&flagValues.print, printFlagNameConstant, false, printFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		preset, presetError := builder.resolveBuildPreset(command, flagValues, arguments)
		if presetError != nil {
			return fmt.Errorf(buildPresetErrorTemplateConstant, presetError)
		}

		if flagValues.print {
			return printBuildPreset(shared.OutputWriter(command), preset)
		}

		runnerConfiguration, configurationError := builder.runnerConfiguration(preset.RunnerConfiguration())
		if configurationError != nil {
			return configurationError
		}
		return shared.RunCommand(shared.ExecutionContext(command), command, builder.LoggerProvider, builder.EventObserverProvider, runnerConfiguration)
	}
	return command, nil
}

func (builder *BuildCommandBuilder) resolveBuildPreset(command *cobra.Command, flagValues *buildFlagValues, arguments []string) (presets.CargoCommand, error) {
	preset := builder.resolveConfiguration().Build

	if flags.FlagChanged(command, subCommandFlagNameConstant) {
		preset.SubCommand = presets.SubCommand(strings.TrimSpace(flagValues.subCommand))
	}
	if flags.FlagChanged(command, profileFlagNameConstant) {
		preset.Profile = presets.ParseCargoProfile(flagValues.profile)
	}
	if flags.FlagChanged(command, packageFlagNameConstant) {
		preset.Package = strings.TrimSpace(flagValues.packageName)
	}
	if flags.FlagChanged(command, targetFlagNameConstant) {
		preset.Target = presets.RustcTarget(strings.TrimSpace(flagValues.target))
	}
	if flags.FlagChanged(command, featuresFlagNameConstant) {
		preset.Features = append([]string(nil), flagValues.features...)
	}
	if flags.FlagChanged(command, workspaceFlagNameConstant) {
		preset.AllPackages = flagValues.workspace
	}
	if flags.FlagChanged(command, allFeaturesFlagNameConstant) {
		preset.AllFeatures = flagValues.allFeatures
	}
	if flags.FlagChanged(command, noDefaultFeaturesFlagNameConstant) {
		preset.NoDefaultFeatures = flagValues.noDefaultFeatures
	}
	if flags.FlagChanged(command, nightlyFlagNameConstant) {
		preset.Nightly = flagValues.nightly
	}
	if flags.FlagChanged(command, buildStdFlagNameConstant) {
		buildStd, buildStdError := presets.ParseBuildStd(flagValues.buildStd)
		if buildStdError != nil {
			return presets.CargoCommand{}, buildStdError
		}
		buildStd.BuildDefault = buildStd.BuildDefault || preset.BuildStd.BuildDefault
		preset.BuildStd = buildStd
	}
	if flags.FlagChanged(command, buildStdDefaultFlagNameConstant) {
		preset.BuildStd.BuildDefault = flagValues.buildStdDefault
	}
	if flags.FlagChanged(command, buildStdFeaturesFlagNameConstant) {
		buildStdFeatures, featuresError := presets.ParseBuildStdFeatures(flagValues.buildStdFeatures)
		if featuresError != nil {
			return presets.CargoCommand{}, featuresError
		}
		preset.BuildStdFeatures = buildStdFeatures
	}
	if len(flagValues.rustFlags) > 0 {
		preset.RustFlags.OtherFlags = append(append([]string(nil), preset.RustFlags.OtherFlags...), flagValues.rustFlags...)
	}
	if len(arguments) > 0 {
		preset.OtherArguments = append(append([]string(nil), preset.OtherArguments...), arguments...)
	}

	if validationError := preset.Validate(); validationError != nil {
		return presets.CargoCommand{}, validationError
	}
	return preset, nil
}

func printBuildPreset(writer io.Writer, preset presets.CargoCommand) error {
	if _, writeError := fmt.Fprintf(writer, printedEnvironmentTemplateConstant, presets.RustFlagsEnvironmentVariable, preset.RustFlags.Value()); writeError != nil {
		return writeError
	}
	_, writeError := fmt.Fprintln(writer, execshell.NormalizedArgv(preset.Argv()).String())
	return writeError
}
