package cargo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/presets"
	"github.com/temirov/cmdkit/internal/utils/flags"
)

const (
	docCommandUseConstant              = "doc"
	docCommandShortDescriptionConstant = "Build crate documentation with cargo rustdoc"
	docCommandLongDescriptionConstant  = "doc runs cargo rustdoc with the configured package, cfg and visibility switches."
	packageFlagNameConstant            = "package"
	packageFlagUsageConstant           = "Package to document"
	cfgFlagNameConstant                = "cfg"
	cfgFlagUsageConstant               = "Configuration predicate passed to rustdoc as --cfg"
	allFeaturesFlagNameConstant        = "all-features"
	allFeaturesFlagUsageConstant       = "Activate all available features"
	openFlagNameConstant               = "open"
	openFlagUsageConstant              = "Open the docs in a browser after building"
	privateItemsFlagNameConstant       = "private-items"
	privateItemsFlagUsageConstant      = "Document private items"
)

// DocCommandBuilder assembles the doc command.
type DocCommandBuilder struct {
	Dependencies
}

// Build constructs the doc command.
func (builder *DocCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   docCommandUseConstant,
		Short: docCommandShortDescriptionConstant,
		Long:  docCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
	}

	defaults := presets.DefaultCargoDoc()
	flagValues := defaults
	command.Flags().StringVar(&flagValues.Package, packageFlagNameConstant, defaults.Package, packageFlagUsageConstant)
	command.Flags().StringVar(&flagValues.CustomConfiguration, cfgFlagNameConstant, defaults.CustomConfiguration, cfgFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.Nightly, nightlyFlagNameConstant, "", defaults.Nightly, nightlyFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.AllFeatures, allFeaturesFlagNameConstant, "", defaults.AllFeatures, allFeaturesFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.Open, openFlagNameConstant, "", defaults.Open, openFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.EnablePrivateItems, privateItemsFlagNameConstant, "", defaults.EnablePrivateItems, privateItemsFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		preset := builder.resolveDocPreset(command, flagValues)
		runnerConfiguration, configurationError := builder.runnerConfiguration(preset.RunnerConfiguration())
		if configurationError != nil {
			return configurationError
		}
		return shared.RunCommand(shared.ExecutionContext(command), command, builder.LoggerProvider, builder.EventObserverProvider, runnerConfiguration)
	}
	return command, nil
}

func (builder *DocCommandBuilder) resolveDocPreset(command *cobra.Command, flagValues presets.CargoDoc) presets.CargoDoc {
	preset := builder.resolveConfiguration().Doc
	if flags.FlagChanged(command, packageFlagNameConstant) {
		preset.Package = flagValues.Package
	}
	if flags.FlagChanged(command, cfgFlagNameConstant) {
		preset.CustomConfiguration = flagValues.CustomConfiguration
	}
	if flags.FlagChanged(command, nightlyFlagNameConstant) {
		preset.Nightly = flagValues.Nightly
	}
	if flags.FlagChanged(command, allFeaturesFlagNameConstant) {
		preset.AllFeatures = flagValues.AllFeatures
	}
	if flags.FlagChanged(command, openFlagNameConstant) {
		preset.Open = flagValues.Open
	}
	if flags.FlagChanged(command, privateItemsFlagNameConstant) {
		preset.EnablePrivateItems = flagValues.EnablePrivateItems
	}
	return preset
}
