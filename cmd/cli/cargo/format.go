package cargo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/presets"
	"github.com/temirov/cmdkit/internal/utils/flags"
)

const (
	formatCommandUseConstant              = "fmt"
	formatCommandShortDescriptionConstant = "Format the crate with cargo fmt"
	formatCommandLongDescriptionConstant  = "fmt runs cargo fmt, on the nightly toolchain unless disabled, with the current process stdio."
	nightlyFlagNameConstant               = "nightly"
	nightlyFlagUsageConstant              = "Use the nightly toolchain"
)

// FormatCommandBuilder assembles the fmt command.
type FormatCommandBuilder struct {
	Dependencies
}

// Build constructs the fmt command.
func (builder *FormatCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   formatCommandUseConstant,
		Short: formatCommandShortDescriptionConstant,
		Long:  formatCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
	}

	var nightly bool
	flags.AddToggleFlag(command.Flags(), &nightly, nightlyFlagNameConstant, "", presets.DefaultCargoFormat().Nightly, nightlyFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		preset := builder.resolveConfiguration().Format
		if flags.FlagChanged(command, nightlyFlagNameConstant) {
			preset.Nightly = nightly
		}

		runnerConfiguration, configurationError := builder.runnerConfiguration(preset.RunnerConfiguration())
		if configurationError != nil {
			return configurationError
		}
		return shared.RunCommand(shared.ExecutionContext(command), command, builder.LoggerProvider, builder.EventObserverProvider, runnerConfiguration)
	}
	return command, nil
}
