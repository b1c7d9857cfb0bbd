package cargo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/presets"
	"github.com/temirov/cmdkit/internal/ui"
)

const (
	targetsCommandUseConstant              = "targets"
	targetsCommandShortDescriptionConstant = "List rustc target triples"
	targetsCommandLongDescriptionConstant  = "targets prints the catalogued rustc target triples, or with --from-rustc the triples reported by rustc --print target-list."
	fromRustcFlagNameConstant              = "from-rustc"
	fromRustcFlagUsageConstant             = "Query rustc for the supported targets instead of using the catalogue"
	catalogueHeadingConstant               = "Catalogued targets"
	rustcHeadingConstant                   = "Targets reported by rustc"
)

// TargetsCommandBuilder assembles the targets command.
type TargetsCommandBuilder struct {
	Dependencies
}

// Build constructs the targets command.
func (builder *TargetsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   targetsCommandUseConstant,
		Short: targetsCommandShortDescriptionConstant,
		Long:  targetsCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
	}

	var fromRustc bool
	command.Flags().BoolVar(&fromRustc, fromRustcFlagNameConstant, false, fromRustcFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		renderer := ui.NewTargetTableRenderer(shared.OutputWriter(command))
		if !fromRustc {
			return renderer.Render(catalogueHeadingConstant, presets.KnownRustcTargets())
		}

		targets, listError := builder.listRustcTargets(command)
		if listError != nil {
			return listError
		}
		return renderer.Render(rustcHeadingConstant, targets)
	}
	return command, nil
}

func (builder *TargetsCommandBuilder) listRustcTargets(command *cobra.Command) ([]presets.RustcTarget, error) {
	listConfiguration := execshell.DefaultRunnerConfiguration()
	listConfiguration.Command = execshell.OwnedCommand(presets.RustcTargetListArgv()...)

	runnerConfiguration, configurationError := builder.runnerConfiguration(listConfiguration)
	if configurationError != nil {
		return nil, configurationError
	}

	runner, runnerError := shared.NewRunner(command, builder.LoggerProvider, builder.EventObserverProvider, runnerConfiguration)
	if runnerError != nil {
		return nil, runnerError
	}

	capturedOutput, captureError := runner.Capture(shared.ExecutionContext(command), execshell.CaptureStdout)
	if captureError != nil {
		return nil, captureError
	}
	if !capturedOutput.ExitStatus.Success() {
		return nil, execshell.CommandFailedError{Argv: capturedOutput.Argv, ExitStatus: capturedOutput.ExitStatus}
	}
	return presets.ParseRustcTargetList(capturedOutput.Stdout.Data), nil
}
