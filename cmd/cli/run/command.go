package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/recipes"
	"github.com/temirov/cmdkit/internal/utils/flags"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	commandUseConstant                   = "run [flags] -- COMMAND [ARGUMENT...]"
	commandShortDescriptionConstant      = "Run a command from raw text or a presplit argv"
	commandLongDescriptionConstant       = "run tokenizes the arguments as shell-like command text (or takes them verbatim with --argv), prints the normalized argv, and executes it without a shell."
	commandRecipeNameConstant            = "run"
	commandTextSeparatorConstant         = " "
	standardInputPathConstant            = "-"
	missingCommandMessageConstant        = "a command to run is required"
	invalidCaptureTemplateConstant       = "invalid --capture value: %w"
	invalidInspectTemplateConstant       = "invalid --inspect value: %w"
	standardInputReadErrorTemplate       = "unable to read standard input from %s: %w"
	environmentFlagErrorTemplateConstant = "invalid --env value: %w"
)

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider         shared.LoggerProvider
	EventObserverProvider  shared.EventObserverProvider
	RunnerDefaultsProvider shared.RunnerDefaultsProvider
	PathResolver           *pathutils.PathResolver
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
	}

	runnerDefaults := shared.DefaultRunnerDefaults()
	flagValues := flags.BindRunnerFlags(command, flags.RunnerFlagDefaults{
		RemoveComments:   runnerDefaults.RemoveComments,
		Inspect:          runnerDefaults.Inspect,
		WorkingDirectory: runnerDefaults.WorkingDirectory,
	})
	command.Flags().SetInterspersed(false)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, flagValues)
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues *flags.RunnerFlagValues) error {
	if len(arguments) == 0 {
		if helpError := shared.DisplayCommandHelp(command); helpError != nil {
			return helpError
		}
		return errors.New(missingCommandMessageConstant)
	}

	recipe, recipeError := builder.buildRecipe(command, arguments, flagValues)
	if recipeError != nil {
		return recipeError
	}

	executor, executorError := recipes.NewExecutor(recipes.Dependencies{
		Logger:           shared.ResolveLogger(builder.LoggerProvider),
		EventObserver:    shared.ResolveEventObserver(builder.EventObserverProvider),
		PathResolver:     builder.PathResolver,
		Output:           shared.OutputWriter(command),
		InspectionOutput: shared.InspectionWriter(command),
	})
	if executorError != nil {
		return executorError
	}

	return executor.ExecuteRecipe(shared.ExecutionContext(command), recipe)
}

func (builder *CommandBuilder) buildRecipe(command *cobra.Command, arguments []string, flagValues *flags.RunnerFlagValues) (recipes.Recipe, error) {
	runnerDefaults := shared.ResolveRunnerDefaults(builder.RunnerDefaultsProvider)

	captureTarget, captureError := execshell.ParseCaptureTarget(flagValues.Capture)
	if captureError != nil {
		return recipes.Recipe{}, fmt.Errorf(invalidCaptureTemplateConstant, captureError)
	}

	inspectMode := runnerDefaults.Inspect
	if flags.FlagChanged(command, flags.InspectFlagName) {
		parsedInspectMode, inspectError := execshell.ParseInspectMode(flagValues.Inspect)
		if inspectError != nil {
			return recipes.Recipe{}, fmt.Errorf(invalidInspectTemplateConstant, inspectError)
		}
		inspectMode = parsedInspectMode
	}

	removeComments := runnerDefaults.RemoveComments
	if flags.FlagChanged(command, flags.RemoveCommentsFlagName) {
		removeComments = flagValues.RemoveComments
	}

	workingDirectory := runnerDefaults.WorkingDirectory
	if flags.FlagChanged(command, flags.WorkingDirectoryFlagName) {
		workingDirectory = flagValues.WorkingDirectory
	}

	configuredEnvironment, configuredEnvironmentError := flags.ParseEnvironmentAssignments(runnerDefaults.Environment)
	if configuredEnvironmentError != nil {
		return recipes.Recipe{}, fmt.Errorf(environmentFlagErrorTemplateConstant, configuredEnvironmentError)
	}
	flagEnvironment, flagEnvironmentError := flags.ParseEnvironmentAssignments(flagValues.Environment)
	if flagEnvironmentError != nil {
		return recipes.Recipe{}, fmt.Errorf(environmentFlagErrorTemplateConstant, flagEnvironmentError)
	}

	recipe := recipes.Recipe{
		Name:             commandRecipeNameConstant,
		Capture:          captureTarget,
		Inspect:          inspectMode,
		RemoveComments:   &removeComments,
		WorkingDirectory: workingDirectory,
		Environment:      mergeEnvironment(configuredEnvironment, flagEnvironment),
	}
	if flagValues.Argv {
		recipe.Argv = append([]string(nil), arguments...)
	} else {
		recipe.Command = strings.Join(arguments, commandTextSeparatorConstant)
	}

	if len(flagValues.StdinFile) > 0 {
		standardInput, readError := readStandardInput(command, builder.resolvePath(flagValues.StdinFile))
		if readError != nil {
			return recipes.Recipe{}, readError
		}
		recipe.Stdin = &standardInput
	}
	return recipe, nil
}

func (builder *CommandBuilder) resolvePath(path string) string {
	if path == standardInputPathConstant {
		return path
	}
	resolver := builder.PathResolver
	if resolver == nil {
		resolver = pathutils.NewPathResolver()
	}
	return resolver.Resolve(path, "")
}

func readStandardInput(command *cobra.Command, path string) (string, error) {
	var (
		content   []byte
		readError error
	)
	if path == standardInputPathConstant {
		content, readError = io.ReadAll(command.InOrStdin())
	} else {
		content, readError = os.ReadFile(path)
	}
	if readError != nil {
		return "", fmt.Errorf(standardInputReadErrorTemplate, path, readError)
	}
	return string(content), nil
}

func mergeEnvironment(environments ...map[string]string) map[string]string {
	var merged map[string]string
	for _, environment := range environments {
		for environmentKey, environmentValue := range environment {
			if merged == nil {
				merged = make(map[string]string)
			}
			merged[environmentKey] = environmentValue
		}
	}
	return merged
}
