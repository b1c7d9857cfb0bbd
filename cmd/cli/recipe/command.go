package recipe

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/recipes"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	commandUseConstant              = "recipe FILE [NAME...]"
	commandShortDescriptionConstant = "Run named commands from a recipe file"
	commandLongDescriptionConstant  = "recipe loads a YAML recipe file and runs the named recipes in order, or every recipe when no name is given. Execution stops at the first failure."
	listFlagNameConstant            = "list"
	listFlagUsageConstant           = "List the recipes defined in the file without running them"
	recipeListingTemplateConstant   = "%s\t%s\n"
)

// CommandBuilder assembles the recipe command.
type CommandBuilder struct {
	LoggerProvider        shared.LoggerProvider
	EventObserverProvider shared.EventObserverProvider
	PathResolver          *pathutils.PathResolver
}

// Build constructs the recipe command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
	}

	var listRecipes bool
	command.Flags().BoolVar(&listRecipes, listFlagNameConstant, false, listFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		configuration, loadError := recipes.LoadConfiguration(builder.resolver().Resolve(arguments[0], ""))
		if loadError != nil {
			return loadError
		}

		if listRecipes {
			return printRecipes(command, configuration)
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
		return executor.Execute(shared.ExecutionContext(command), configuration, arguments[1:])
	}
	return command, nil
}

func (builder *CommandBuilder) resolver() *pathutils.PathResolver {
	if builder.PathResolver == nil {
		return pathutils.NewPathResolver()
	}
	return builder.PathResolver
}

func printRecipes(command *cobra.Command, configuration recipes.Configuration) error {
	writer := shared.OutputWriter(command)
	for _, recipe := range configuration.Recipes {
		description := strings.TrimSpace(recipe.Command)
		if len(recipe.Argv) > 0 {
			description = execshell.NormalizedArgv(recipe.Argv).String()
		}
		if _, writeError := fmt.Fprintf(writer, recipeListingTemplateConstant, recipe.Name, description); writeError != nil {
			return writeError
		}
	}
	return nil
}
