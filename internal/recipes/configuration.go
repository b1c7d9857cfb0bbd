package recipes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/cmdkit/internal/execshell"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	configurationLoadErrorTemplateConstant   = "failed to load recipe configuration: %w"
	configurationParseErrorTemplateConstant  = "failed to parse recipe configuration: %w"
	configurationPathRequiredMessageConstant = "recipe configuration path must be provided"
	recipeCommandConflictTemplateConstant    = "%w: %s must define exactly one of command or argv"
	recipeUnknownNameTemplateConstant        = "%w: %s"
	recipeDuplicateNameTemplateConstant      = "%w: %s"
	recipeEmptyConfigurationMessageConstant  = "recipe configuration must define at least one recipe"
	recipeNameRequiredMessageConstant        = "recipe names must be non-empty"
	recipeDuplicateNameMessageConstant       = "recipe configuration defines duplicate recipe names"
	recipeUnknownNameMessageConstant         = "unknown recipe"
	recipeInvalidCommandMessageConstant      = "recipe command is invalid"
)

var (
	// ErrNoRecipes indicates a configuration without recipes.
	ErrNoRecipes = errors.New(recipeEmptyConfigurationMessageConstant)
	// ErrRecipeNameRequired indicates a recipe without a name.
	ErrRecipeNameRequired = errors.New(recipeNameRequiredMessageConstant)
	// ErrDuplicateRecipeName indicates two recipes sharing a name.
	ErrDuplicateRecipeName = errors.New(recipeDuplicateNameMessageConstant)
	// ErrUnknownRecipe indicates a requested recipe name that is not defined.
	ErrUnknownRecipe = errors.New(recipeUnknownNameMessageConstant)
	// ErrInvalidRecipeCommand indicates a recipe with neither or both of command and argv.
	ErrInvalidRecipeCommand = errors.New(recipeInvalidCommandMessageConstant)
)

// Recipe describes one named command.
type Recipe struct {
	Name             string                  `yaml:"name"`
	Command          string                  `yaml:"command"`
	Argv             []string                `yaml:"argv"`
	Capture          execshell.CaptureTarget `yaml:"capture"`
	Inspect          execshell.InspectMode   `yaml:"inspect"`
	RemoveComments   *bool                   `yaml:"remove_comments"`
	Stdin            *string                 `yaml:"stdin"`
	WorkingDirectory string                  `yaml:"working_directory"`
	Environment      map[string]string       `yaml:"environment"`

	baseDirectory string
}

// Configuration is the ordered list of recipes loaded from one file.
type Configuration struct {
	Recipes []Recipe `yaml:"recipes"`
}

// LoadConfiguration reads and validates a recipe file. Relative working
// directories are anchored at the directory containing the file.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes, filepath.Dir(trimmedPath))
}

// ParseConfiguration decodes recipes from YAML content. The recipes may be
// nested under a top-level "cmdkit" key.
func ParseConfiguration(content []byte, baseDirectory string) (Configuration, error) {
	var document struct {
		Wrapped       *Configuration `yaml:"cmdkit"`
		Configuration `yaml:",inline"`
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if decodeError := decoder.Decode(&document); decodeError != nil && !errors.Is(decodeError, io.EOF) {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, decodeError)
	}

	configuration := document.Configuration
	if document.Wrapped != nil {
		configuration = *document.Wrapped
	}

	if validationError := configuration.validate(); validationError != nil {
		return Configuration{}, validationError
	}

	for recipeIndex := range configuration.Recipes {
		configuration.Recipes[recipeIndex].baseDirectory = baseDirectory
	}
	return configuration, nil
}

func (configuration *Configuration) validate() error {
	if len(configuration.Recipes) == 0 {
		return ErrNoRecipes
	}

	seenNames := make(map[string]struct{}, len(configuration.Recipes))
	for recipeIndex := range configuration.Recipes {
		recipe := &configuration.Recipes[recipeIndex]
		recipe.Name = strings.TrimSpace(recipe.Name)
		if len(recipe.Name) == 0 {
			return ErrRecipeNameRequired
		}
		if _, duplicate := seenNames[recipe.Name]; duplicate {
			return fmt.Errorf(recipeDuplicateNameTemplateConstant, ErrDuplicateRecipeName, recipe.Name)
		}
		seenNames[recipe.Name] = struct{}{}

		hasCommand := len(strings.TrimSpace(recipe.Command)) > 0
		hasArgv := len(recipe.Argv) > 0
		if hasCommand == hasArgv {
			return fmt.Errorf(recipeCommandConflictTemplateConstant, ErrInvalidRecipeCommand, recipe.Name)
		}
	}
	return nil
}

// Select returns the named recipes in file order, or every recipe when names is empty.
func (configuration Configuration) Select(names []string) ([]Recipe, error) {
	if len(names) == 0 {
		return append([]Recipe(nil), configuration.Recipes...), nil
	}

	requestedNames := make(map[string]struct{}, len(names))
	for _, name := range names {
		requestedNames[strings.TrimSpace(name)] = struct{}{}
	}

	selectedRecipes := make([]Recipe, 0, len(requestedNames))
	for _, recipe := range configuration.Recipes {
		if _, requested := requestedNames[recipe.Name]; requested {
			selectedRecipes = append(selectedRecipes, recipe)
			delete(requestedNames, recipe.Name)
		}
	}
	for _, name := range names {
		if _, missing := requestedNames[strings.TrimSpace(name)]; missing {
			return nil, fmt.Errorf(recipeUnknownNameTemplateConstant, ErrUnknownRecipe, name)
		}
	}
	return selectedRecipes, nil
}

// RunnerConfiguration converts the recipe into a runner configuration.
// Comment removal defaults to enabled and stdin is only attached when the key is present.
func (recipe Recipe) RunnerConfiguration(resolver *pathutils.PathResolver) execshell.RunnerConfiguration {
	configuration := execshell.DefaultRunnerConfiguration()
	if len(recipe.Argv) > 0 {
		configuration.Command = execshell.OwnedCommand(recipe.Argv...)
	} else {
		configuration.Command = execshell.RawCommand(recipe.Command)
	}
	if recipe.RemoveComments != nil {
		configuration.RemoveComments = *recipe.RemoveComments
	}
	configuration.InspectMode = recipe.Inspect
	if recipe.Stdin != nil {
		configuration.StandardInput = []byte(*recipe.Stdin)
	}
	if resolver == nil {
		resolver = pathutils.NewPathResolver()
	}
	configuration.WorkingDirectory = resolver.Resolve(recipe.WorkingDirectory, recipe.baseDirectory)
	if len(recipe.Environment) > 0 {
		configuration.EnvironmentVariables = make(map[string]string, len(recipe.Environment))
		for environmentKey, environmentValue := range recipe.Environment {
			configuration.EnvironmentVariables[environmentKey] = environmentValue
		}
	}
	return configuration
}
