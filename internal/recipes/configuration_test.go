package recipes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/recipes"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	testRecipeFileNameConstant      = "recipes.yaml"
	testRecipeBaseDirectoryConstant = "/workspace/project"
	testRecipeHomeDirectoryConstant = "/home/tester"
	testTwoRecipeDocumentConstant   = `
recipes:
  - name: format
    command: |
      cargo +nightly fmt
      // trailing comment
    inspect: log
  - name: listing
    argv: ["ls", "-la", "// kept"]
    capture: both
    remove_comments: false
    stdin: "payload"
    working_directory: crates/core
    environment:
      RUSTFLAGS: "-C opt-level=3"
`
	testWrappedRecipeDocumentConstant = `
cmdkit:
  recipes:
    - name: wrapped
      argv: ["true"]
`
)

func stubHomeDirectory() (string, error) {
	return testRecipeHomeDirectoryConstant, nil
}

func TestParseConfigurationDecodesRecipes(testInstance *testing.T) {
	configuration, parseError := recipes.ParseConfiguration([]byte(testTwoRecipeDocumentConstant), testRecipeBaseDirectoryConstant)
	require.NoError(testInstance, parseError)
	require.Len(testInstance, configuration.Recipes, 2)

	formatRecipe := configuration.Recipes[0]
	require.Equal(testInstance, "format", formatRecipe.Name)
	require.Equal(testInstance, execshell.InspectLogDebug, formatRecipe.Inspect)
	require.Equal(testInstance, execshell.CaptureNone, formatRecipe.Capture)
	require.Nil(testInstance, formatRecipe.Stdin)

	listingRecipe := configuration.Recipes[1]
	require.Equal(testInstance, []string{"ls", "-la", "// kept"}, listingRecipe.Argv)
	require.Equal(testInstance, execshell.CaptureBoth, listingRecipe.Capture)
	require.NotNil(testInstance, listingRecipe.RemoveComments)
	require.False(testInstance, *listingRecipe.RemoveComments)
	require.NotNil(testInstance, listingRecipe.Stdin)
	require.Equal(testInstance, "payload", *listingRecipe.Stdin)
}

func TestParseConfigurationAcceptsWrapperKey(testInstance *testing.T) {
	configuration, parseError := recipes.ParseConfiguration([]byte(testWrappedRecipeDocumentConstant), testRecipeBaseDirectoryConstant)
	require.NoError(testInstance, parseError)
	require.Len(testInstance, configuration.Recipes, 1)
	require.Equal(testInstance, "wrapped", configuration.Recipes[0].Name)
}

func TestParseConfigurationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		document      string
		expectedError error
	}{
		{
			name:          "empty_document",
			document:      "",
			expectedError: recipes.ErrNoRecipes,
		},
		{
			name:          "missing_name",
			document:      "recipes:\n  - command: cargo build\n",
			expectedError: recipes.ErrRecipeNameRequired,
		},
		{
			name:          "duplicate_name",
			document:      "recipes:\n  - name: build\n    command: cargo build\n  - name: build\n    argv: [cargo]\n",
			expectedError: recipes.ErrDuplicateRecipeName,
		},
		{
			name:          "both_command_forms",
			document:      "recipes:\n  - name: build\n    command: cargo build\n    argv: [cargo]\n",
			expectedError: recipes.ErrInvalidRecipeCommand,
		},
		{
			name:          "no_command_form",
			document:      "recipes:\n  - name: build\n",
			expectedError: recipes.ErrInvalidRecipeCommand,
		},
		{
			name:          "unknown_inspect_mode",
			document:      "recipes:\n  - name: build\n    command: cargo build\n    inspect: loud\n",
			expectedError: execshell.ErrUnsupportedInspectMode,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, parseError := recipes.ParseConfiguration([]byte(testCase.document), testRecipeBaseDirectoryConstant)
			require.ErrorIs(testInstance, parseError, testCase.expectedError)
		})
	}
}

func TestParseConfigurationRejectsUnknownKeys(testInstance *testing.T) {
	_, parseError := recipes.ParseConfiguration([]byte("recipes:\n  - name: build\n    command: cargo build\n    shell: bash\n"), testRecipeBaseDirectoryConstant)
	require.Error(testInstance, parseError)
}

func TestConfigurationSelect(testInstance *testing.T) {
	configuration, parseError := recipes.ParseConfiguration([]byte(testTwoRecipeDocumentConstant), testRecipeBaseDirectoryConstant)
	require.NoError(testInstance, parseError)

	testCases := []struct {
		name          string
		names         []string
		expectedNames []string
		expectedError error
	}{
		{
			name:          "all_when_empty",
			expectedNames: []string{"format", "listing"},
		},
		{
			name:          "file_order_preserved",
			names:         []string{"listing", "format"},
			expectedNames: []string{"format", "listing"},
		},
		{
			name:          "single_recipe",
			names:         []string{"listing"},
			expectedNames: []string{"listing"},
		},
		{
			name:          "unknown_recipe",
			names:         []string{"format", "deploy"},
			expectedError: recipes.ErrUnknownRecipe,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			selectedRecipes, selectionError := configuration.Select(testCase.names)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, selectionError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, selectionError)
			selectedNames := make([]string, 0, len(selectedRecipes))
			for _, recipe := range selectedRecipes {
				selectedNames = append(selectedNames, recipe.Name)
			}
			require.Equal(testInstance, testCase.expectedNames, selectedNames)
		})
	}
}

func TestRecipeRunnerConfiguration(testInstance *testing.T) {
	configuration, parseError := recipes.ParseConfiguration([]byte(testTwoRecipeDocumentConstant), testRecipeBaseDirectoryConstant)
	require.NoError(testInstance, parseError)
	resolver := pathutils.NewPathResolverWithProvider(stubHomeDirectory)

	formatConfiguration := configuration.Recipes[0].RunnerConfiguration(resolver)
	require.True(testInstance, formatConfiguration.RemoveComments)
	require.Equal(testInstance, execshell.InspectLogDebug, formatConfiguration.InspectMode)
	require.Nil(testInstance, formatConfiguration.StandardInput)
	require.Empty(testInstance, formatConfiguration.WorkingDirectory)
	formatArgv, normalizeError := formatConfiguration.Command.Normalize(formatConfiguration.RemoveComments)
	require.NoError(testInstance, normalizeError)
	require.Equal(testInstance, execshell.NormalizedArgv{"cargo", "+nightly", "fmt"}, formatArgv)

	listingConfiguration := configuration.Recipes[1].RunnerConfiguration(resolver)
	require.False(testInstance, listingConfiguration.RemoveComments)
	require.Equal(testInstance, []byte("payload"), listingConfiguration.StandardInput)
	require.Equal(testInstance, filepath.Join(testRecipeBaseDirectoryConstant, "crates", "core"), listingConfiguration.WorkingDirectory)
	require.Equal(testInstance, map[string]string{"RUSTFLAGS": "-C opt-level=3"}, listingConfiguration.EnvironmentVariables)
	listingArgv, normalizeError := listingConfiguration.Command.Normalize(listingConfiguration.RemoveComments)
	require.NoError(testInstance, normalizeError)
	require.Equal(testInstance, execshell.NormalizedArgv{"ls", "-la", "// kept"}, listingArgv)
}

func TestLoadConfigurationAnchorsWorkingDirectory(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, testRecipeFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testTwoRecipeDocumentConstant), 0o600))

	configuration, loadError := recipes.LoadConfiguration(configurationPath)
	require.NoError(testInstance, loadError)

	listingConfiguration := configuration.Recipes[1].RunnerConfiguration(nil)
	require.Equal(testInstance, filepath.Join(temporaryDirectory, "crates", "core"), listingConfiguration.WorkingDirectory)
}

func TestLoadConfigurationMissingFile(testInstance *testing.T) {
	_, loadError := recipes.LoadConfiguration(filepath.Join(testInstance.TempDir(), testRecipeFileNameConstant))
	require.ErrorIs(testInstance, loadError, os.ErrNotExist)
}
