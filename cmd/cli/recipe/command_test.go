package recipe_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/cmdkit/cmd/cli/recipe"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/recipes"
)

const (
	testRecipeFileNameConstant = "recipes.yaml"
	testRecipeDocumentConstant = `
recipes:
  - name: first
    argv: ["sh", "-c", "printf first"]
    capture: stdout
  - name: second
    command: sh -c 'printf second' // trailing note
    capture: stdout
    inspect: none
  - name: broken
    argv: ["sh", "-c", "exit 9"]
    inspect: none
`
)

func writeRecipeFile(testInstance *testing.T) string {
	testInstance.Helper()
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		testInstance.Skip("sh is not available")
	}

	recipePath := filepath.Join(testInstance.TempDir(), testRecipeFileNameConstant)
	require.NoError(testInstance, os.WriteFile(recipePath, []byte(testRecipeDocumentConstant), 0o600))
	return recipePath
}

func executeRecipeCommand(testInstance *testing.T, arguments ...string) (string, string, error) {
	testInstance.Helper()

	builder := recipe.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return zap.NewNop()
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(errorBuffer)
	if arguments == nil {
		arguments = []string{}
	}
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()
	return outputBuffer.String(), errorBuffer.String(), executionError
}

func TestRecipeCommandRunsSelectedRecipesInFileOrder(testInstance *testing.T) {
	recipePath := writeRecipeFile(testInstance)

	output, inspection, executionError := executeRecipeCommand(testInstance, recipePath, "second", "first")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "firstsecond", output)
	require.Equal(testInstance, "[\"sh\", \"-c\", \"printf first\"]\n", inspection)
}

func TestRecipeCommandStopsAtFailure(testInstance *testing.T) {
	recipePath := writeRecipeFile(testInstance)

	output, _, executionError := executeRecipeCommand(testInstance, recipePath)
	require.ErrorIs(testInstance, executionError, execshell.ErrCommandFailed)
	require.Equal(testInstance, "firstsecond", output)
}

func TestRecipeCommandListsRecipes(testInstance *testing.T) {
	recipePath := writeRecipeFile(testInstance)

	output, _, executionError := executeRecipeCommand(testInstance, "--list", recipePath)
	require.NoError(testInstance, executionError)
	require.Equal(
		testInstance,
		"first\t[\"sh\", \"-c\", \"printf first\"]\n"+
			"second\tsh -c 'printf second' // trailing note\n"+
			"broken\t[\"sh\", \"-c\", \"exit 9\"]\n",
		output,
	)
}

func TestRecipeCommandErrors(testInstance *testing.T) {
	recipePath := writeRecipeFile(testInstance)

	testCases := []struct {
		name          string
		arguments     []string
		expectedError error
	}{
		{
			name:          "unknown_recipe",
			arguments:     []string{recipePath, "missing"},
			expectedError: recipes.ErrUnknownRecipe,
		},
		{
			name:          "missing_file",
			arguments:     []string{filepath.Join(filepath.Dir(recipePath), "absent.yaml")},
			expectedError: os.ErrNotExist,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, _, executionError := executeRecipeCommand(testInstance, testCase.arguments...)
			require.ErrorIs(testInstance, executionError, testCase.expectedError)
		})
	}
}

func TestRecipeCommandRequiresFile(testInstance *testing.T) {
	_, _, executionError := executeRecipeCommand(testInstance)
	require.Error(testInstance, executionError)
}
