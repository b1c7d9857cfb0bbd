package recipes_test

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/recipes"
)

const (
	testExecutorDocumentConstant = `
recipes:
  - name: greet
    argv: ["sh", "-c", "printf 'out\n'; printf 'err\n' >&2"]
    capture: both
    inspect: none
  - name: echo-stdin
    argv: ["sh", "-c", "cat"]
    capture: stdout
    inspect: stderr
    stdin: "from stdin"
  - name: fail
    argv: ["sh", "-c", "exit 4"]
    inspect: none
  - name: capture-failure
    argv: ["sh", "-c", "printf partial; exit 5"]
    capture: stdout
    inspect: none
  - name: after-failure
    argv: ["sh", "-c", "printf unreachable"]
    capture: stdout
    inspect: none
`
)

func requireShell(testInstance *testing.T) {
	testInstance.Helper()
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		testInstance.Skip("sh is not available")
	}
}

func TestNewExecutorRequiresLogger(testInstance *testing.T) {
	executor, creationError := recipes.NewExecutor(recipes.Dependencies{})
	require.Nil(testInstance, executor)
	require.ErrorIs(testInstance, creationError, recipes.ErrExecutorLoggerNotConfigured)
}

func TestExecutorWritesCapturedOutput(testInstance *testing.T) {
	requireShell(testInstance)

	configuration, parseError := recipes.ParseConfiguration([]byte(testExecutorDocumentConstant), testInstance.TempDir())
	require.NoError(testInstance, parseError)

	outputBuffer := &bytes.Buffer{}
	inspectionBuffer := &bytes.Buffer{}
	executor, creationError := recipes.NewExecutor(recipes.Dependencies{
		Logger:           zap.NewNop(),
		Output:           outputBuffer,
		InspectionOutput: inspectionBuffer,
	})
	require.NoError(testInstance, creationError)

	executeError := executor.Execute(context.Background(), configuration, []string{"echo-stdin", "greet"})
	require.NoError(testInstance, executeError)
	require.Equal(testInstance, "out\nerr\nfrom stdin", outputBuffer.String())
	require.Equal(testInstance, "[\"sh\", \"-c\", \"cat\"]\n", inspectionBuffer.String())
}

func TestExecutorStopsAtFirstFailure(testInstance *testing.T) {
	requireShell(testInstance)

	configuration, parseError := recipes.ParseConfiguration([]byte(testExecutorDocumentConstant), testInstance.TempDir())
	require.NoError(testInstance, parseError)

	outputBuffer := &bytes.Buffer{}
	executor, creationError := recipes.NewExecutor(recipes.Dependencies{Logger: zap.NewNop(), Output: outputBuffer})
	require.NoError(testInstance, creationError)

	executeError := executor.Execute(context.Background(), configuration, []string{"fail", "after-failure"})
	require.ErrorIs(testInstance, executeError, execshell.ErrCommandFailed)
	require.ErrorContains(testInstance, executeError, "recipe fail failed")

	var commandFailedError execshell.CommandFailedError
	require.ErrorAs(testInstance, executeError, &commandFailedError)
	require.Equal(testInstance, 4, commandFailedError.ExitStatus.Code)
	require.Empty(testInstance, outputBuffer.String())
}

func TestExecutorRejectsUnknownRecipe(testInstance *testing.T) {
	configuration, parseError := recipes.ParseConfiguration([]byte(testExecutorDocumentConstant), testInstance.TempDir())
	require.NoError(testInstance, parseError)

	executor, creationError := recipes.NewExecutor(recipes.Dependencies{Logger: zap.NewNop()})
	require.NoError(testInstance, creationError)

	executeError := executor.Execute(context.Background(), configuration, []string{"deploy"})
	require.ErrorIs(testInstance, executeError, recipes.ErrUnknownRecipe)
}

func TestExecutorReportsCapturedFailureAfterWritingOutput(testInstance *testing.T) {
	requireShell(testInstance)

	configuration, parseError := recipes.ParseConfiguration([]byte(testExecutorDocumentConstant), testInstance.TempDir())
	require.NoError(testInstance, parseError)

	outputBuffer := &bytes.Buffer{}
	executor, creationError := recipes.NewExecutor(recipes.Dependencies{Logger: zap.NewNop(), Output: outputBuffer})
	require.NoError(testInstance, creationError)

	executeError := executor.Execute(context.Background(), configuration, []string{"capture-failure", "after-failure"})
	require.ErrorIs(testInstance, executeError, execshell.ErrCommandFailed)
	require.ErrorContains(testInstance, executeError, "recipe capture-failure failed")
	require.Equal(testInstance, "partial", outputBuffer.String())

	var commandFailedError execshell.CommandFailedError
	require.ErrorAs(testInstance, executeError, &commandFailedError)
	require.Equal(testInstance, 5, commandFailedError.ExitStatus.Code)
	require.Equal(testInstance, execshell.NormalizedArgv{"sh", "-c", "printf partial; exit 5"}, commandFailedError.Argv)
}
