package recipes

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/cmdkit/internal/execshell"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	recipeExecutionErrorTemplateConstant = "recipe %s failed: %w"
	recipeExecutorLoggerMessageConstant  = "recipe executor requires a logger"
	recipeStartedLogMessageConstant      = "running recipe"
	recipeCompletedLogMessageConstant    = "recipe completed"
	recipeNameLogFieldConstant           = "recipe"
	recipeCaptureLogFieldConstant        = "capture"
	recipeExitCodeLogFieldConstant       = "exit_code"
	recipeLossyOutputLogFieldConstant    = "lossy_output"
)

// ErrExecutorLoggerNotConfigured indicates that the executor was built without a logger.
var ErrExecutorLoggerNotConfigured = errors.New(recipeExecutorLoggerMessageConstant)

// Dependencies configures shared collaborators for recipe execution.
type Dependencies struct {
	Logger           *zap.Logger
	EventObserver    execshell.CommandEventObserver
	PathResolver     *pathutils.PathResolver
	Output           io.Writer
	InspectionOutput io.Writer
}

// Executor runs recipes sequentially.
type Executor struct {
	dependencies Dependencies
}

// NewExecutor constructs an Executor instance.
func NewExecutor(dependencies Dependencies) (*Executor, error) {
	if dependencies.Logger == nil {
		return nil, ErrExecutorLoggerNotConfigured
	}
	if dependencies.Output == nil {
		dependencies.Output = io.Discard
	}
	if dependencies.PathResolver == nil {
		dependencies.PathResolver = pathutils.NewPathResolver()
	}
	return &Executor{dependencies: dependencies}, nil
}

// Execute runs the selected recipes in file order and stops at the first failure.
// Captured output is written to the executor's output writer, stdout before
// stderr, before a non-success exit status is reported.
func (executor *Executor) Execute(executionContext context.Context, configuration Configuration, names []string) error {
	selectedRecipes, selectionError := configuration.Select(names)
	if selectionError != nil {
		return selectionError
	}

	for _, recipe := range selectedRecipes {
		if executeError := executor.ExecuteRecipe(executionContext, recipe); executeError != nil {
			return fmt.Errorf(recipeExecutionErrorTemplateConstant, recipe.Name, executeError)
		}
	}
	return nil
}

// ExecuteRecipe runs a single recipe. Run recipes inherit stdio; capture recipes
// write their decoded output and fail on a non-success exit status.
func (executor *Executor) ExecuteRecipe(executionContext context.Context, recipe Recipe) error {
	logger := executor.dependencies.Logger.With(zap.String(recipeNameLogFieldConstant, recipe.Name))
	logger.Debug(recipeStartedLogMessageConstant, zap.Stringer(recipeCaptureLogFieldConstant, recipe.Capture))

	runnerOptions := []execshell.RunnerOption{
		execshell.WithCommandEventObserver(executor.dependencies.EventObserver),
		execshell.WithInspectionWriter(executor.dependencies.InspectionOutput),
	}
	runner, runnerError := execshell.NewRunner(logger, recipe.RunnerConfiguration(executor.dependencies.PathResolver), runnerOptions...)
	if runnerError != nil {
		return runnerError
	}

	if recipe.Capture == execshell.CaptureNone {
		if runError := runner.Run(executionContext); runError != nil {
			return runError
		}
		logger.Debug(recipeCompletedLogMessageConstant)
		return nil
	}

	capturedOutput, captureError := runner.Capture(executionContext, recipe.Capture)
	if captureError != nil {
		return captureError
	}
	if _, writeError := io.WriteString(executor.dependencies.Output, capturedOutput.Stdout.Data); writeError != nil {
		return writeError
	}
	if _, writeError := io.WriteString(executor.dependencies.Output, capturedOutput.Stderr.Data); writeError != nil {
		return writeError
	}
	logger.Debug(
		recipeCompletedLogMessageConstant,
		zap.Int(recipeExitCodeLogFieldConstant, capturedOutput.ExitStatus.Code),
		zap.Bool(recipeLossyOutputLogFieldConstant, capturedOutput.Stdout.Lossy || capturedOutput.Stderr.Lossy),
	)
	if !capturedOutput.ExitStatus.Success() {
		return execshell.CommandFailedError{Argv: capturedOutput.Argv, ExitStatus: capturedOutput.ExitStatus}
	}
	return nil
}
