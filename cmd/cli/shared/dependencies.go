package shared

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/utils"
	"github.com/temirov/cmdkit/internal/utils/flags"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	environmentDefaultsErrorTemplateConstant = "invalid runner environment: %w"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// EventObserverProvider yields the observer notified about child process lifecycle events.
type EventObserverProvider func() execshell.CommandEventObserver

// RunnerDefaultsProvider yields the configured runner defaults.
type RunnerDefaultsProvider func() RunnerDefaults

// RunnerDefaults captures the runner section of the application configuration.
type RunnerDefaults struct {
	RemoveComments   bool                  `mapstructure:"remove_comments"`
	Inspect          execshell.InspectMode `mapstructure:"inspect"`
	WorkingDirectory string                `mapstructure:"working_directory"`
	Environment      []string              `mapstructure:"environment"`
}

// DefaultRunnerDefaults mirrors execshell.DefaultRunnerConfiguration.
func DefaultRunnerDefaults() RunnerDefaults {
	runnerConfiguration := execshell.DefaultRunnerConfiguration()
	return RunnerDefaults{
		RemoveComments: runnerConfiguration.RemoveComments,
		Inspect:        runnerConfiguration.InspectMode,
	}
}

// Apply copies inspect mode, working directory and environment onto a runner
// configuration. Variables already present in the configuration, such as a
// preset's RUSTFLAGS, take precedence over configured ones.
func (defaults RunnerDefaults) Apply(configuration execshell.RunnerConfiguration, resolver *pathutils.PathResolver) (execshell.RunnerConfiguration, error) {
	configuredEnvironment, environmentError := flags.ParseEnvironmentAssignments(defaults.Environment)
	if environmentError != nil {
		return execshell.RunnerConfiguration{}, fmt.Errorf(environmentDefaultsErrorTemplateConstant, environmentError)
	}

	if resolver == nil {
		resolver = pathutils.NewPathResolver()
	}

	appliedConfiguration := configuration
	appliedConfiguration.InspectMode = defaults.Inspect
	appliedConfiguration.WorkingDirectory = resolver.Resolve(defaults.WorkingDirectory, "")

	if len(configuredEnvironment) > 0 || len(configuration.EnvironmentVariables) > 0 {
		mergedEnvironment := make(map[string]string, len(configuredEnvironment)+len(configuration.EnvironmentVariables))
		for environmentKey, environmentValue := range configuredEnvironment {
			mergedEnvironment[environmentKey] = environmentValue
		}
		for environmentKey, environmentValue := range configuration.EnvironmentVariables {
			mergedEnvironment[environmentKey] = environmentValue
		}
		appliedConfiguration.EnvironmentVariables = mergedEnvironment
	}
	return appliedConfiguration, nil
}

// ResolveLogger returns the provided logger or a no-op logger.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// ResolveEventObserver returns the provided observer or nil, which the runner treats as no-op.
func ResolveEventObserver(provider EventObserverProvider) execshell.CommandEventObserver {
	if provider == nil {
		return nil
	}
	return provider()
}

// ResolveRunnerDefaults returns configured runner defaults or the built-in ones.
func ResolveRunnerDefaults(provider RunnerDefaultsProvider) RunnerDefaults {
	if provider == nil {
		return DefaultRunnerDefaults()
	}
	return provider()
}

// NewRunner builds a runner whose inspection output goes to the command's error stream.
func NewRunner(command *cobra.Command, loggerProvider LoggerProvider, observerProvider EventObserverProvider, configuration execshell.RunnerConfiguration) (*execshell.Runner, error) {
	return execshell.NewRunner(
		ResolveLogger(loggerProvider),
		configuration,
		execshell.WithInspectionWriter(InspectionWriter(command)),
		execshell.WithCommandEventObserver(ResolveEventObserver(observerProvider)),
	)
}

// RunCommand executes the configuration with inherited stdio and waits for it.
func RunCommand(executionContext context.Context, command *cobra.Command, loggerProvider LoggerProvider, observerProvider EventObserverProvider, configuration execshell.RunnerConfiguration) error {
	runner, runnerError := NewRunner(command, loggerProvider, observerProvider, configuration)
	if runnerError != nil {
		return runnerError
	}
	return runner.Run(executionContext)
}

// OutputWriter returns the command's standard output wrapped for immediate flushing.
func OutputWriter(command *cobra.Command) io.Writer {
	if command == nil {
		return io.Discard
	}
	return utils.NewFlushingWriter(command.OutOrStdout())
}

// InspectionWriter returns the command's error stream wrapped for immediate flushing.
func InspectionWriter(command *cobra.Command) io.Writer {
	if command == nil {
		return io.Discard
	}
	return utils.NewFlushingWriter(command.ErrOrStderr())
}

// DisplayCommandHelp prints the command usage when available.
func DisplayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}

// ExecutionContext returns the command context or a background context.
func ExecutionContext(command *cobra.Command) context.Context {
	if command == nil || command.Context() == nil {
		return context.Background()
	}
	return command.Context()
}
