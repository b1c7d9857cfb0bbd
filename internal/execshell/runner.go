package execshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	inspectModeStderrNameConstant            = "stderr"
	inspectModeLogDebugNameConstant          = "log"
	inspectModeNoneNameConstant              = "none"
	unsupportedInspectModeTemplateConstant   = "%w: %q"
	inspectionLogMessageConstant             = "command inspection"
	argvLogFieldNameConstant                 = "argv"
	invocationIdentifierLogFieldNameConstant = "invocation_id"
	workingDirectoryLogFieldNameConstant     = "working_directory"
	representationLogFieldNameConstant       = "representation"
)

// InspectMode controls how the normalized argv is surfaced before execution.
type InspectMode int

// Supported inspect modes. The zero value prints the argv to standard error.
const (
	InspectStderr InspectMode = iota
	InspectLogDebug
	InspectNone
)

var inspectModeNames = map[InspectMode]string{
	InspectStderr:   inspectModeStderrNameConstant,
	InspectLogDebug: inspectModeLogDebugNameConstant,
	InspectNone:     inspectModeNoneNameConstant,
}

// InspectModeNames lists the accepted textual inspect modes.
func InspectModeNames() []string {
	return []string{inspectModeStderrNameConstant, inspectModeLogDebugNameConstant, inspectModeNoneNameConstant}
}

// ParseInspectMode converts stderr, log or none into an InspectMode.
func ParseInspectMode(rawValue string) (InspectMode, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for mode, name := range inspectModeNames {
		if name == normalizedValue {
			return mode, nil
		}
	}
	return InspectStderr, fmt.Errorf(unsupportedInspectModeTemplateConstant, ErrUnsupportedInspectMode, rawValue)
}

// String returns the textual inspect mode.
func (mode InspectMode) String() string {
	if name, known := inspectModeNames[mode]; known {
		return name
	}
	return fmt.Sprintf("InspectMode(%d)", int(mode))
}

// MarshalText implements encoding.TextMarshaler.
func (mode InspectMode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *InspectMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParseInspectMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsedMode
	return nil
}

// RunnerConfiguration describes one command execution.
type RunnerConfiguration struct {
	Command              CommandRepresentation
	RemoveComments       bool
	InspectMode          InspectMode
	StandardInput        []byte
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// DefaultRunnerConfiguration runs "cargo" with comment removal and standard error inspection.
func DefaultRunnerConfiguration() RunnerConfiguration {
	return RunnerConfiguration{
		Command:        DefaultCommandRepresentation(),
		RemoveComments: true,
		InspectMode:    InspectStderr,
	}
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithInspectionWriter redirects InspectStderr output. Nil writers are ignored.
func WithInspectionWriter(writer io.Writer) RunnerOption {
	return func(runner *Runner) {
		if writer != nil {
			runner.inspectionWriter = writer
		}
	}
}

// WithCommandEventObserver registers an observer for lifecycle notifications. Nil observers are ignored.
func WithCommandEventObserver(observer CommandEventObserver) RunnerOption {
	return func(runner *Runner) {
		if observer != nil {
			runner.eventObserver = observer
		}
	}
}

// WithInvocationIdentifierGenerator replaces the generator of per-invocation identifiers.
func WithInvocationIdentifierGenerator(generator func() string) RunnerOption {
	return func(runner *Runner) {
		if generator != nil {
			runner.invocationIdentifierGenerator = generator
		}
	}
}

// Runner normalizes, inspects and executes a configured command.
type Runner struct {
	logger                        *zap.Logger
	configuration                 RunnerConfiguration
	inspectionWriter              io.Writer
	eventObserver                 CommandEventObserver
	invocationIdentifierGenerator func() string
}

// NewRunner constructs a Runner for the configuration.
func NewRunner(logger *zap.Logger, configuration RunnerConfiguration, options ...RunnerOption) (*Runner, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if _, known := inspectModeNames[configuration.InspectMode]; !known {
		return nil, fmt.Errorf(unsupportedInspectModeTemplateConstant, ErrUnsupportedInspectMode, configuration.InspectMode.String())
	}

	runner := &Runner{
		logger:                        logger,
		configuration:                 configuration,
		inspectionWriter:              os.Stderr,
		eventObserver:                 noopCommandEventObserver{},
		invocationIdentifierGenerator: func() string { return uuid.New().String() },
	}
	for _, option := range options {
		option(runner)
	}
	return runner, nil
}

// Configuration returns the configuration the runner executes.
func (runner *Runner) Configuration() RunnerConfiguration {
	return runner.configuration
}

// Normalize returns the argv the runner would execute without spawning anything.
func (runner *Runner) Normalize() (NormalizedArgv, error) {
	return runner.configuration.Command.Normalize(runner.configuration.RemoveComments)
}

// Run executes the command with the current process stdio and waits for it.
// A non-success exit status is reported as CommandFailedError.
func (runner *Runner) Run(executionContext context.Context) error {
	argv, event, prepareError := runner.prepare()
	if prepareError != nil {
		return prepareError
	}

	runner.eventObserver.CommandStarted(event)
	childProcess, spawnError := runner.spawner(InheritedStdio()).Spawn(executionContext, argv)
	if spawnError != nil {
		runner.eventObserver.CommandExecutionFailed(event, spawnError)
		return spawnError
	}

	exitStatus, waitError := childProcess.Wait()
	if waitError != nil {
		runner.eventObserver.CommandExecutionFailed(event, waitError)
		return waitError
	}

	runner.eventObserver.CommandCompleted(event, CommandOutcome{ExitStatus: exitStatus})
	if !exitStatus.Success() {
		return CommandFailedError{Argv: argv, ExitStatus: exitStatus}
	}
	return nil
}

// CaptureStdout runs the command with standard output piped and returns it decoded.
// The exit status is not checked.
func (runner *Runner) CaptureStdout(executionContext context.Context) (DecodedText, error) {
	capturedOutput, captureError := runner.Capture(executionContext, CaptureStdout)
	if captureError != nil {
		return DecodedText{}, captureError
	}
	return capturedOutput.Stdout, nil
}

// CaptureStderr runs the command with standard error piped and returns it decoded.
// The exit status is not checked.
func (runner *Runner) CaptureStderr(executionContext context.Context) (DecodedText, error) {
	capturedOutput, captureError := runner.Capture(executionContext, CaptureStderr)
	if captureError != nil {
		return DecodedText{}, captureError
	}
	return capturedOutput.Stderr, nil
}

// CaptureStdoutAndStderr runs the command with both output streams piped.
// The exit status is returned alongside the output and is not checked.
func (runner *Runner) CaptureStdoutAndStderr(executionContext context.Context) (CapturedOutput, error) {
	return runner.Capture(executionContext, CaptureBoth)
}

// Capture runs the command with the selected streams piped, leaving the others inherited.
func (runner *Runner) Capture(executionContext context.Context, target CaptureTarget) (CapturedOutput, error) {
	argv, event, prepareError := runner.prepare()
	if prepareError != nil {
		return CapturedOutput{}, prepareError
	}

	runner.eventObserver.CommandStarted(event)
	processOutput, captureError := runner.spawner(InheritedStdio()).CaptureOutput(executionContext, argv, target)
	if captureError != nil {
		runner.eventObserver.CommandExecutionFailed(event, captureError)
		return CapturedOutput{}, captureError
	}

	capturedOutput := CapturedOutput{
		Argv:       argv,
		Stdout:     Decode(processOutput.Stdout),
		Stderr:     Decode(processOutput.Stderr),
		ExitStatus: processOutput.ExitStatus,
	}
	runner.eventObserver.CommandCompleted(event, CommandOutcome{ExitStatus: capturedOutput.ExitStatus, StandardError: capturedOutput.Stderr.Data})
	return capturedOutput, nil
}

// Spawn starts the command with explicit stdio wiring and returns without waiting.
func (runner *Runner) Spawn(executionContext context.Context, stdio StdioConfiguration) (*ChildProcess, error) {
	argv, event, prepareError := runner.prepare()
	if prepareError != nil {
		return nil, prepareError
	}

	runner.eventObserver.CommandStarted(event)
	childProcess, spawnError := runner.spawner(stdio).Spawn(executionContext, argv)
	if spawnError != nil {
		runner.eventObserver.CommandExecutionFailed(event, spawnError)
		return nil, spawnError
	}
	return childProcess, nil
}

func (runner *Runner) prepare() (NormalizedArgv, CommandEvent, error) {
	argv, normalizeError := runner.Normalize()
	if normalizeError != nil {
		return nil, CommandEvent{}, normalizeError
	}

	event := CommandEvent{
		InvocationIdentifier: runner.invocationIdentifierGenerator(),
		Argv:                 argv,
		WorkingDirectory:     runner.configuration.WorkingDirectory,
	}
	runner.inspect(event)

	if validationError := argv.Validate(); validationError != nil {
		return nil, CommandEvent{}, validationError
	}
	return argv, event, nil
}

func (runner *Runner) inspect(event CommandEvent) {
	switch runner.configuration.InspectMode {
	case InspectStderr:
		fmt.Fprintln(runner.inspectionWriter, event.Argv.String())
	case InspectLogDebug:
		runner.logger.Debug(
			inspectionLogMessageConstant,
			zap.Strings(argvLogFieldNameConstant, event.Argv),
			zap.String(invocationIdentifierLogFieldNameConstant, event.InvocationIdentifier),
			zap.String(workingDirectoryLogFieldNameConstant, event.WorkingDirectory),
			zap.Stringer(representationLogFieldNameConstant, runner.configuration.Command.Kind()),
		)
	}
}

func (runner *Runner) spawner(stdio StdioConfiguration) *ProcessSpawner {
	return NewProcessSpawner(SpawnOptions{
		Stdio:                stdio,
		WorkingDirectory:     runner.configuration.WorkingDirectory,
		EnvironmentVariables: runner.configuration.EnvironmentVariables,
		StandardInput:        runner.configuration.StandardInput,
	})
}
