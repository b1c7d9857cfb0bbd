package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	waitFailureTemplateConstant            = "waiting for %s: %w"
	exitStatusUnknownDescriptionConstant   = "unknown exit status"
	unknownExitCodeConstant                = -1
)

// SpawnOptions configures a single child process launch.
type SpawnOptions struct {
	Stdio                StdioConfiguration
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	// StandardInput is written to the child after it starts. A nil slice means
	// no input; a non-nil empty slice delivers an immediately closed stdin.
	StandardInput []byte
}

// ExitStatus describes how a child process terminated.
type ExitStatus struct {
	Code        int
	Description string
}

// Success reports whether the child exited with code zero.
func (status ExitStatus) Success() bool {
	return status.Code == 0
}

// String returns the operating system description of the status.
func (status ExitStatus) String() string {
	if len(status.Description) == 0 {
		return exitStatusUnknownDescriptionConstant
	}
	return status.Description
}

func exitStatusFromProcessState(processState *os.ProcessState) ExitStatus {
	if processState == nil {
		return ExitStatus{Code: unknownExitCodeConstant}
	}
	return ExitStatus{Code: processState.ExitCode(), Description: processState.String()}
}

// ProcessOutput holds the raw bytes collected from piped streams.
type ProcessOutput struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus ExitStatus
}

// ProcessSpawner launches child processes from a normalized argv without invoking a shell.
type ProcessSpawner struct {
	options SpawnOptions
}

// NewProcessSpawner constructs a spawner for the provided options.
func NewProcessSpawner(options SpawnOptions) *ProcessSpawner {
	return &ProcessSpawner{options: options}
}

// Options returns the configured spawn options.
func (spawner *ProcessSpawner) Options() SpawnOptions {
	return spawner.options
}

// EffectiveStdio returns the stdio wiring used at spawn time. Standard input
// is forced to StdioPiped whenever input data is present, regardless of the
// configured mode.
func (spawner *ProcessSpawner) EffectiveStdio() StdioConfiguration {
	effectiveStdio := spawner.options.Stdio
	if spawner.options.StandardInput != nil {
		effectiveStdio.Stdin = StdioPiped
	}
	return effectiveStdio
}

// Spawn starts argv[0] with the remaining tokens as literal arguments.
//
// When standard input data is configured it is written synchronously after the
// child starts and the pipe is then closed. A child that closes its stdin
// early is not an error. Any other failure to deliver the data kills and reaps
// the child before a StdinUnavailableError is returned, so no process handle
// is handed back. Piped stdout and stderr are drained
// into memory while the child runs. Feeding very large input to a child that
// does not read stdin until it exits still blocks the caller; stream such
// payloads through ChildProcess.StandardInput from a separate goroutine.
func (spawner *ProcessSpawner) Spawn(executionContext context.Context, argv NormalizedArgv) (*ChildProcess, error) {
	if validationError := argv.Validate(); validationError != nil {
		return nil, validationError
	}
	if executionContext == nil {
		executionContext = context.Background()
	}

	effectiveStdio := spawner.EffectiveStdio()
	executable := exec.CommandContext(executionContext, argv.Program(), argv.Arguments()...)

	if len(spawner.options.WorkingDirectory) > 0 {
		executable.Dir = spawner.options.WorkingDirectory
	}

	if len(spawner.options.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range spawner.options.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	childProcess := &ChildProcess{argv: argv, command: executable}

	switch effectiveStdio.Stdin {
	case StdioPiped:
		standardInputPipe, pipeError := executable.StdinPipe()
		if pipeError != nil {
			return nil, StdinUnavailableError{Argv: argv, Cause: pipeError}
		}
		childProcess.standardInput = standardInputPipe
	case StdioInherit:
		executable.Stdin = os.Stdin
	}

	switch effectiveStdio.Stdout {
	case StdioPiped:
		executable.Stdout = &childProcess.standardOutput
	case StdioInherit:
		executable.Stdout = os.Stdout
	}

	switch effectiveStdio.Stderr {
	case StdioPiped:
		executable.Stderr = &childProcess.standardError
	case StdioInherit:
		executable.Stderr = os.Stderr
	}

	if startError := executable.Start(); startError != nil {
		return nil, CommandExecutionError{Argv: argv, Cause: startError}
	}

	if spawner.options.StandardInput != nil {
		if writeError := childProcess.feedStandardInput(spawner.options.StandardInput); writeError != nil {
			childProcess.abandon()
			return nil, writeError
		}
	}

	return childProcess, nil
}

// CaptureOutput spawns argv with the selected streams forced to StdioPiped,
// waits for completion, and returns the raw bytes. A non-zero exit status is
// reported in the result, not as an error.
func (spawner *ProcessSpawner) CaptureOutput(executionContext context.Context, argv NormalizedArgv, target CaptureTarget) (ProcessOutput, error) {
	captureOptions := spawner.options
	if target.capturesStdout() {
		captureOptions.Stdio.Stdout = StdioPiped
	}
	if target.capturesStderr() {
		captureOptions.Stdio.Stderr = StdioPiped
	}

	childProcess, spawnError := NewProcessSpawner(captureOptions).Spawn(executionContext, argv)
	if spawnError != nil {
		return ProcessOutput{}, spawnError
	}
	return childProcess.WaitWithOutput()
}

// ChildProcess is a running child started by ProcessSpawner.
type ChildProcess struct {
	argv           NormalizedArgv
	command        *exec.Cmd
	standardInput  io.WriteCloser
	standardOutput bytes.Buffer
	standardError  bytes.Buffer
}

// Argv returns the argv the child was started with.
func (childProcess *ChildProcess) Argv() NormalizedArgv {
	return childProcess.argv
}

// ProcessIdentifier returns the operating system process id.
func (childProcess *ChildProcess) ProcessIdentifier() int {
	if childProcess.command == nil || childProcess.command.Process == nil {
		return 0
	}
	return childProcess.command.Process.Pid
}

// StandardInput returns the parent side of a piped stdin that has not been
// consumed by configured input data, or nil.
func (childProcess *ChildProcess) StandardInput() io.WriteCloser {
	return childProcess.standardInput
}

// Wait closes any open stdin pipe and blocks until the child exits.
func (childProcess *ChildProcess) Wait() (ExitStatus, error) {
	childProcess.closeStandardInput()

	waitError := childProcess.command.Wait()
	if waitError != nil {
		var exitError *exec.ExitError
		if !errors.As(waitError, &exitError) {
			return exitStatusFromProcessState(childProcess.command.ProcessState), fmt.Errorf(waitFailureTemplateConstant, childProcess.argv.Program(), waitError)
		}
	}

	return exitStatusFromProcessState(childProcess.command.ProcessState), nil
}

// WaitWithOutput waits for the child and returns the bytes collected from piped streams.
func (childProcess *ChildProcess) WaitWithOutput() (ProcessOutput, error) {
	exitStatus, waitError := childProcess.Wait()
	if waitError != nil {
		return ProcessOutput{ExitStatus: exitStatus}, waitError
	}
	return ProcessOutput{
		Stdout:     childProcess.standardOutput.Bytes(),
		Stderr:     childProcess.standardError.Bytes(),
		ExitStatus: exitStatus,
	}, nil
}

func (childProcess *ChildProcess) feedStandardInput(data []byte) error {
	if childProcess.standardInput == nil {
		return StdinUnavailableError{Argv: childProcess.argv}
	}

	_, writeError := childProcess.standardInput.Write(data)
	closeError := childProcess.closeStandardInput()

	if writeError != nil && !errors.Is(writeError, syscall.EPIPE) {
		return StdinUnavailableError{Argv: childProcess.argv, Cause: writeError}
	}
	if closeError != nil && !errors.Is(closeError, os.ErrClosed) {
		return StdinUnavailableError{Argv: childProcess.argv, Cause: closeError}
	}
	return nil
}

func (childProcess *ChildProcess) closeStandardInput() error {
	if childProcess.standardInput == nil {
		return nil
	}
	closeError := childProcess.standardInput.Close()
	childProcess.standardInput = nil
	return closeError
}

func (childProcess *ChildProcess) abandon() {
	if childProcess.command.Process != nil {
		_ = childProcess.command.Process.Kill()
	}
	_ = childProcess.command.Wait()
}
