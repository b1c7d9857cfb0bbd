package execshell

import (
	"errors"
	"fmt"
)

const (
	emptyCommandMessageConstant                = "empty command argv"
	malformedCommandMessageConstant            = "malformed command text"
	standardInputUnavailableMessageConstant    = "child standard input unavailable"
	spawnFailedMessageConstant                 = "failed to spawn command"
	commandFailedMessageConstant               = "command exited unsuccessfully"
	loggerNotConfiguredMessageConstant         = "runner logger not configured"
	unsupportedInspectModeMessageConstant      = "unsupported inspect mode"
	commandParseErrorTemplateConstant          = "%s: %v"
	standardInputUnavailableTemplateConstant   = "%s for %s: %v"
	commandExecutionErrorTemplateConstant      = "%s %s: %v"
	commandFailedErrorTemplateConstant         = "%s failed with %s"
	unknownStandardInputFailureMessageConstant = "standard input handle missing"
)

var (
	// ErrEmptyCommand indicates that normalization produced no program to run.
	ErrEmptyCommand = errors.New(emptyCommandMessageConstant)
	// ErrMalformedCommand indicates that raw command text could not be tokenized.
	ErrMalformedCommand = errors.New(malformedCommandMessageConstant)
	// ErrStdinUnavailable indicates that standard input data could not be delivered to the child.
	ErrStdinUnavailable = errors.New(standardInputUnavailableMessageConstant)
	// ErrSpawnFailed indicates that the operating system refused to start the child.
	ErrSpawnFailed = errors.New(spawnFailedMessageConstant)
	// ErrCommandFailed indicates that the child ran but exited with a non-success status.
	ErrCommandFailed = errors.New(commandFailedMessageConstant)
	// ErrLoggerNotConfigured indicates that a runner was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrUnsupportedInspectMode indicates that a runner was constructed with an unknown inspect mode.
	ErrUnsupportedInspectMode = errors.New(unsupportedInspectModeMessageConstant)
)

// CommandParseError reports raw command text the tokenizer rejected, such as an unterminated quote.
type CommandParseError struct {
	Cause error
}

// Error describes the tokenizer failure.
func (parseError CommandParseError) Error() string {
	return fmt.Sprintf(commandParseErrorTemplateConstant, malformedCommandMessageConstant, parseError.Cause)
}

// Unwrap exposes the lexer error.
func (parseError CommandParseError) Unwrap() error {
	return parseError.Cause
}

// Is reports whether the target is ErrMalformedCommand.
func (parseError CommandParseError) Is(target error) bool {
	return target == ErrMalformedCommand
}

// StdinUnavailableError reports that standard input data could not be written to the child.
type StdinUnavailableError struct {
	Argv  NormalizedArgv
	Cause error
}

// Error describes the standard input failure.
func (stdinError StdinUnavailableError) Error() string {
	cause := stdinError.Cause
	if cause == nil {
		cause = errors.New(unknownStandardInputFailureMessageConstant)
	}
	return fmt.Sprintf(standardInputUnavailableTemplateConstant, standardInputUnavailableMessageConstant, stdinError.Argv.Program(), cause)
}

// Unwrap exposes the underlying pipe error.
func (stdinError StdinUnavailableError) Unwrap() error {
	return stdinError.Cause
}

// Is reports whether the target is ErrStdinUnavailable.
func (stdinError StdinUnavailableError) Is(target error) bool {
	return target == ErrStdinUnavailable
}

// CommandExecutionError reports that the operating system failed to start the child process.
type CommandExecutionError struct {
	Argv  NormalizedArgv
	Cause error
}

// Error describes the spawn failure while preserving the operating system message.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, spawnFailedMessageConstant, executionError.Argv.Program(), executionError.Cause)
}

// Unwrap exposes the operating system error verbatim.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// Is reports whether the target is ErrSpawnFailed.
func (executionError CommandExecutionError) Is(target error) bool {
	return target == ErrSpawnFailed
}

// CommandFailedError reports that the child exited with a non-success status.
type CommandFailedError struct {
	Argv       NormalizedArgv
	ExitStatus ExitStatus
}

// Error describes the failed command and its exit status.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Argv.String(), failedError.ExitStatus.String())
}

// Is reports whether the target is ErrCommandFailed.
func (failedError CommandFailedError) Is(target error) bool {
	return target == ErrCommandFailed
}
