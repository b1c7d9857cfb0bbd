package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/project"
	testExecutionFailureReasonConstant     = "execution failed"
	testStandardErrorMessageConstant       = "error: could not compile"
	testFailedExitDescriptionConstant      = "exit status 101"
	testStartMessageExpectationConstant    = "Building package demo in /tmp/project"
	testSuccessMessageExpectationConstant  = "Built package demo in /tmp/project"
	testFailureMessageExpectationConstant  = "Failed to build package demo in /tmp/project (exit status 101: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to build package demo in /tmp/project: " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	event := execshell.CommandEvent{
		InvocationIdentifier: "invocation",
		Argv:                 execshell.NormalizedArgv{"cargo", "build", "--package=demo"},
		WorkingDirectory:     testCommandWorkingDirectoryConstant,
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(event)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(event, execshell.CommandOutcome{ExitStatus: execshell.ExitStatus{Code: 0, Description: "exit status 0"}})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(event, execshell.CommandOutcome{
					ExitStatus:    execshell.ExitStatus{Code: 101, Description: testFailedExitDescriptionConstant},
					StandardError: testStandardErrorMessageConstant + "\n",
				})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(event, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNilReceiver(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.CommandEvent{})
		eventLogger.CommandCompleted(execshell.CommandEvent{}, execshell.CommandOutcome{})
		eventLogger.CommandExecutionFailed(execshell.CommandEvent{}, nil)
	})
}
