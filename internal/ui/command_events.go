package ui

import (
	"go.uber.org/zap"

	"github.com/temirov/cmdkit/internal/execshell"
)

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(event execshell.CommandEvent) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(event))
}

// CommandCompleted implements execshell.CommandEventObserver. Non-success exits are logged as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(event execshell.CommandEvent, outcome execshell.CommandOutcome) {
	if eventLogger == nil {
		return
	}
	if outcome.ExitStatus.Success() {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(event))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(event, outcome))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging spawn and wait failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(event execshell.CommandEvent, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(event, failure))
}
