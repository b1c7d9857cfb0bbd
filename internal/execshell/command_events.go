package execshell

// CommandEvent identifies a single command invocation in lifecycle notifications.
type CommandEvent struct {
	InvocationIdentifier string
	Argv                 NormalizedArgv
	WorkingDirectory     string
}

// CommandOutcome summarizes a finished invocation.
type CommandOutcome struct {
	ExitStatus    ExitStatus
	StandardError string
}

// CommandEventObserver receives lifecycle notifications for command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(event CommandEvent)
	// CommandCompleted notifies observers that the child exited and supplies its outcome.
	CommandCompleted(event CommandEvent, outcome CommandOutcome)
	// CommandExecutionFailed reports failures that prevented an exit status from being observed.
	CommandExecutionFailed(event CommandEvent, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(CommandEvent) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(CommandEvent, CommandOutcome) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(CommandEvent, error) {}
