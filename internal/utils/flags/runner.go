// Package flags provides helpers for binding standardized command flags to Cobra commands.
package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/cmdkit/internal/execshell"
)

const (
	// ArgvFlagName treats positional arguments as a presplit argv.
	ArgvFlagName = "argv"
	// RemoveCommentsFlagName toggles "//" comment line removal.
	RemoveCommentsFlagName = "remove-comments"
	// InspectFlagName selects where the normalized argv is printed.
	InspectFlagName = "inspect"
	// CaptureFlagName selects which output streams are captured.
	CaptureFlagName = "capture"
	// StdinFileFlagName names a file whose bytes become the child's stdin.
	StdinFileFlagName = "stdin-file"
	// WorkingDirectoryFlagName sets the child's working directory.
	WorkingDirectoryFlagName = "workdir"
	// EnvironmentFlagName adds KEY=VALUE pairs to the child's environment.
	EnvironmentFlagName = "env"

	argvFlagUsageConstant                        = "Treat arguments as a presplit argv instead of raw command text"
	removeCommentsFlagUsageConstant              = "Drop lines starting with // before tokenizing"
	inspectFlagUsageConstant                     = "Where to print the normalized argv before execution"
	captureFlagUsageConstant                     = "Output streams to capture and print after the command exits"
	stdinFileFlagUsageConstant                   = "File fed to the command's standard input (- reads this process's stdin)"
	workingDirectoryFlagUsageConstant            = "Working directory for the command"
	environmentFlagUsageConstant                 = "Environment variable for the command as KEY=VALUE (repeatable)"
	environmentAssignmentSeparator               = "="
	invalidEnvironmentAssignmentTemplateConstant = "%w: %q"
	invalidEnvironmentAssignmentMessageConstant  = "environment assignments must use KEY=VALUE"
)

// ErrInvalidEnvironmentAssignment indicates a malformed --env value.
var ErrInvalidEnvironmentAssignment = errors.New(invalidEnvironmentAssignmentMessageConstant)

// RunnerFlagValues stores values of the runner flags.
type RunnerFlagValues struct {
	Argv             bool
	RemoveComments   bool
	Inspect          string
	Capture          string
	StdinFile        string
	WorkingDirectory string
	Environment      []string
}

// RunnerFlagDefaults seeds runner flags, typically from loaded configuration.
type RunnerFlagDefaults struct {
	RemoveComments   bool
	Inspect          execshell.InspectMode
	WorkingDirectory string
}

// BindRunnerFlags attaches the runner flags to the command's local flag set.
func BindRunnerFlags(command *cobra.Command, defaults RunnerFlagDefaults) *RunnerFlagValues {
	values := &RunnerFlagValues{}
	if command == nil {
		return values
	}

	flagSet := command.Flags()
	flagSet.BoolVar(&values.Argv, ArgvFlagName, false, argvFlagUsageConstant)
	AddToggleFlag(flagSet, &values.RemoveComments, RemoveCommentsFlagName, "", defaults.RemoveComments, removeCommentsFlagUsageConstant)
	AddChoiceFlag(flagSet, &values.Inspect, InspectFlagName, defaults.Inspect.String(), execshell.InspectModeNames(), inspectFlagUsageConstant)
	AddChoiceFlag(flagSet, &values.Capture, CaptureFlagName, execshell.CaptureNone.String(), execshell.CaptureTargetNames(), captureFlagUsageConstant)
	flagSet.StringVar(&values.StdinFile, StdinFileFlagName, "", stdinFileFlagUsageConstant)
	flagSet.StringVar(&values.WorkingDirectory, WorkingDirectoryFlagName, defaults.WorkingDirectory, workingDirectoryFlagUsageConstant)
	flagSet.StringArrayVar(&values.Environment, EnvironmentFlagName, nil, environmentFlagUsageConstant)
	return values
}

// FlagChanged reports whether the named local or persistent flag was set on the command line.
func FlagChanged(command *cobra.Command, name string) bool {
	if command == nil {
		return false
	}
	flag := command.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

// ParseEnvironmentAssignments converts KEY=VALUE strings into a map. Later keys win.
func ParseEnvironmentAssignments(assignments []string) (map[string]string, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	environment := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		key, value, found := strings.Cut(assignment, environmentAssignmentSeparator)
		key = strings.TrimSpace(key)
		if !found || len(key) == 0 {
			return nil, fmt.Errorf(invalidEnvironmentAssignmentTemplateConstant, ErrInvalidEnvironmentAssignment, assignment)
		}
		environment[key] = value
	}
	return environment, nil
}
