package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/cmdkit/cmd/cli"
	"github.com/temirov/cmdkit/internal/execshell"
)

const (
	exitErrorTemplateConstant      = "%v\n"
	genericFailureExitCodeConstant = 1
)

// main executes the cmdkit command-line application. A failed child process
// sets the exit code to the child's own code.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.ExitStatus.Code > 0 {
		os.Exit(commandFailure.ExitStatus.Code)
	}
	os.Exit(genericFailureExitCodeConstant)
}
