package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with %s%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	cargoProgramNameConstant                     = "cargo"
	rustcProgramNameConstant                     = "rustc"
	toolchainPrefixConstant                      = "+"
	cargoFormatSubcommandConstant                = "fmt"
	cargoPackageFlagConstant                     = "--package"
	cargoPackageShortFlagConstant                = "-p"
	cargoPackageAssignmentConstant               = "--package="
	cargoWorkspaceFlagConstant                   = "--workspace"
	rustcPrintFlagConstant                       = "--print"
	rustcTargetListValueConstant                 = "target-list"
	cargoCurrentPackageSubjectLabelConstant      = "current package"
	cargoWorkspaceSubjectLabelConstant           = "workspace"
	cargoPackageSubjectTemplateConstant          = "package %s"
	cargoSourcesSubjectLabelConstant             = "sources"
	rustcTargetsSubjectLabelConstant             = "rustc targets"
	toolchainSubjectSuffixTemplateConstant       = " with %s toolchain"
	toolStartTemplateConstant                    = "%s %s in %s"
	toolSuccessTemplateConstant                  = "%s %s in %s"
	toolFailureTemplateConstant                  = "Failed to %s %s in %s (%s%s)"
	toolExecutionFailureTemplateConstant         = "Unable to %s %s in %s: %s"
	rustcListingStartTemplateConstant            = "Listing %s"
	rustcListingSuccessTemplateConstant          = "Listed %s"
	rustcListingFailureTemplateConstant          = "Failed to list %s (%s%s)"
	rustcListingExecutionFailureTemplateConstant = "Unable to list %s: %s"
)

type cargoActivity struct {
	progressive string
	completed   string
	infinitive  string
}

var cargoActivities = map[string]cargoActivity{
	cargoFormatSubcommandConstant: {progressive: "Formatting", completed: "Formatted", infinitive: "format"},
	"build":                       {progressive: "Building", completed: "Built", infinitive: "build"},
	"check":                       {progressive: "Checking", completed: "Checked", infinitive: "check"},
	"test":                        {progressive: "Testing", completed: "Tested", infinitive: "test"},
	"bench":                       {progressive: "Benchmarking", completed: "Benchmarked", infinitive: "benchmark"},
	"run":                         {progressive: "Running", completed: "Ran", infinitive: "run"},
	"rustc":                       {progressive: "Compiling", completed: "Compiled", infinitive: "compile"},
	"doc":                         {progressive: "Documenting", completed: "Documented", infinitive: "document"},
	"rustdoc":                     {progressive: "Documenting", completed: "Documented", infinitive: "document"},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(event CommandEvent) string {
	return formatter.buildMessage(event, CommandOutcome{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited successfully.
func (formatter CommandMessageFormatter) BuildSuccessMessage(event CommandEvent) string {
	return formatter.buildMessage(event, CommandOutcome{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that exited unsuccessfully.
func (formatter CommandMessageFormatter) BuildFailureMessage(event CommandEvent, outcome CommandOutcome) string {
	return formatter.buildMessage(event, outcome, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not be run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(event CommandEvent, failure error) string {
	return formatter.buildMessage(event, CommandOutcome{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(event CommandEvent, outcome CommandOutcome, failure error, stage messageStage) string {
	switch event.Argv.Program() {
	case cargoProgramNameConstant:
		return formatter.describeCargoMessage(event, outcome, failure, stage)
	case rustcProgramNameConstant:
		return formatter.describeRustcMessage(event, outcome, failure, stage)
	default:
		return formatter.buildGenericMessage(event, outcome, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeCargoMessage(event CommandEvent, outcome CommandOutcome, failure error, stage messageStage) string {
	arguments := event.Argv.Arguments()
	toolchain := emptyStringConstant
	if len(arguments) > 0 && strings.HasPrefix(arguments[0], toolchainPrefixConstant) {
		toolchain = strings.TrimPrefix(arguments[0], toolchainPrefixConstant)
		arguments = arguments[1:]
	}
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(event, outcome, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	activity, known := cargoActivities[subcommand]
	if !known {
		return formatter.buildGenericMessage(event, outcome, failure, stage)
	}

	subject := formatter.describeCargoSubject(subcommand, arguments[1:])
	if len(toolchain) > 0 {
		subject += fmt.Sprintf(toolchainSubjectSuffixTemplateConstant, toolchain)
	}
	workingDirectory := formatter.describeWorkingDirectory(event)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(toolStartTemplateConstant, activity.progressive, subject, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(toolSuccessTemplateConstant, activity.completed, subject, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(toolFailureTemplateConstant, activity.infinitive, subject, workingDirectory, outcome.ExitStatus.String(), formatter.formatStandardErrorSuffix(outcome.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(toolExecutionFailureTemplateConstant, activity.infinitive, subject, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeCargoSubject(subcommand string, arguments []string) string {
	if subcommand == cargoFormatSubcommandConstant {
		return cargoSourcesSubjectLabelConstant
	}
	if packageName := findPackageName(arguments); len(packageName) > 0 {
		return fmt.Sprintf(cargoPackageSubjectTemplateConstant, packageName)
	}
	if containsArgument(arguments, cargoWorkspaceFlagConstant) {
		return cargoWorkspaceSubjectLabelConstant
	}
	return cargoCurrentPackageSubjectLabelConstant
}

func (formatter CommandMessageFormatter) describeRustcMessage(event CommandEvent, outcome CommandOutcome, failure error, stage messageStage) string {
	arguments := event.Argv.Arguments()
	if findFlagValue(arguments, rustcPrintFlagConstant) != rustcTargetListValueConstant {
		return formatter.buildGenericMessage(event, outcome, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(rustcListingStartTemplateConstant, rustcTargetsSubjectLabelConstant)
	case messageStageSuccess:
		return fmt.Sprintf(rustcListingSuccessTemplateConstant, rustcTargetsSubjectLabelConstant)
	case messageStageFailure:
		return fmt.Sprintf(rustcListingFailureTemplateConstant, rustcTargetsSubjectLabelConstant, outcome.ExitStatus.String(), formatter.formatStandardErrorSuffix(outcome.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(rustcListingExecutionFailureTemplateConstant, rustcTargetsSubjectLabelConstant, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(event CommandEvent, outcome CommandOutcome, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(event)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, outcome.ExitStatus.String(), formatter.formatStandardErrorSuffix(outcome.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(event CommandEvent) string {
	return fmt.Sprintf(commandLabelTemplateConstant, event.Argv.CommandLine(), formatter.formatWorkingDirectorySuffix(event))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(event CommandEvent) string {
	trimmedWorkingDirectory := strings.TrimSpace(event.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(event CommandEvent) string {
	trimmedWorkingDirectory := strings.TrimSpace(event.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if arguments[argumentIndex] == flag {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}

// findPackageName accepts --package=NAME, --package NAME and -p NAME.
func findPackageName(arguments []string) string {
	for _, argument := range arguments {
		if strings.HasPrefix(argument, cargoPackageAssignmentConstant) {
			return strings.TrimPrefix(argument, cargoPackageAssignmentConstant)
		}
	}
	if packageName := findFlagValue(arguments, cargoPackageFlagConstant); len(packageName) > 0 {
		return packageName
	}
	return findFlagValue(arguments, cargoPackageShortFlagConstant)
}
