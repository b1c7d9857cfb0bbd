package execshell

import (
	"strconv"
	"strings"
)

const (
	defaultProgramNameConstant       = "cargo"
	argvListOpeningConstant          = "["
	argvListClosingConstant          = "]"
	argvListSeparatorConstant        = ", "
	representationRawLabelConstant   = "raw"
	representationSliceLabelConstant = "slice"
	representationOwnedLabelConstant = "owned"
)

// RepresentationKind identifies the active variant of a CommandRepresentation.
type RepresentationKind int

// Supported command representation variants.
const (
	RepresentationRawText RepresentationKind = iota
	RepresentationPresplitBorrowed
	RepresentationPresplitOwned
)

// String returns a short label for the representation kind.
func (kind RepresentationKind) String() string {
	switch kind {
	case RepresentationPresplitBorrowed:
		return representationSliceLabelConstant
	case RepresentationPresplitOwned:
		return representationOwnedLabelConstant
	default:
		return representationRawLabelConstant
	}
}

// CommandRepresentation describes a command either as shell-like text or as a pre-split argv.
//
// Exactly one variant is active. The zero value is an empty raw text command,
// which normalizes to an empty argv.
type CommandRepresentation struct {
	kind      RepresentationKind
	rawText   string
	arguments []string
}

// RawCommand describes a command as shell-like text that is tokenized before execution.
func RawCommand(text string) CommandRepresentation {
	return CommandRepresentation{kind: RepresentationRawText, rawText: text}
}

// PresplitCommand describes a command by an argv slice shared with the caller.
// The caller must not modify the slice while the representation is in use.
func PresplitCommand(arguments []string) CommandRepresentation {
	return CommandRepresentation{kind: RepresentationPresplitBorrowed, arguments: arguments}
}

// OwnedCommand describes a command by an argv that is copied at construction.
func OwnedCommand(arguments ...string) CommandRepresentation {
	ownedArguments := make([]string, len(arguments))
	copy(ownedArguments, arguments)
	return CommandRepresentation{kind: RepresentationPresplitOwned, arguments: ownedArguments}
}

// DefaultCommandRepresentation returns the raw text command "cargo".
func DefaultCommandRepresentation() CommandRepresentation {
	return RawCommand(defaultProgramNameConstant)
}

// Kind reports the active variant.
func (representation CommandRepresentation) Kind() RepresentationKind {
	return representation.kind
}

// RawText returns the raw command text when the raw variant is active.
func (representation CommandRepresentation) RawText() (string, bool) {
	if representation.kind != RepresentationRawText {
		return "", false
	}
	return representation.rawText, true
}

// Arguments returns a copy of the pre-split argv when a slice variant is active.
func (representation CommandRepresentation) Arguments() ([]string, bool) {
	if representation.kind == RepresentationRawText {
		return nil, false
	}
	duplicatedArguments := make([]string, len(representation.arguments))
	copy(duplicatedArguments, representation.arguments)
	return duplicatedArguments, true
}

// Normalize converts the representation into an ordered argv.
//
// Pre-split variants pass through element by element and ignore removeComments.
// Raw text is trimmed, optionally stripped of "//" comment lines, and tokenized
// with shell-like quoting rules without invoking a shell.
func (representation CommandRepresentation) Normalize(removeComments bool) (NormalizedArgv, error) {
	switch representation.kind {
	case RepresentationPresplitBorrowed:
		return NormalizedArgv(representation.arguments), nil
	case RepresentationPresplitOwned:
		ownedArguments := make(NormalizedArgv, len(representation.arguments))
		copy(ownedArguments, representation.arguments)
		return ownedArguments, nil
	default:
		return TokenizeRawText(representation.rawText, removeComments)
	}
}

// String renders the representation for diagnostics.
func (representation CommandRepresentation) String() string {
	if representation.kind == RepresentationRawText {
		return strconv.Quote(representation.rawText)
	}
	return NormalizedArgv(representation.arguments).String()
}

// NormalizedArgv is an ordered argument vector whose first element is the program.
type NormalizedArgv []string

// Program returns the program token or an empty string when the argv is empty.
func (argv NormalizedArgv) Program() string {
	if len(argv) == 0 {
		return ""
	}
	return argv[0]
}

// Arguments returns the tokens following the program.
func (argv NormalizedArgv) Arguments() []string {
	if len(argv) < 2 {
		return nil
	}
	return argv[1:]
}

// Validate reports ErrEmptyCommand when there is no program to run.
func (argv NormalizedArgv) Validate() error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	return nil
}

// String renders the argv as a quoted list, e.g. ["cargo", "+nightly", "fmt"].
func (argv NormalizedArgv) String() string {
	quotedTokens := make([]string, 0, len(argv))
	for _, token := range argv {
		quotedTokens = append(quotedTokens, strconv.Quote(token))
	}
	return argvListOpeningConstant + strings.Join(quotedTokens, argvListSeparatorConstant) + argvListClosingConstant
}

// CommandLine joins the argv with single spaces for human-readable messages.
func (argv NormalizedArgv) CommandLine() string {
	return strings.Join(argv, " ")
}
