package execshell

import (
	"fmt"
	"strings"
)

const (
	stdioModeInheritNameConstant         = "inherit"
	stdioModePipedNameConstant           = "piped"
	stdioModeNullNameConstant            = "null"
	unsupportedStdioModeTemplateConstant = "unsupported stdio mode: %q"
)

// StdioMode selects how a standard stream of the child process is wired.
type StdioMode int

// Supported stdio modes. The zero value inherits the parent's stream.
const (
	StdioInherit StdioMode = iota
	StdioPiped
	StdioNull
)

var stdioModeNames = map[StdioMode]string{
	StdioInherit: stdioModeInheritNameConstant,
	StdioPiped:   stdioModePipedNameConstant,
	StdioNull:    stdioModeNullNameConstant,
}

// ParseStdioMode converts a textual mode (inherit, piped, null) into a StdioMode.
func ParseStdioMode(rawValue string) (StdioMode, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for mode, name := range stdioModeNames {
		if name == normalizedValue {
			return mode, nil
		}
	}
	return StdioInherit, fmt.Errorf(unsupportedStdioModeTemplateConstant, rawValue)
}

// String returns the textual mode name.
func (mode StdioMode) String() string {
	if name, known := stdioModeNames[mode]; known {
		return name
	}
	return fmt.Sprintf("StdioMode(%d)", int(mode))
}

// MarshalText implements encoding.TextMarshaler.
func (mode StdioMode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *StdioMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParseStdioMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsedMode
	return nil
}

// StdioConfiguration wires the three standard streams of a child process.
type StdioConfiguration struct {
	Stdin  StdioMode `mapstructure:"stdin" yaml:"stdin"`
	Stdout StdioMode `mapstructure:"stdout" yaml:"stdout"`
	Stderr StdioMode `mapstructure:"stderr" yaml:"stderr"`
}

// DefaultSpawnerStdio inherits stdin and stderr and pipes stdout.
func DefaultSpawnerStdio() StdioConfiguration {
	return StdioConfiguration{Stdin: StdioInherit, Stdout: StdioPiped, Stderr: StdioInherit}
}

// InheritedStdio inherits all three streams from the current process.
func InheritedStdio() StdioConfiguration {
	return StdioConfiguration{Stdin: StdioInherit, Stdout: StdioInherit, Stderr: StdioInherit}
}
