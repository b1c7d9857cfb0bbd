package execshell

import (
	"fmt"
	"strings"
)

const (
	captureTargetNoneNameConstant            = "none"
	captureTargetStdoutNameConstant          = "stdout"
	captureTargetStderrNameConstant          = "stderr"
	captureTargetBothNameConstant            = "both"
	unsupportedCaptureTargetTemplateConstant = "unsupported capture target: %q"
)

// CaptureTarget selects which standard streams are collected from a child process.
type CaptureTarget int

// Supported capture targets.
const (
	CaptureNone CaptureTarget = iota
	CaptureStdout
	CaptureStderr
	CaptureBoth
)

var captureTargetNames = map[CaptureTarget]string{
	CaptureNone:   captureTargetNoneNameConstant,
	CaptureStdout: captureTargetStdoutNameConstant,
	CaptureStderr: captureTargetStderrNameConstant,
	CaptureBoth:   captureTargetBothNameConstant,
}

// CaptureTargetNames lists the accepted textual capture targets in declaration order.
func CaptureTargetNames() []string {
	return []string{
		captureTargetNoneNameConstant,
		captureTargetStdoutNameConstant,
		captureTargetStderrNameConstant,
		captureTargetBothNameConstant,
	}
}

// ParseCaptureTarget converts none, stdout, stderr or both into a CaptureTarget.
func ParseCaptureTarget(rawValue string) (CaptureTarget, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for target, name := range captureTargetNames {
		if name == normalizedValue {
			return target, nil
		}
	}
	return CaptureNone, fmt.Errorf(unsupportedCaptureTargetTemplateConstant, rawValue)
}

// String returns the textual capture target.
func (target CaptureTarget) String() string {
	if name, known := captureTargetNames[target]; known {
		return name
	}
	return fmt.Sprintf("CaptureTarget(%d)", int(target))
}

// MarshalText implements encoding.TextMarshaler.
func (target CaptureTarget) MarshalText() ([]byte, error) {
	return []byte(target.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (target *CaptureTarget) UnmarshalText(text []byte) error {
	parsedTarget, parseError := ParseCaptureTarget(string(text))
	if parseError != nil {
		return parseError
	}
	*target = parsedTarget
	return nil
}

func (target CaptureTarget) capturesStdout() bool {
	return target == CaptureStdout || target == CaptureBoth
}

func (target CaptureTarget) capturesStderr() bool {
	return target == CaptureStderr || target == CaptureBoth
}

// CapturedOutput holds decoded output of a finished child together with its
// exit status and the argv it was started with.
type CapturedOutput struct {
	Argv       NormalizedArgv
	Stdout     DecodedText
	Stderr     DecodedText
	ExitStatus ExitStatus
}
