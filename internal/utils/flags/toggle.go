package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleTypeNameConstant                 = "bool"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleUsageEmptyTemplateConstant       = "`%s`"
	toggleUsageFullTemplateConstant        = "`%s` %s"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagAssignmentSeparatorConstant        = "="
)

var toggleLiterals = map[string]bool{
	toggleTrueCanonicalValue:  true,
	"yes":                     true,
	"on":                      true,
	"1":                       true,
	"t":                       true,
	"y":                       true,
	toggleFalseCanonicalValue: false,
	"no":                      false,
	"off":                     false,
	"0":                       false,
	"f":                       false,
	"n":                       false,
}

// AddToggleFlag registers a boolean flag that accepts yes/no style values in addition to true/false.
// A bare flag means yes.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	flag := flagSet.VarPF(toggleValue, name, shorthand, formatToggleUsage(usage, defaultValue))
	flag.NoOptDefVal = toggleTrueCanonicalValue
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleUsageEmptyTemplateConstant, placeholder)
	}
	return fmt.Sprintf(toggleUsageFullTemplateConstant, placeholder, trimmedDescription)
}

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for toggle
// flags registered on flagSet, so a following yes/no is not mistaken for a
// positional argument. Everything after "--" is left untouched.
func NormalizeToggleArguments(flagSet *pflag.FlagSet, arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalizedArguments := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]
		if currentArgument == longFlagPrefixConstant {
			normalizedArguments = append(normalizedArguments, arguments[argumentIndex:]...)
			break
		}

		if argumentIndex+1 < len(arguments) && isDetachedToggle(flagSet, currentArgument) && isToggleLiteral(arguments[argumentIndex+1]) {
			normalizedArguments = append(normalizedArguments, currentArgument+flagAssignmentSeparatorConstant+arguments[argumentIndex+1])
			argumentIndex++
			continue
		}

		normalizedArguments = append(normalizedArguments, currentArgument)
	}
	return normalizedArguments
}

func isDetachedToggle(flagSet *pflag.FlagSet, argument string) bool {
	if flagSet == nil || strings.Contains(argument, flagAssignmentSeparatorConstant) {
		return false
	}

	var flag *pflag.Flag
	switch {
	case strings.HasPrefix(argument, longFlagPrefixConstant):
		flag = flagSet.Lookup(strings.TrimPrefix(argument, longFlagPrefixConstant))
	case strings.HasPrefix(argument, shortFlagPrefixConstant) && len(argument) == 2:
		flag = flagSet.ShorthandLookup(strings.TrimPrefix(argument, shortFlagPrefixConstant))
	}
	if flag == nil {
		return false
	}
	_, isToggle := flag.Value.(*toggleFlagValue)
	return isToggle
}

func isToggleLiteral(value string) bool {
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(value))]
	return known
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleTypeNameConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	if parsedValue, known := toggleLiterals[normalizedValue]; known {
		return parsedValue, nil
	}
	return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
}
