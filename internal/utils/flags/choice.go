package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix     = "<"
	choicePlaceholderSuffix     = ">"
	choiceSeparatorLiteral      = "|"
	choiceUsageEmptyTemplate    = "`%s`"
	choiceUsageFullTemplate     = "`%s` %s"
	choiceTypeNameConstant      = "string"
	choiceInvalidValueTemplate  = "invalid value %q (expected one of %s)"
	choiceListSeparatorConstant = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// AddChoiceFlag registers a string flag restricted to the provided choices.
// Values are matched case-insensitively and stored in lower case.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	choiceValue := &choiceFlagValue{target: target, choices: normalizeChoices(choices)}
	if target != nil {
		*target = defaultChoice
	}
	flagSet.Var(choiceValue, name, FormatChoiceUsage(defaultChoice, choices, description))
}

type choiceFlagValue struct {
	target  *string
	choices []string
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if !slices.Contains(value.choices, normalizedValue) {
		return fmt.Errorf(choiceInvalidValueTemplate, rawValue, strings.Join(value.choices, choiceListSeparatorConstant))
	}
	if value.target != nil {
		*value.target = normalizedValue
	}
	return nil
}

func (value *choiceFlagValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

func (value *choiceFlagValue) Type() string {
	return choiceTypeNameConstant
}

func normalizeChoices(choices []string) []string {
	normalizedChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 || slices.Contains(normalizedChoices, normalizedChoice) {
			continue
		}
		normalizedChoices = append(normalizedChoices, normalizedChoice)
	}
	return normalizedChoices
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault && len(normalizedChoice) > 0 {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
