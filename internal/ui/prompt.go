package ui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Confirm displays a yes/no prompt
func Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// Select displays a selection prompt
func Select(message string, options []string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// SearchableSelect displays a selection prompt with case-insensitive
// filtering, for long option lists
func SearchableSelect(message string, options []string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
		Filter: func(filter string, value string, index int) bool {
			return strings.Contains(
				strings.ToLower(value),
				strings.ToLower(filter),
			)
		},
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// MultiSelect displays a multi-select prompt with defaults pre-selected.
// An empty selection re-prompts rather than returning no choices.
func MultiSelect(message string, options, defaults []string) ([]string, error) {
	selected := []string{}
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		Default:  defaults,
		PageSize: 10,
	}

	err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1)))
	return selected, err
}

// Input displays a text input prompt. When validate is non-nil it runs on
// every submitted answer; a returned error is shown to the user and the
// prompt re-asks instead of failing.
func Input(message, defaultValue string, validate func(string) error) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	err := survey.AskOne(prompt, &result, validatorOpts(validate)...)
	return result, err
}

// validatorOpts adapts a string validator to survey ask options. A nil
// validator accepts any input.
func validatorOpts(validate func(string) error) []survey.AskOpt {
	if validate == nil {
		return nil
	}

	return []survey.AskOpt{
		survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				return fmt.Errorf("unexpected answer type %T", ans)
			}
			return validate(s)
		}),
	}
}
