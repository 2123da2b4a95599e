// Where: internal/infra/interaction/selector.go
// What: Interactive prompt helpers using the huh library.
// Why: Provide keyboard-based input for the generation parameters.
package interaction

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

var runInputPrompt = func(title, placeholder string, validate func(string) error, input *string) error {
	field := huh.NewInput().
		Title(title).
		Value(input)
	if placeholder != "" {
		field.Placeholder(placeholder)
	}
	if validate != nil {
		field.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" && placeholder != "" {
				return nil
			}
			return validate(s)
		})
	}
	return field.Run()
}

var runConfirmPrompt = func(title string, value *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(value).
		Run()
}

var runSelectPrompt = func(title string, options []huh.Option[string], selected *string) error {
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(selected).
		Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

// Input asks for a line of text. An empty answer yields placeholder.
func (p HuhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var input string
	err := runInputPrompt(title, placeholder, validate, &input)
	if err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return placeholder, nil
	}
	return input, nil
}

func (p HuhPrompter) Confirm(title string, initial bool) (bool, error) {
	value := initial
	if err := runConfirmPrompt(title, &value); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return value, nil
}

func (p HuhPrompter) SelectValue(title string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	selected := options[0].Value
	err := runSelectPrompt(title, huhOptions, &selected)
	if err != nil {
		return "", fmt.Errorf("prompt select value: %w", err)
	}
	return selected, nil
}
