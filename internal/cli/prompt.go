package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/tinygo-tools/targetctl/internal/selector"
)

// surveyPrompter presents the target catalog as an interactive select
// prompt. Dismissing the prompt maps to selector.ErrCancelled.
type surveyPrompter struct{}

func (surveyPrompter) Pick(options []string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message:  "Select TinyGo target:",
		Options:  options,
		PageSize: 15,
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", selector.ErrCancelled
		}
		return "", err
	}
	return choice, nil
}
