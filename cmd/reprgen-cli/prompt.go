package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted signals the user aborted a prompt (e.g., Ctrl+C).
var errAborted = errors.New("reprgen: aborted")

// selectConfig configures a single-select prompt.
type selectConfig struct {
	Message string
	Options []string
	Default string
	Help    string
}

// prompter abstracts the terminal so commands can be tested without one.
type prompter interface {
	Select(ctx context.Context, cfg selectConfig) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(ctx context.Context, cfg selectConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.Default != "" {
		prompt.Default = cfg.Default
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
