package wizard

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// FormSource renders questions as charmbracelet/huh forms, one group per
// profile. Defaults are shown as placeholders so a blank field accepts them.
type FormSource struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

// NewFormSource returns a FormSource bound to the given terminal streams.
// Accessible mode replaces the TUI with line prompts for screen readers.
func NewFormSource(input io.Reader, output io.Writer, accessible bool) *FormSource {
	return &FormSource{input: input, output: output, accessible: accessible}
}

// Ask implements Source.
func (f *FormSource) Ask(ctx context.Context, q Question) (string, error) {
	answers, err := f.AskGroup(ctx, q.Title, []Question{q})
	if err != nil {
		return "", err
	}
	return answers[0], nil
}

// AskGroup implements GroupAsker.
func (f *FormSource) AskGroup(ctx context.Context, title string, qs []Question) ([]string, error) {
	answers := make([]string, len(qs))
	fields := make([]huh.Field, len(qs))

	for i, q := range qs {
		input := huh.NewInput().
			Title(formTitle(q)).
			Description(q.Description).
			Value(&answers[i])

		if q.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		} else if q.Default != "" {
			input = input.Placeholder(q.Default)
		}
		if q.Validate != nil && !q.Secret {
			input = input.Validate(q.Validate)
		}
		fields[i] = input
	}

	err := huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithAccessible(f.accessible).
		WithProgramOptions(tea.WithInput(f.input), tea.WithOutput(f.output)).
		RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}

	return answers, nil
}

func formTitle(q Question) string {
	if q.Secret || q.Default == "" {
		return q.Title
	}
	return q.Title + " [" + q.Default + "]"
}
