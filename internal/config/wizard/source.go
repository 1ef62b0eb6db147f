package wizard

import "context"

// Question is a single prompt for one secrets file field.
type Question struct {
	// Key is the secrets file key the answer is stored under (e.g. ORACLE_HOST).
	Key string

	Title       string
	Description string

	// Default is offered to the operator and used when the answer is blank.
	// Secret questions never carry a default.
	Default string

	// Secret answers are masked on input and never trimmed.
	Secret bool

	// Validate checks a non-blank answer. Interactive sources re-ask on failure.
	Validate func(string) error
}

// Source supplies raw answers to questions. A blank answer means "accept the default".
type Source interface {
	Ask(ctx context.Context, q Question) (string, error)
}

// GroupAsker is implemented by sources that can present several related
// questions at once, such as a form with one group per profile.
type GroupAsker interface {
	AskGroup(ctx context.Context, title string, qs []Question) ([]string, error)
}

// askAll asks every question, using a single group when the source supports it.
func askAll(ctx context.Context, src Source, title string, qs []Question) ([]string, error) {
	if ga, ok := src.(GroupAsker); ok {
		return ga.AskGroup(ctx, title, qs)
	}

	answers := make([]string, len(qs))
	for i, q := range qs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := src.Ask(ctx, q)
		if err != nil {
			return nil, err
		}
		answers[i] = a
	}
	return answers, nil
}

// validateOptional runs fn on non-blank input only, so blank can fall back to the default.
func validateOptional(fn func(string) error) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		return fn(s)
	}
}
