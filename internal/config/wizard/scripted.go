package wizard

import "context"

// Scripted answers questions from a fixed map. Missing keys answer blank,
// i.e. accept the default. It records every key it was asked, which lets
// tests assert how far a run progressed.
type Scripted struct {
	Answers map[string]string
	Err     error

	Asked []string
}

// NewScripted returns a Scripted source for the given answers.
func NewScripted(answers map[string]string) *Scripted {
	return &Scripted{Answers: answers}
}

// Ask implements Source.
func (s *Scripted) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Asked = append(s.Asked, q.Key)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Answers[q.Key], nil
}
