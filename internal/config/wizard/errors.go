package wizard

import "errors"

// Errors returned by input sources.
var (
	errUnknownAnswerKey = errors.New("unknown answer key")
	errAnswersNotMap    = errors.New("answers file must be a mapping of KEY: value")
	errTooManyAttempts  = errors.New("too many invalid answers")
)

// ErrAborted is returned when the operator cancels an interactive prompt.
var ErrAborted = errors.New("input aborted by operator")
