// Package wizard collects connection profiles and runtime options from an
// operator or from a non-interactive answer source.
//
// Collection logic is written against the small [Source] interface so the
// same code drives four front ends: [FormSource] renders charmbracelet/huh
// forms, [TerminalSource] prints plain "Title [default]:" prompts and reads
// secrets without echo, [AnswersSource] replays a YAML answers file, and
// [Scripted] supplies canned answers in tests.
//
// The main entry points are [Collect] and [CollectOptions]. Blank answers
// fall back to the offered default; secrets never have a default and an
// empty secret aborts collection with config.ErrMissingCredential.
package wizard
