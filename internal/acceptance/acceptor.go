package acceptance

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/envfile"
)

// Report describes an accepted document.
type Report struct {
	Warnings []string

	// ExternalRan is false when the external command was skipped.
	ExternalRan bool
	Output      string
}

// Acceptor runs the built-in rules and, unless skipped, the external command.
type Acceptor struct {
	command *Command
}

// New returns an Acceptor configured from settings.
func New(s *config.Settings) *Acceptor {
	a := &Acceptor{}
	if !s.SkipAcceptance && strings.TrimSpace(s.AcceptanceCommand) != "" {
		a.command = &Command{
			Line:    s.AcceptanceCommand,
			Dir:     s.RuntimeDir,
			Timeout: s.Timeouts.Acceptance,
		}
	}
	return a
}

// AcceptDocument checks a document that has not been written yet. Values
// that would not read back unchanged from the unquoted file are rejected too.
func (a *Acceptor) AcceptDocument(ctx context.Context, doc *envfile.Document) (*Report, error) {
	keys, err := envfile.Mismatches(doc)
	if err != nil {
		return nil, &config.AcceptanceError{Err: err}
	}
	if len(keys) > 0 {
		problems := make([]string, len(keys))
		for i, key := range keys {
			value, _ := doc.Get(key)
			reason := envfile.UnquotedProblem(value)
			if reason == "" {
				reason = "reads back differently"
			}
			problems[i] = fmt.Sprintf("%s cannot be stored unquoted (%s)", key, reason)
		}
		return nil, &config.AcceptanceError{Problems: problems}
	}
	return a.Accept(ctx, doc.Values())
}

// Accept checks parsed secrets file values. Every rejection is a
// *config.AcceptanceError.
func (a *Acceptor) Accept(ctx context.Context, values map[string]string) (*Report, error) {
	logger := logr.FromContextOrDiscard(ctx)

	if problems := Validate(values); len(problems) > 0 {
		return nil, &config.AcceptanceError{Problems: problems}
	}

	report := &Report{Warnings: Warnings(values)}
	for _, w := range report.Warnings {
		logger.Info("acceptance warning", "warning", w)
	}

	if a.command == nil {
		logger.V(1).Info("external acceptance skipped")
		return report, nil
	}

	logger.V(1).Info("running external acceptance", "command", a.command.Line, "dir", a.command.Dir)
	out, err := a.command.Run(ctx, values)
	if err != nil {
		return nil, &config.AcceptanceError{Output: strings.TrimSpace(out), Err: err}
	}

	report.ExternalRan = true
	report.Output = strings.TrimSpace(out)
	return report, nil
}
