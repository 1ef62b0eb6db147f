package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const maxPromptAttempts = 3

// TerminalSource asks questions as plain line prompts of the form
// "Title [default]: ". Secrets are read without echo when input is a terminal.
type TerminalSource struct {
	in  *bufio.Reader
	out io.Writer
	fd  int

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
	getState     func(fd int) (*term.State, error)
	restore      func(fd int, state *term.State) error
}

// NewTerminalSource returns a TerminalSource reading from in and prompting on out.
func NewTerminalSource(in *os.File, out io.Writer) *TerminalSource {
	return newTerminalSource(in, out, int(in.Fd()))
}

func newTerminalSource(r io.Reader, out io.Writer, fd int) *TerminalSource {
	return &TerminalSource{
		in:           bufio.NewReader(r),
		out:          out,
		fd:           fd,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
		getState:     term.GetState,
		restore:      term.Restore,
	}
}

// Ask implements Source.
func (s *TerminalSource) Ask(ctx context.Context, q Question) (string, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		fmt.Fprint(s.out, promptText(q))

		answer, err := s.read(ctx, q.Secret)
		if err != nil {
			return "", err
		}
		if q.Secret {
			return answer, nil
		}

		trimmed := strings.TrimSpace(answer)
		if trimmed == "" || q.Validate == nil {
			return trimmed, nil
		}
		if verr := q.Validate(trimmed); verr != nil {
			fmt.Fprintf(s.out, "  invalid value: %v\n", verr)
			continue
		}
		return trimmed, nil
	}
	return "", fmt.Errorf("%s: %w", q.Key, errTooManyAttempts)
}

// read returns one answer, giving up when ctx is canceled. A blocked read is
// abandoned in that case; the process is about to exit anyway.
func (s *TerminalSource) read(ctx context.Context, secret bool) (string, error) {
	type result struct {
		line string
		err  error
	}

	masked := secret && s.isTerminal(s.fd)
	var saved *term.State
	if masked {
		saved, _ = s.getState(s.fd)
	}

	done := make(chan result, 1)
	go func() {
		if masked {
			b, err := s.readPassword(s.fd)
			fmt.Fprintln(s.out)
			done <- result{line: string(b), err: err}
			return
		}
		line, err := s.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- result{line: strings.TrimRight(line, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		if saved != nil {
			_ = s.restore(s.fd, saved)
		}
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return r.line, nil
	}
}

// promptText renders "Title [default]: " or "Title: " for secrets and blank defaults.
func promptText(q Question) string {
	if q.Secret || q.Default == "" {
		return q.Title + ": "
	}
	return fmt.Sprintf("%s [%s]: ", q.Title, q.Default)
}
