package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for the provisioning failure taxonomy.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrConnection        = errors.New("connection failed")
	ErrPersistence       = errors.New("persistence failed")
	ErrAcceptance        = errors.New("secrets file rejected")
)

// MissingCredentialError reports an empty secret for a profile.
type MissingCredentialError struct {
	Kind Kind
	Key  string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s password is required (%s was left empty)", e.Kind.StoreName(), e.Key)
}

// Unwrap returns ErrMissingCredential.
func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// ConnectionError wraps any failure to reach a backing store: driver
// unavailable, authentication rejected, network unreachable or timeout.
type ConnectionError struct {
	Kind     Kind
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection to %s failed: %v", e.Kind.StoreName(), e.Endpoint, e.Err)
}

// Unwrap exposes both ErrConnection and the underlying cause.
func (e *ConnectionError) Unwrap() []error { return []error{ErrConnection, e.Err} }

// PersistenceError wraps a filesystem failure while backing up or writing the secrets file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrPersistence and the underlying cause.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// AcceptanceError reports that the secrets document was rejected, either by
// the built-in rules or by the external runtime's configuration loader.
type AcceptanceError struct {
	Problems []string
	Output   string
	Err      error
}

func (e *AcceptanceError) Error() string {
	msg := "secrets file rejected"
	if len(e.Problems) > 0 {
		msg += ": " + joinProblems(e.Problems)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap exposes ErrAcceptance and, when present, the underlying cause.
func (e *AcceptanceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAcceptance}
	}
	return []error{ErrAcceptance, e.Err}
}

func joinProblems(problems []string) string {
	out := problems[0]
	for _, p := range problems[1:] {
		out += "; " + p
	}
	return out
}
