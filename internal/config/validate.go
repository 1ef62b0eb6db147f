package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errPortRequired = errors.New("port is required")
	errPortInvalid  = errors.New("port must be a number between 1 and 65535")
)

// Validate checks the profile for completeness. An empty password yields a
// *MissingCredentialError; other problems are plain validation errors.
func (p *ConnectionProfile) Validate() error {
	keys := p.Kind.Keys()

	if p.Password == "" {
		return &MissingCredentialError{Kind: p.Kind, Key: keys.Password}
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("%s is required", keys.Host)
	}
	if err := ValidatePort(p.Port); err != nil {
		return fmt.Errorf("%s: %w", keys.Port, err)
	}
	if strings.TrimSpace(p.Identifier) == "" {
		return fmt.Errorf("%s is required", keys.Identifier)
	}
	if strings.TrimSpace(p.User) == "" {
		return fmt.Errorf("%s is required", keys.User)
	}
	return nil
}

// ValidatePort checks that s is a TCP port number.
func ValidatePort(s string) error {
	if strings.TrimSpace(s) == "" {
		return errPortRequired
	}
	if _, err := parsePort(s); err != nil {
		return err
	}
	return nil
}

// ValidateInteger checks that s parses as a base-10 integer.
func ValidateInteger(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("%q is not an integer", s)
	}
	return nil
}

func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return 0, errPortInvalid
	}
	return n, nil
}
