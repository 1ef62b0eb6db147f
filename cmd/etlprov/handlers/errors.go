package handlers

import (
	"errors"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/geodata/etlprov/internal/config"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitMissingCredential = 2
	ExitConnection        = 3
	ExitPersistence       = 4
	ExitAcceptance        = 5
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrMissingCredential):
		return ExitMissingCredential
	case errors.Is(err, config.ErrConnection):
		return ExitConnection
	case errors.Is(err, config.ErrPersistence):
		return ExitPersistence
	case errors.Is(err, config.ErrAcceptance):
		return ExitAcceptance
	default:
		return ExitFailure
	}
}

// RerunHint returns the literal command that repeats the failed run, quoted
// for a POSIX shell. args are the command line arguments without the
// program name. A connection failure during provisioning also names the
// write-only variant. A nil error yields "".
func RerunHint(err error, args []string) string {
	if err == nil {
		return ""
	}
	if len(args) == 0 {
		args = []string{"provision"}
	}

	line := shellquote.Join(append([]string{"etlprov"}, args...)...)
	hint := "Re-run: " + line

	if errors.Is(err, config.ErrConnection) && slices.Contains(args, "provision") && !slices.Contains(args, "--skip-verify") {
		hint += "\nTo write the file without checking connectivity: " + line + " --skip-verify"
	}
	return hint
}

// joinLines indents each line of s for display under a heading.
func joinLines(s, indent string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
