package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/geodata/etlprov/internal/config"
)

// Function variable for dependency injection in tests.
var statPath = os.Stat

// ValidationError represents a settings validation error or warning.
type ValidationError struct {
	Field    string // Setting that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// PreflightPhase implements the Phase interface for checks that must pass
// before the operator is asked for anything.
type PreflightPhase struct{}

// NewPreflightPhase creates a new preflight phase.
func NewPreflightPhase() *PreflightPhase {
	return &PreflightPhase{}
}

// Name implements the Phase interface.
func (vp *PreflightPhase) Name() string {
	return "preflight"
}

// Provision implements the Phase interface.
func (vp *PreflightPhase) Provision(ctx *Context) error {
	s := ctx.Settings

	// An unwritable destination is a persistence failure, reported up front
	if err := checkOutputPath(s.OutputPath); err != nil {
		return &config.PersistenceError{Op: "prepare", Path: s.OutputPath, Err: err}
	}

	var errs []ValidationError
	for _, ve := range validate(s) {
		if ve.IsError() {
			errs = append(errs, ve)
			continue
		}
		LogValidationWarning(ctx.Observer, vp.Name(), ve.Message)
	}

	if len(errs) > 0 {
		var errMsgs []string
		for _, e := range errs {
			errMsgs = append(errMsgs, e.Error())
		}
		return fmt.Errorf("settings validation failed:\n  %s", strings.Join(errMsgs, "\n  "))
	}
	return nil
}

// checkOutputPath requires an existing parent directory and rejects a
// directory at the output path itself.
func checkOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("output path is empty")
	}

	dir := filepath.Dir(path)
	info, err := statPath(dir)
	if err != nil {
		return fmt.Errorf("output directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	info, err = statPath(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// validate runs the settings checks and returns any errors or warnings.
func validate(s *config.Settings) []ValidationError {
	var errs []ValidationError

	// --- Existing file ---

	if info, err := statPath(s.OutputPath); err == nil && info.Mode().Perm()&^config.SecretsFileMode != 0 {
		errs = append(errs, ValidationError{
			Field:    "OutputPath",
			Message:  fmt.Sprintf("existing %s has mode %04o; it will be replaced with mode 0600", s.OutputPath, info.Mode().Perm()),
			Severity: "warning",
		})
	}

	// --- Acceptance ---

	if !s.SkipAcceptance && strings.TrimSpace(s.AcceptanceCommand) != "" && s.RuntimeDir != "" {
		info, err := statPath(s.RuntimeDir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			errs = append(errs, ValidationError{
				Field:    "RuntimeDir",
				Message:  fmt.Sprintf("runtime directory %s does not exist (use --skip-acceptance to write without the runtime check)", s.RuntimeDir),
				Severity: "error",
			})
		case err == nil && !info.IsDir():
			errs = append(errs, ValidationError{
				Field:    "RuntimeDir",
				Message:  fmt.Sprintf("runtime directory %s is not a directory", s.RuntimeDir),
				Severity: "error",
			})
		}
	}

	if s.SkipAcceptance {
		errs = append(errs, ValidationError{
			Field:    "SkipAcceptance",
			Message:  "the runtime's configuration loader will not check the file",
			Severity: "warning",
		})
	}

	// --- Verification ---

	if s.SkipVerify {
		errs = append(errs, ValidationError{
			Field:    "SkipVerify",
			Message:  "connectivity checks are skipped; credentials are written unverified",
			Severity: "warning",
		})
	}

	// --- Paths ---

	for _, p := range []struct{ field, value string }{
		{"Paths.SQLScriptsPath", s.Paths.SQLScriptsPath},
		{"Paths.LogDirectory", s.Paths.LogDirectory},
	} {
		if p.value != "" && !filepath.IsAbs(p.value) {
			errs = append(errs, ValidationError{
				Field:    p.field,
				Message:  fmt.Sprintf("%s is relative; the runtime resolves it against its working directory", p.value),
				Severity: "warning",
			})
		}
	}

	if strings.TrimSpace(s.Paths.Environment) == "" {
		errs = append(errs, ValidationError{
			Field:    "Paths.Environment",
			Message:  "environment tag is required",
			Severity: "error",
		})
	}

	return errs
}
