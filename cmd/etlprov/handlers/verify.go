package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/envfile"
)

// loadSecrets reads an existing secrets file - can be replaced in tests.
var loadSecrets = envfile.Load

// Verify checks both stores described by an existing secrets file. Both
// checks run even when the first fails, and every failure is returned.
func Verify(ctx context.Context, s *config.Settings, path string) error {
	values, err := loadSecrets(path)
	if err != nil {
		return err
	}

	profiles, err := config.ProfilesFromValues(values)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	verifier := newVerifier(s)

	fmt.Println()
	fmt.Println(styled(titleStyle, "Connection checks: "+path))
	fmt.Println()

	var errs []error
	for _, kind := range config.Kinds {
		res, err := verifier.Verify(ctx, profiles[kind])
		if err != nil {
			fmt.Printf("  %s %-10s %v\n", failMark(), kind.StoreName(), err)
			errs = append(errs, err)
			continue
		}
		printVerification(res)
	}
	fmt.Println()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Println(styled(okStyle, "Both stores are reachable. The ETL can run."))
	return nil
}
