package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geodata/etlprov/internal/config"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"missing credential", fmt.Errorf("collect-source phase failed: %w",
			&config.MissingCredentialError{Kind: config.KindSource, Key: config.KeyOraclePassword}), ExitMissingCredential},
		{"connection", fmt.Errorf("verify-destination phase failed: %w",
			&config.ConnectionError{Kind: config.KindDestination, Endpoint: "localhost:5432", Err: context.DeadlineExceeded}), ExitConnection},
		{"joined connection failures", errors.Join(
			&config.ConnectionError{Kind: config.KindSource, Err: errors.New("refused")},
			&config.ConnectionError{Kind: config.KindDestination, Err: errors.New("refused")}), ExitConnection},
		{"persistence", fmt.Errorf("persist phase failed: %w",
			&config.PersistenceError{Op: "write", Path: ".env", Err: errors.New("read-only file system")}), ExitPersistence},
		{"acceptance", fmt.Errorf("accept phase failed: %w",
			&config.AcceptanceError{Problems: []string{"required setting ENV is missing"}}), ExitAcceptance},
		{"other", errors.New("wizard canceled"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestRerunHint(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, RerunHint(nil, []string{"provision"}))
	})

	t.Run("repeats the arguments", func(t *testing.T) {
		t.Parallel()
		hint := RerunHint(errors.New("boom"), []string{"provision", "-o", "/srv/etl/.env", "--env", "staging"})
		assert.Equal(t, "Re-run: etlprov provision -o /srv/etl/.env --env staging", hint)
	})

	t.Run("quotes for the shell", func(t *testing.T) {
		t.Parallel()
		hint := RerunHint(errors.New("boom"), []string{"provision", "-o", "my secrets.env"})
		assert.Equal(t, `Re-run: etlprov provision -o 'my secrets.env'`, hint)
	})

	t.Run("defaults to provision", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Re-run: etlprov provision", RerunHint(errors.New("boom"), nil))
	})

	t.Run("connection failure suggests write-only", func(t *testing.T) {
		t.Parallel()
		err := &config.ConnectionError{Kind: config.KindSource, Endpoint: "db:1521", Err: errors.New("refused")}
		hint := RerunHint(err, []string{"provision"})
		assert.Contains(t, hint, "Re-run: etlprov provision\n")
		assert.Contains(t, hint, "etlprov provision --skip-verify")
	})

	t.Run("connection failure after persistent flags", func(t *testing.T) {
		t.Parallel()
		err := &config.ConnectionError{Kind: config.KindDestination, Endpoint: "pg:5432", Err: errors.New("refused")}
		hint := RerunHint(err, []string{"--log-level", "debug", "provision"})
		assert.Contains(t, hint, "etlprov --log-level debug provision --skip-verify")
	})

	t.Run("connection failure already write-only", func(t *testing.T) {
		t.Parallel()
		err := &config.ConnectionError{Kind: config.KindDestination, Endpoint: "pg:5432", Err: errors.New("refused")}
		hint := RerunHint(err, []string{"--log-level", "debug", "provision", "--skip-verify"})
		assert.NotContains(t, hint, "without checking connectivity")
	})

	t.Run("connection failure outside provision", func(t *testing.T) {
		t.Parallel()
		err := &config.ConnectionError{Kind: config.KindSource, Endpoint: "db:1521", Err: errors.New("refused")}
		assert.Equal(t, "Re-run: etlprov verify -f .env", RerunHint(err, []string{"verify", "-f", ".env"}))
	})
}

func TestJoinLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  a\n  b", joinLines("a\nb\n", "  "))
}
