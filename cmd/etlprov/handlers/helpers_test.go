package handlers

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/util/prerequisites"
)

// captureOutput captures stdout output from a function.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = old
	return <-done
}

// saveAndRestoreFactories saves and restores all handler factory functions.
func saveAndRestoreFactories(t *testing.T) {
	origNewSource := newSource
	origNewVerifier := newVerifier
	origNewAcceptor := newAcceptor
	origNow := now
	origLoadSecrets := loadSecrets
	origCheckTools := checkTools
	origStdoutIsTerminal := stdoutIsTerminal
	origStdinIsTerminal := stdinIsTerminal

	t.Cleanup(func() {
		newSource = origNewSource
		newVerifier = origNewVerifier
		newAcceptor = origNewAcceptor
		now = origNow
		loadSecrets = origLoadSecrets
		checkTools = origCheckTools
		stdoutIsTerminal = origStdoutIsTerminal
		stdinIsTerminal = origStdinIsTerminal
	})
}

// stubVerifier answers checks per kind.
type stubVerifier struct {
	failures map[config.Kind]error
	calls    []config.Kind
}

func (s *stubVerifier) Verify(_ context.Context, p *config.ConnectionProfile) (*connectivity.Result, error) {
	s.calls = append(s.calls, p.Kind)
	if err := s.failures[p.Kind]; err != nil {
		return nil, &config.ConnectionError{Kind: p.Kind, Endpoint: p.Endpoint(), Err: err}
	}
	return &connectivity.Result{
		Kind:       p.Kind,
		Endpoint:   p.Endpoint(),
		ServerTime: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Detail:     "12 user tables",
		Duration:   40 * time.Millisecond,
	}, nil
}

// noTools reports every probed tool as missing without touching PATH.
func noTools(_ context.Context, tools []prerequisites.Tool, _ bool) *prerequisites.CheckResults {
	results := &prerequisites.CheckResults{}
	for _, tool := range tools {
		results.Results = append(results.Results, prerequisites.CheckResult{Tool: tool})
		results.Missing = append(results.Missing, tool)
	}
	return results
}

// validValues is a complete, acceptable set of secrets file values.
func validValues() map[string]string {
	return map[string]string{
		config.KeyOracleHost:        config.DefaultOracleHost,
		config.KeyOraclePort:        config.DefaultOraclePort,
		config.KeyOracleServiceName: config.DefaultOracleService,
		config.KeyOracleUser:        config.DefaultOracleUser,
		config.KeyOraclePassword:    "oracleSecret1",
		config.KeyPostgresHost:      config.DefaultPostgresHost,
		config.KeyPostgresPort:      config.DefaultPostgresPort,
		config.KeyPostgresDatabase:  config.DefaultPostgresDatabase,
		config.KeyPostgresUser:      config.DefaultPostgresUser,
		config.KeyPostgresPassword:  "pgSecret1",
		config.KeyLoadStrategy:      config.DefaultLoadStrategy,
		config.KeyQueryTimeout:      config.DefaultQueryTimeout,
		config.KeyBatchSize:         config.DefaultBatchSize,
		config.KeyLogLevel:          config.DefaultLogLevel,
		config.KeySQLScriptsPath:    config.DefaultSQLScriptsPath,
		config.KeyLogDirectory:      config.DefaultLogDirectory,
		config.KeyEnvironment:       config.DefaultEnvironment,
	}
}

func stubSecrets(values map[string]string, err error) func(string) (map[string]string, error) {
	return func(string) (map[string]string, error) {
		return values, err
	}
}
