package provisioning

import (
	"github.com/geodata/etlprov/internal/acceptance"
	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/envfile"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Collection results
	Profiles map[config.Kind]*config.ConnectionProfile
	Options  *config.RuntimeOptions

	// Verification results, empty in the write-only variant
	Verifications map[config.Kind]*connectivity.Result

	// Acceptance results
	Document   *envfile.Document
	Acceptance *acceptance.Report

	// Persistence result
	Written *envfile.WriteResult
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		Profiles:      make(map[config.Kind]*config.ConnectionProfile),
		Verifications: make(map[config.Kind]*connectivity.Result),
	}
}
