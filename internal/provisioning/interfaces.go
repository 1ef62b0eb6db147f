package provisioning

import (
	"context"

	"github.com/geodata/etlprov/internal/acceptance"
	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/envfile"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Verifier checks that a store accepts a profile.
// Implemented by connectivity.Verifier.
type Verifier interface {
	Verify(ctx context.Context, p *config.ConnectionProfile) (*connectivity.Result, error)
}

// Acceptor decides whether the runtime will accept a document.
// Implemented by acceptance.Acceptor.
type Acceptor interface {
	AcceptDocument(ctx context.Context, doc *envfile.Document) (*acceptance.Report, error)
}
