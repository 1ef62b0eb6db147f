package provisioning

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/config/wizard"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Settings *config.Settings
	State    *State
	Source   wizard.Source
	Verifier Verifier
	Acceptor Acceptor
	Observer Observer

	// Now stamps the generated file.
	Now func() time.Time
}

// NewContext creates a new provisioning context. A nil observer logs
// through the logger carried by ctx.
func NewContext(
	ctx context.Context,
	settings *config.Settings,
	src wizard.Source,
	verifier Verifier,
	acceptor Acceptor,
	observer Observer,
) *Context {
	if observer == nil {
		observer = NewLogObserver(logr.FromContextOrDiscard(ctx))
	}
	return &Context{
		Context:  ctx,
		Settings: settings,
		State:    NewState(),
		Source:   src,
		Verifier: verifier,
		Acceptor: acceptor,
		Observer: observer,
		Now:      time.Now,
	}
}
