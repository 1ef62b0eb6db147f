package provisioning

import (
	"errors"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/config/wizard"
	"github.com/geodata/etlprov/internal/envfile"
)

// CollectProfilePhase asks for one connection profile.
type CollectProfilePhase struct {
	kind config.Kind
}

// NewCollectProfilePhase creates a collection phase for kind.
func NewCollectProfilePhase(kind config.Kind) *CollectProfilePhase {
	return &CollectProfilePhase{kind: kind}
}

// Name implements the Phase interface.
func (p *CollectProfilePhase) Name() string { return "collect-" + string(p.kind) }

// Provision implements the Phase interface.
func (p *CollectProfilePhase) Provision(ctx *Context) error {
	profile, err := wizard.Collect(ctx, ctx.Source, p.kind, config.DefaultProfile(p.kind))
	if err != nil {
		return err
	}
	ctx.State.Profiles[p.kind] = profile
	return nil
}

// CollectOptionsPhase asks for the runtime options.
type CollectOptionsPhase struct{}

// NewCollectOptionsPhase creates the options collection phase.
func NewCollectOptionsPhase() *CollectOptionsPhase { return &CollectOptionsPhase{} }

// Name implements the Phase interface.
func (p *CollectOptionsPhase) Name() string { return "collect-options" }

// Provision implements the Phase interface.
func (p *CollectOptionsPhase) Provision(ctx *Context) error {
	opts, err := wizard.CollectOptions(ctx, ctx.Source, config.DefaultRuntimeOptions(), ctx.Settings.Advanced)
	if err != nil {
		return err
	}
	ctx.State.Options = opts
	return nil
}

// VerifyPhase checks connectivity for one collected profile.
type VerifyPhase struct {
	kind config.Kind
}

// NewVerifyPhase creates a verification phase for kind.
func NewVerifyPhase(kind config.Kind) *VerifyPhase {
	return &VerifyPhase{kind: kind}
}

// Name implements the Phase interface.
func (p *VerifyPhase) Name() string { return "verify-" + string(p.kind) }

// Provision implements the Phase interface.
func (p *VerifyPhase) Provision(ctx *Context) error {
	profile, ok := ctx.State.Profiles[p.kind]
	if !ok {
		return errProfileNotCollected(p.kind)
	}

	res, err := ctx.Verifier.Verify(ctx, profile)
	if err != nil {
		return err
	}

	ctx.State.Verifications[p.kind] = res
	LogConnectionVerified(ctx.Observer, p.Name(), res)
	return nil
}

// AcceptPhase assembles the document and has it accepted before anything is written.
type AcceptPhase struct{}

// NewAcceptPhase creates the acceptance phase.
func NewAcceptPhase() *AcceptPhase { return &AcceptPhase{} }

// Name implements the Phase interface.
func (p *AcceptPhase) Name() string { return "accept" }

// Provision implements the Phase interface.
func (p *AcceptPhase) Provision(ctx *Context) error {
	source, ok := ctx.State.Profiles[config.KindSource]
	if !ok {
		return errProfileNotCollected(config.KindSource)
	}
	destination, ok := ctx.State.Profiles[config.KindDestination]
	if !ok {
		return errProfileNotCollected(config.KindDestination)
	}
	if ctx.State.Options == nil {
		return errors.New("runtime options were not collected")
	}

	doc := envfile.NewDocument(source, destination, ctx.State.Options, ctx.Settings.Paths)

	report, err := ctx.Acceptor.AcceptDocument(ctx, doc)
	if err != nil {
		return err
	}
	for _, w := range report.Warnings {
		LogValidationWarning(ctx.Observer, p.Name(), w)
	}

	ctx.State.Document = doc
	ctx.State.Acceptance = report
	return nil
}

// PersistPhase backs up the previous file and writes the accepted document.
type PersistPhase struct{}

// NewPersistPhase creates the persistence phase.
func NewPersistPhase() *PersistPhase { return &PersistPhase{} }

// Name implements the Phase interface.
func (p *PersistPhase) Name() string { return "persist" }

// Provision implements the Phase interface.
func (p *PersistPhase) Provision(ctx *Context) error {
	if ctx.State.Document == nil {
		return errors.New("no accepted document to persist")
	}

	res, err := envfile.Write(ctx.Settings.OutputPath, envfile.Render(ctx.State.Document, ctx.Now()))
	if err != nil {
		return err
	}

	ctx.State.Written = res
	LogFileWritten(ctx.Observer, p.Name(), res)
	return nil
}

func errProfileNotCollected(kind config.Kind) error {
	return errors.New(string(kind) + " profile was not collected")
}
