package provisioning

import (
	"fmt"
	"time"

	"github.com/geodata/etlprov/internal/config"
)

// Pipeline executes provisioning phases sequentially.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline of the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// NewProvisionPipeline creates the standard workflow. Verification phases are
// omitted when settings select the write-only variant.
func NewProvisionPipeline(s *config.Settings) *Pipeline {
	phases := []Phase{
		NewPreflightPhase(),
		NewCollectProfilePhase(config.KindSource),
		NewCollectProfilePhase(config.KindDestination),
		NewCollectOptionsPhase(),
	}
	if !s.SkipVerify {
		phases = append(phases,
			NewVerifyPhase(config.KindSource),
			NewVerifyPhase(config.KindDestination),
		)
	}
	phases = append(phases, NewAcceptPhase(), NewPersistPhase())
	return NewPipeline(phases...)
}

// Run executes all phases in order and stops at the first error.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()

	for i, phase := range p.Phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s phase canceled: %w", phase.Name(), err)
		}

		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name(), i+1, len(p.Phases))

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), time.Since(phaseStart), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}

	ctx.Observer.Event(Event{
		Type:     EventRunCompleted,
		Duration: time.Since(start),
		Message:  fmt.Sprintf("provisioning completed in %v", time.Since(start).Round(time.Millisecond)),
	})
	return nil
}
