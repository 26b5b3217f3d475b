package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// RunPhases executes all pipeline phases sequentially. The first failure
// stops the run; an operator decline passes through unwrapped so callers
// can distinguish it from failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting deployment with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			if errors.Is(err, ErrUserAborted) {
				ctx.Observer.Printf("[%s] aborted by operator", name)
				return err
			}
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Deployment completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Phases returns the full deployment pipeline in execution order.
func Phases() []Phase {
	return []Phase{
		&PreflightPhase{},
		&ProvisionPhase{},
		&FactsPhase{},
		&ReadinessPhase{},
		&ConfigurePhase{},
		&SummaryPhase{},
	}
}
