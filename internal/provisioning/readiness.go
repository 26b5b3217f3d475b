package provisioning

import (
	"github.com/webstead/webstead/internal/util/retry"
)

// ReadinessPhase polls SSH reachability of the provisioned host until it
// answers or the attempt budget runs out.
//
// A fresh host's SSH daemon is not instantly available; the poll absorbs
// that startup latency without operator intervention, while the fixed budget
// keeps the worst-case wait bounded at attempts * interval.
type ReadinessPhase struct{}

// Name implements Phase.
func (p *ReadinessPhase) Name() string { return "readiness" }

// Provision implements Phase.
func (p *ReadinessPhase) Provision(ctx *Context) error {
	host := ctx.State.Facts[FactPublicIP]

	prober, err := ctx.NewProber(host)
	if err != nil {
		return err
	}

	cfg := ctx.Config.Readiness
	var lastErr error

	err = retry.Do(ctx, func() error {
		return prober.Probe(ctx)
	},
		retry.WithAttempts(cfg.Attempts),
		retry.WithDelay(cfg.Interval.Std()),
		retry.WithAttemptCallback(func(attempt int, err error) {
			lastErr = err
			ctx.Observer.Printf("probe %d/%d failed: %v", attempt, cfg.Attempts, err)
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		ctx.State.Reachability = ReachabilityExhausted
		return &ReachabilityTimeoutError{
			Host:     host,
			Attempts: cfg.Attempts,
			Interval: cfg.Interval.Std(),
			LastErr:  lastErr,
		}
	}

	ctx.State.Reachability = ReachabilityReachable
	ctx.Observer.Printf("host %s is reachable", host)
	return nil
}
