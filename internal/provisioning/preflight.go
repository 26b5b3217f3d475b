package provisioning

// PreflightPhase verifies tools and credentials. It is the single gate
// against partial, credential-less provisioning attempts: nothing below it
// runs until it passes.
type PreflightPhase struct{}

// Name implements Phase.
func (p *PreflightPhase) Name() string { return "preflight" }

// Provision implements Phase.
func (p *PreflightPhase) Provision(ctx *Context) error {
	identity, err := ctx.Preflight.Check(ctx)
	if err != nil {
		return err
	}
	ctx.Observer.Printf("authenticated as %s (account %s)", identity.ARN, identity.Account)
	return nil
}
