package provisioning

// ProvisionPhase drives the infrastructure tool: init, plan, an explicit
// operator confirmation, then apply.
//
// The phase owns the plan artifact for its whole lifetime: created by plan,
// deleted on every exit path (apply succeeded, apply failed, operator
// declined) so a stale plan can never be applied by a later run.
type ProvisionPhase struct{}

// Name implements Phase.
func (p *ProvisionPhase) Name() string { return "provision" }

// Provision implements Phase.
func (p *ProvisionPhase) Provision(ctx *Context) error {
	if err := ctx.Infra.Init(ctx); err != nil {
		return err
	}

	if err := ctx.Infra.Plan(ctx); err != nil {
		return err
	}
	defer func() { _ = ctx.Infra.RemovePlan() }()

	confirmed, err := ctx.Confirm.Confirm("Apply this plan and create cloud resources?")
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrUserAborted
	}
	ctx.State.Confirmed = true

	if err := ctx.Infra.Apply(ctx); err != nil {
		ctx.Observer.Printf("apply failed; infrastructure may be partially created, re-run to plan from current state")
		return err
	}
	return nil
}
