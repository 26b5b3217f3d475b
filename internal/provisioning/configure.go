package provisioning

// ConfigurePhase writes the host inventory and runs the configuration
// stages strictly in declared order. The first failing stage aborts the
// remaining ones; stages are never retried or skipped.
type ConfigurePhase struct{}

// Name implements Phase.
func (p *ConfigurePhase) Name() string { return "configure" }

// Provision implements Phase.
func (p *ConfigurePhase) Provision(ctx *Context) error {
	host := ctx.State.Facts[FactPublicIP]

	path, err := ctx.Configure.WriteInventory(host)
	if err != nil {
		return err
	}
	ctx.State.InventoryPath = path

	total := len(ctx.Config.Stages)
	for i, stage := range ctx.Config.Stages {
		label := stage.Label
		if label == "" {
			label = stage.Name
		}
		ctx.Observer.Printf("stage %d/%d: %s", i+1, total, label)

		if err := ctx.Configure.RunStage(ctx, stage); err != nil {
			return err
		}
	}
	return nil
}
