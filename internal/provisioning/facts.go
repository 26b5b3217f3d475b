package provisioning

// FactsPhase resolves the infrastructure outputs the rest of the pipeline
// depends on. A missing or empty value fails the run here, before anything
// tries to use it.
type FactsPhase struct{}

// requiredFacts are the outputs every deployment must resolve.
var requiredFacts = []string{FactPublicIP, FactSiteURL}

// Name implements Phase.
func (p *FactsPhase) Name() string { return "facts" }

// Provision implements Phase.
func (p *FactsPhase) Provision(ctx *Context) error {
	for _, name := range requiredFacts {
		value, err := ctx.Infra.Output(ctx, name)
		if err != nil {
			return err
		}
		ctx.State.Facts[name] = value
		ctx.Observer.Printf("%s = %s", name, value)
	}
	return nil
}
